package service

import (
	"context"
	"errors"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/internal/domain/report"
	"github.com/sangkips/storebooks/pkg/apperror"
)

// DashboardService builds the overview and period reports
type DashboardService struct {
	books             *Books
	lowStockThreshold int
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(books *Books, lowStockThreshold int) *DashboardService {
	return &DashboardService{books: books, lowStockThreshold: lowStockThreshold}
}

// GetDashboard returns the overview over everything recorded
func (s *DashboardService) GetDashboard(_ context.Context) *report.Dashboard {
	dash := report.BuildDashboard(s.books.Snapshot(), s.lowStockThreshold)
	return &dash
}

// GetReport returns the report for [start, end]. Missing bounds default to the
// current month.
func (s *DashboardService) GetReport(_ context.Context, start, end *entity.Date) (*report.Period, error) {
	monthStart, monthEnd := report.CurrentMonth(entity.DateOf(s.books.Now()))
	from, to := monthStart, monthEnd
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}

	period, err := report.ForPeriod(s.books.Snapshot(), from, to)
	if err != nil {
		if errors.Is(err, report.ErrInvalidRange) {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "start_date", Message: "start date must not be after end date"},
			})
		}
		return nil, err
	}
	return &period, nil
}
