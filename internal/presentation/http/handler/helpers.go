package handler

import (
	"net/http"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/pkg/apperror"
	"github.com/sangkips/storebooks/pkg/pagination"
)

// parseDate parses a required date field
func parseDate(field, value string) (entity.Date, *apperror.FieldError) {
	d, err := entity.ParseDate(value)
	if err != nil {
		return entity.Date{}, &apperror.FieldError{Field: field, Message: "must be a date in YYYY-MM-DD format"}
	}
	return d, nil
}

// parseOptionalDate parses a date query parameter. Empty means no bound.
func parseOptionalDate(field, value string) (*entity.Date, *apperror.FieldError) {
	if value == "" {
		return nil, nil
	}
	d, fieldErr := parseDate(field, value)
	if fieldErr != nil {
		return nil, fieldErr
	}
	return &d, nil
}

// parseDateRange parses start_date and end_date query values
func parseDateRange(start, end string) (*entity.Date, *entity.Date, error) {
	var fieldErrors []apperror.FieldError
	from, fieldErr := parseOptionalDate("start_date", start)
	if fieldErr != nil {
		fieldErrors = append(fieldErrors, *fieldErr)
	}
	to, fieldErr := parseOptionalDate("end_date", end)
	if fieldErr != nil {
		fieldErrors = append(fieldErrors, *fieldErr)
	}
	if len(fieldErrors) > 0 {
		return nil, nil, apperror.NewValidationError(fieldErrors)
	}
	return from, to, nil
}

func pageParams(page, perPage int) *pagination.PaginationParams {
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}

func bindError(err error) *apperror.AppError {
	return apperror.NewAppError(http.StatusBadRequest, "Invalid request body: "+err.Error())
}
