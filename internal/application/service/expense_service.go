package service

import (
	"context"
	"strings"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/internal/domain/enum"
	"github.com/sangkips/storebooks/internal/domain/repository"
	"github.com/sangkips/storebooks/pkg/apperror"
	"github.com/sangkips/storebooks/pkg/pagination"
	"github.com/sangkips/storebooks/pkg/utils"
	"github.com/shopspring/decimal"
)

// ExpenseService keeps the append-only expense log
type ExpenseService struct {
	books *Books
}

// NewExpenseService creates a new expense service
func NewExpenseService(books *Books) *ExpenseService {
	return &ExpenseService{books: books}
}

// RecordExpenseInput represents the record expense input
type RecordExpenseInput struct {
	Date        entity.Date
	Category    enum.ExpenseCategory
	Description string
	Amount      decimal.Decimal
}

// RecordExpense appends an expense
func (s *ExpenseService) RecordExpense(ctx context.Context, input *RecordExpenseInput) (*entity.Expense, error) {
	var fieldErrors []apperror.FieldError
	if input.Date.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "date", Message: "date is required"})
	}
	if !input.Category.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "category", Message: "unknown category"})
	}
	if input.Amount.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "amount cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	expense := entity.Expense{
		ID:          utils.NewID(),
		Date:        input.Date,
		Category:    input.Category,
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		CreatedAt:   s.books.Now().UTC(),
	}

	err := s.books.Update(ctx, func(st *BookState) ([]repository.Slot, error) {
		st.Expenses = append(st.Expenses, expense)
		return []repository.Slot{repository.SlotExpenses}, nil
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}

// ListExpenses lists expenses newest first
func (s *ExpenseService) ListExpenses(_ context.Context, params *repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	if params == nil {
		params = &repository.ExpenseFilterParams{}
	}
	if err := validateRange(params.StartDate, params.EndDate); err != nil {
		return nil, err
	}

	expenses := s.books.Snapshot().Expenses
	matched := make([]entity.Expense, 0, len(expenses))
	for i := len(expenses) - 1; i >= 0; i-- {
		e := expenses[i]
		if params.Category != nil && e.Category != *params.Category {
			continue
		}
		if !repository.InRange(e.Date, params.StartDate, params.EndDate) {
			continue
		}
		matched = append(matched, e)
	}
	sortByDateDesc(matched, func(e entity.Expense) entity.Date { return e.Date })
	return pagination.Paginate(matched, params.Pagination), nil
}
