package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/storebooks/internal/application/service"
	"github.com/sangkips/storebooks/internal/domain/enum"
	"github.com/sangkips/storebooks/internal/domain/repository"
	"github.com/sangkips/storebooks/internal/presentation/http/dto/request"
	"github.com/sangkips/storebooks/internal/presentation/http/dto/response"
	"github.com/sangkips/storebooks/pkg/apperror"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// List handles listing expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter request.ExpenseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	start, end, err := parseDateRange(filter.StartDate, filter.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	params := &repository.ExpenseFilterParams{
		Pagination: pageParams(filter.Page, filter.PerPage),
		StartDate:  start,
		EndDate:    end,
	}
	if filter.Category != "" {
		category, err := enum.ParseExpenseCategory(filter.Category)
		if err != nil {
			response.BadRequest(c, "Invalid category")
			return
		}
		params.Category = &category
	}

	result, err := h.expenseService.ListExpenses(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Expenses retrieved successfully", result)
}

// Create handles recording an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req request.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}

	date, fieldErr := parseDate("date", req.Date)
	if fieldErr != nil {
		response.ValidationError(c, []apperror.FieldError{*fieldErr})
		return
	}
	category, err := enum.ParseExpenseCategory(req.Category)
	if err != nil {
		response.ValidationError(c, []apperror.FieldError{{Field: "category", Message: "unknown category"}})
		return
	}

	expense, err := h.expenseService.RecordExpense(c.Request.Context(), &service.RecordExpenseInput{
		Date:        date,
		Category:    category,
		Description: req.Description,
		Amount:      req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense recorded successfully", expense)
}

// Categories handles listing the known expense categories
func (h *ExpenseHandler) Categories(c *gin.Context) {
	response.OK(c, "Expense categories retrieved successfully", enum.ExpenseCategories())
}
