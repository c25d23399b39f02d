package request

import "github.com/shopspring/decimal"

// CreateExpenseRequest represents an expense recording request
type CreateExpenseRequest struct {
	Date        string          `json:"date" binding:"required"`
	Category    string          `json:"category" binding:"required,oneof=advertising salaries rent bills other"`
	Description string          `json:"description" binding:"max=1000"`
	Amount      decimal.Decimal `json:"amount"`
}

// ExpenseFilterRequest represents expense filter parameters
type ExpenseFilterRequest struct {
	Category  string `form:"category"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}

// ReportRequest represents the date range of a period report
type ReportRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}
