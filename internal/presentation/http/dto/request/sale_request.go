package request

import "github.com/shopspring/decimal"

// SaleItemRequest is one sold line. The price charged is the product's sale price.
type SaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity" binding:"max=1000000"`
}

// CreateSaleRequest represents a sale recording request
type CreateSaleRequest struct {
	Date          string            `json:"date" binding:"required"`
	Customer      string            `json:"customer" binding:"max=255"`
	Items         []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	PromotionCost decimal.Decimal   `json:"promotion_cost"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
