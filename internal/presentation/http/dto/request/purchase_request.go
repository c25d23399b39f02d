package request

import "github.com/shopspring/decimal"

// PurchaseItemRequest is one purchased line
type PurchaseItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity" binding:"max=1000000"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseRequest represents a purchase recording request. Lines missing a
// product, quantity or price are accepted and skipped.
type CreatePurchaseRequest struct {
	Date         string                `json:"date" binding:"required"`
	Supplier     string                `json:"supplier" binding:"max=255"`
	Items        []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingCost decimal.Decimal       `json:"shipping_cost"`
	CustomsCost  decimal.Decimal       `json:"customs_cost"`
}

// PurchaseFilterRequest represents purchase filter parameters
type PurchaseFilterRequest struct {
	Search    string `form:"search"`
	ProductID string `form:"product_id"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
