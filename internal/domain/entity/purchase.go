package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase represents stock bought from a supplier. It is never edited once recorded.
type Purchase struct {
	ID           string          `json:"id"`
	Date         Date            `json:"date"`
	Supplier     string          `json:"supplier"`
	Items        []PurchaseItem  `json:"items"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	CustomsCost  decimal.Decimal `json:"customs_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PurchaseItem represents a line item in a purchase
type PurchaseItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Value returns the merchandise value of the line
func (i PurchaseItem) Value() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// AdditionalCosts returns shipping plus customs
func (p *Purchase) AdditionalCosts() decimal.Decimal {
	return p.ShippingCost.Add(p.CustomsCost)
}
