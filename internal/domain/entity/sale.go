package entity

import (
	"time"

	"github.com/sangkips/storebooks/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Sale represents goods sold to a customer. Only Status changes after recording.
type Sale struct {
	ID            string          `json:"id"`
	Date          Date            `json:"date"`
	Customer      string          `json:"customer"`
	Items         []SaleItem      `json:"items"`
	PromotionCost decimal.Decimal `json:"promotion_cost"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	Status        enum.SaleStatus `json:"status"`
	ShippedAt     *time.Time      `json:"shipped_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SaleItem is a sold line. UnitPrice is the product's sale price at the time of sale.
type SaleItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Value returns the line amount
func (i SaleItem) Value() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// IsShipped reports whether the sale has been handed to the carrier
func (s *Sale) IsShipped() bool {
	return s.Status == enum.SaleStatusShipped
}

// CostOfGoods returns what the sold goods cost, derived from the recorded amounts
func (s *Sale) CostOfGoods() decimal.Decimal {
	return s.TotalAmount.Sub(s.NetProfit).Sub(s.PromotionCost)
}
