package entity

import "github.com/shopspring/decimal"

// MovementKind tells whether stock came in or went out
type MovementKind string

const (
	MovementPurchase MovementKind = "purchase"
	MovementSale     MovementKind = "sale"
)

// Movement is one purchase or sale line touching a product. Quantity is positive for
// stock coming in and negative for stock going out.
type Movement struct {
	Date        Date            `json:"date"`
	Kind        MovementKind    `json:"kind"`
	ReferenceID string          `json:"reference_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Details     string          `json:"details"`
}
