package entity

import (
	"github.com/shopspring/decimal"
)

// Product is a stock-keeping unit held in inventory. ActualUnitCost is the weighted
// average landed cost of the units currently held.
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	SKU            string          `json:"sku"`
	Quantity       int             `json:"quantity"`
	PurchasePrice  decimal.Decimal `json:"purchase_price"`
	ActualUnitCost decimal.Decimal `json:"actual_unit_cost"`
	SalePrice      decimal.Decimal `json:"sale_price"`
}

// StockValue returns the value of the units held at their cost basis
func (p Product) StockValue() decimal.Decimal {
	return p.ActualUnitCost.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// IsLowStock reports whether the held quantity is under threshold
func (p Product) IsLowStock(threshold int) bool {
	return p.Quantity < threshold
}

// SeedProducts returns the catalogue a fresh book starts with
func SeedProducts() []Product {
	return []Product{
		{
			ID:             "p1",
			Name:           "Refrigerator",
			SKU:            "LG-REF-001",
			Quantity:       15,
			PurchasePrice:  decimal.NewFromInt(1500),
			ActualUnitCost: decimal.NewFromInt(1550),
			SalePrice:      decimal.NewFromInt(2200),
		},
		{
			ID:             "p2",
			Name:           "Washing Machine",
			SKU:            "SAM-WSH-002",
			Quantity:       25,
			PurchasePrice:  decimal.NewFromInt(1200),
			ActualUnitCost: decimal.NewFromInt(1240),
			SalePrice:      decimal.NewFromInt(1800),
		},
		{
			ID:             "p3",
			Name:           "Microwave",
			SKU:            "SHP-MW-003",
			Quantity:       40,
			PurchasePrice:  decimal.NewFromInt(300),
			ActualUnitCost: decimal.NewFromInt(315),
			SalePrice:      decimal.NewFromInt(450),
		},
	}
}
