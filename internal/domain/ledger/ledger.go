// Package ledger keeps current stock and cost basis per product. It is a plain value
// with no locking and no I/O; callers serialize access and persist the result.
package ledger

import (
	"errors"
	"fmt"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("product id already exists")
	ErrDuplicateSKU     = errors.New("product sku already exists")
	ErrInvalidProduct   = errors.New("invalid product")
)

// InsufficientStockError rejects a sale asking for more units than are held
type InsufficientStockError struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	name := e.Name
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", name, e.Requested, e.Available)
}

// Ledger holds the product catalogue in insertion order
type Ledger struct {
	products []entity.Product
	index    map[string]int
}

// New builds a ledger over a copy of products. Later entries repeating an id are ignored.
func New(products []entity.Product) *Ledger {
	l := &Ledger{
		products: make([]entity.Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}
	for _, p := range products {
		if _, ok := l.index[p.ID]; ok {
			continue
		}
		l.index[p.ID] = len(l.products)
		l.products = append(l.products, p)
	}
	return l
}

// Clone returns an independent copy
func (l *Ledger) Clone() *Ledger {
	return New(l.products)
}

// Len returns the number of products
func (l *Ledger) Len() int {
	return len(l.products)
}

// Product looks a product up by id
func (l *Ledger) Product(id string) (entity.Product, bool) {
	i, ok := l.index[id]
	if !ok {
		return entity.Product{}, false
	}
	return l.products[i], true
}

// Products returns a copy of every product in insertion order
func (l *Ledger) Products() []entity.Product {
	out := make([]entity.Product, len(l.products))
	copy(out, l.products)
	return out
}

// Add registers a new product. Ids and non-empty SKUs must be unique.
func (l *Ledger) Add(p entity.Product) error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidProduct)
	}
	if p.ActualUnitCost.IsNegative() {
		return fmt.Errorf("%w: actual unit cost cannot be negative", ErrInvalidProduct)
	}
	if _, ok := l.index[p.ID]; ok {
		return ErrDuplicateProduct
	}
	if p.SKU != "" {
		for _, existing := range l.products {
			if existing.SKU == p.SKU {
				return ErrDuplicateSKU
			}
		}
	}
	l.index[p.ID] = len(l.products)
	l.products = append(l.products, p)
	return nil
}

// InventoryValue returns the sum of cost basis times quantity over all products
func (l *Ledger) InventoryValue() decimal.Decimal {
	total := decimal.Zero
	for _, p := range l.products {
		total = total.Add(p.StockValue())
	}
	return total
}

func (l *Ledger) at(id string) *entity.Product {
	i, ok := l.index[id]
	if !ok {
		return nil
	}
	return &l.products[i]
}
