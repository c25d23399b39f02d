package ledger

import (
	"math"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SaleOutcome is the result of applying a sale
type SaleOutcome struct {
	Items            []entity.SaleItem
	TotalAmount      decimal.Decimal
	TotalCostOfGoods decimal.Decimal
	Dropped          int
}

// ApplySale takes sold units out of stock. Each kept line is priced at the product's
// current sale price and costed at its current cost basis; cost basis is unchanged.
//
// Every product must hold enough units for the sum of the lines asking for it,
// otherwise an *InsufficientStockError is returned and nothing changes. An unknown
// product holds zero units. Lines without a product id or quantity are dropped. A sum
// of lines too large for an int is reported as a request for math.MaxInt units.
func (l *Ledger) ApplySale(items []entity.SaleItem) (SaleOutcome, error) {
	out := SaleOutcome{
		Items:            make([]entity.SaleItem, 0, len(items)),
		TotalAmount:      decimal.Zero,
		TotalCostOfGoods: decimal.Zero,
	}

	requested := make(map[string]int)
	overflow := make(map[string]bool)
	var order []string
	for _, item := range items {
		if item.ProductID == "" || item.Quantity <= 0 {
			out.Dropped++
			continue
		}
		if _, seen := requested[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		if requested[item.ProductID] > math.MaxInt-item.Quantity {
			overflow[item.ProductID] = true
			requested[item.ProductID] = math.MaxInt
		} else {
			requested[item.ProductID] += item.Quantity
		}
		out.Items = append(out.Items, entity.SaleItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	for _, id := range order {
		p, ok := l.Product(id)
		if !ok || overflow[id] || p.Quantity < requested[id] {
			return SaleOutcome{}, &InsufficientStockError{
				ProductID: id,
				Name:      p.Name,
				Requested: requested[id],
				Available: p.Quantity,
			}
		}
	}

	for i := range out.Items {
		line := &out.Items[i]
		p := l.at(line.ProductID)
		qty := decimal.NewFromInt(int64(line.Quantity))
		line.UnitPrice = p.SalePrice
		out.TotalAmount = out.TotalAmount.Add(p.SalePrice.Mul(qty))
		out.TotalCostOfGoods = out.TotalCostOfGoods.Add(p.ActualUnitCost.Mul(qty))
		p.Quantity -= line.Quantity
	}
	return out, nil
}
