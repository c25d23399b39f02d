package ledger

import (
	"math"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Allocation records how one purchase line moved a product's cost basis
type Allocation struct {
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	ItemValue  decimal.Decimal `json:"item_value"`
	CostShare  decimal.Decimal `json:"cost_share"`
	CostBefore decimal.Decimal `json:"cost_before"`
	CostAfter  decimal.Decimal `json:"cost_after"`
	Applied    bool            `json:"applied"`
}

// PurchaseOutcome is the result of applying a purchase
type PurchaseOutcome struct {
	Items           []entity.PurchaseItem
	TotalItemsValue decimal.Decimal
	AdditionalCosts decimal.Decimal
	TotalCost       decimal.Decimal
	Allocations     []Allocation
	Dropped         int
	Unknown         []string
}

func validPurchaseItem(item entity.PurchaseItem) bool {
	return item.ProductID != "" && item.Quantity > 0 && item.UnitPrice.IsPositive()
}

// ApplyPurchase blends a purchased lot into the cost basis of each product.
//
// Shipping and customs are spread over the lines in proportion to their merchandise
// value. Each line then moves its product to
//
//	(cost*qty + unitPrice*lineQty + share) / (qty + lineQty)
//
// Lines are folded in order, so a second line for the same product averages against
// the result of the first. Lines without a product id, quantity or price are dropped.
// Lines naming an unknown product keep their value in the totals but touch no stock.
// A line that would push a product's stock past math.MaxInt is dropped like an invalid one.
func (l *Ledger) ApplyPurchase(items []entity.PurchaseItem, shipping, customs decimal.Decimal) PurchaseOutcome {
	out := PurchaseOutcome{
		Items:           make([]entity.PurchaseItem, 0, len(items)),
		TotalItemsValue: decimal.Zero,
		AdditionalCosts: shipping.Add(customs),
	}

	stock := make(map[string]int)
	for _, item := range items {
		if !validPurchaseItem(item) {
			out.Dropped++
			continue
		}
		if p := l.at(item.ProductID); p != nil {
			held, seen := stock[item.ProductID]
			if !seen {
				held = p.Quantity
			}
			if item.Quantity > math.MaxInt-held {
				out.Dropped++
				continue
			}
			stock[item.ProductID] = held + item.Quantity
		}
		out.Items = append(out.Items, item)
		out.TotalItemsValue = out.TotalItemsValue.Add(item.Value())
	}

	for _, item := range out.Items {
		value := item.Value()
		share := decimal.Zero
		if out.TotalItemsValue.IsPositive() {
			share = value.Mul(out.AdditionalCosts).Div(out.TotalItemsValue)
		}

		alloc := Allocation{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			ItemValue: value,
			CostShare: share,
		}

		p := l.at(item.ProductID)
		if p == nil {
			out.Unknown = append(out.Unknown, item.ProductID)
			out.Allocations = append(out.Allocations, alloc)
			continue
		}

		oldTotal := p.StockValue()
		newQuantity := p.Quantity + item.Quantity
		alloc.CostBefore = p.ActualUnitCost
		p.ActualUnitCost = oldTotal.Add(value).Add(share).Div(decimal.NewFromInt(int64(newQuantity)))
		p.Quantity = newQuantity
		alloc.CostAfter = p.ActualUnitCost
		alloc.Applied = true
		out.Allocations = append(out.Allocations, alloc)
	}

	out.TotalCost = out.TotalItemsValue.Add(out.AdditionalCosts)
	return out
}
