// Package report folds a book snapshot into dashboard figures, stock movement history
// and period reports. Nothing here mutates its input.
package report

import (
	"errors"
	"sort"
	"time"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// RecentSalesLimit is how many sales the dashboard lists
const RecentSalesLimit = 5

var ErrInvalidRange = errors.New("start date is after end date")

// Summary holds the aggregates shared by the dashboard and period reports
type Summary struct {
	TotalSales     decimal.Decimal `json:"total_sales"`
	SalesProfit    decimal.Decimal `json:"sales_profit"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	SaleCount      int             `json:"sale_count"`
	ExpenseCount   int             `json:"expense_count"`
}

// Dashboard is the business overview
type Dashboard struct {
	Summary
	ProductCount int              `json:"product_count"`
	RecentSales  []entity.Sale    `json:"recent_sales"`
	LowStock     []entity.Product `json:"low_stock"`
}

// Period is the report for a closed range of days
type Period struct {
	Summary
	Start    entity.Date      `json:"start_date"`
	End      entity.Date      `json:"end_date"`
	Sales    []entity.Sale    `json:"sales"`
	Expenses []entity.Expense `json:"expenses"`
}

func summarize(sales []entity.Sale, expenses []entity.Expense, products []entity.Product) Summary {
	s := Summary{
		TotalSales:     decimal.Zero,
		SalesProfit:    decimal.Zero,
		TotalExpenses:  decimal.Zero,
		InventoryValue: InventoryValue(products),
		SaleCount:      len(sales),
		ExpenseCount:   len(expenses),
	}
	for _, sale := range sales {
		s.TotalSales = s.TotalSales.Add(sale.TotalAmount)
		s.SalesProfit = s.SalesProfit.Add(sale.NetProfit)
	}
	for _, e := range expenses {
		s.TotalExpenses = s.TotalExpenses.Add(e.Amount)
	}
	s.NetProfit = s.SalesProfit.Sub(s.TotalExpenses)
	return s
}

// InventoryValue sums cost basis times quantity
func InventoryValue(products []entity.Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.StockValue())
	}
	return total
}

// BuildDashboard computes the overview over the whole book
func BuildDashboard(book entity.Book, lowStockThreshold int) Dashboard {
	return Dashboard{
		Summary:      summarize(book.Sales, book.Expenses, book.Products),
		ProductCount: len(book.Products),
		RecentSales:  RecentSales(book.Sales, RecentSalesLimit),
		LowStock:     LowStock(book.Products, lowStockThreshold),
	}
}

// RecentSales returns up to n sales, newest date first. Sales on the same day are
// ordered by when they were recorded, latest first.
func RecentSales(sales []entity.Sale, n int) []entity.Sale {
	out := make([]entity.Sale, 0, len(sales))
	for i := len(sales) - 1; i >= 0; i-- {
		out = append(out, sales[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// LowStock returns the products holding fewer than threshold units
func LowStock(products []entity.Product, threshold int) []entity.Product {
	out := make([]entity.Product, 0)
	for _, p := range products {
		if p.IsLowStock(threshold) {
			out = append(out, p)
		}
	}
	return out
}

// ItemMovements lists every purchase and sale line for a product, newest date first.
// Lines sharing a date keep purchases ahead of sales, each in recorded order.
func ItemMovements(book entity.Book, productID string) []entity.Movement {
	out := make([]entity.Movement, 0)
	for _, p := range book.Purchases {
		for _, item := range p.Items {
			if item.ProductID != productID {
				continue
			}
			out = append(out, entity.Movement{
				Date:        p.Date,
				Kind:        entity.MovementPurchase,
				ReferenceID: p.ID,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Details:     "from supplier: " + p.Supplier,
			})
		}
	}
	for _, s := range book.Sales {
		for _, item := range s.Items {
			if item.ProductID != productID {
				continue
			}
			out = append(out, entity.Movement{
				Date:        s.Date,
				Kind:        entity.MovementSale,
				ReferenceID: s.ID,
				Quantity:    -item.Quantity,
				UnitPrice:   item.UnitPrice,
				Details:     "to customer: " + s.Customer,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func within(on entity.Date, start time.Time, end time.Time) bool {
	t := on.Time()
	return !t.Before(start) && !t.After(end)
}

// ForPeriod restricts sales and expenses to [start, end] with end covering its whole
// day. Inventory value is the current one.
func ForPeriod(book entity.Book, start, end entity.Date) (Period, error) {
	if start.After(end) {
		return Period{}, ErrInvalidRange
	}
	from, to := start.Time(), end.EndOfDay()

	sales := make([]entity.Sale, 0)
	for _, s := range book.Sales {
		if within(s.Date, from, to) {
			sales = append(sales, s)
		}
	}
	expenses := make([]entity.Expense, 0)
	for _, e := range book.Expenses {
		if within(e.Date, from, to) {
			expenses = append(expenses, e)
		}
	}

	return Period{
		Summary:  summarize(sales, expenses, book.Products),
		Start:    start,
		End:      end,
		Sales:    sales,
		Expenses: expenses,
	}, nil
}

// CurrentMonth returns the first and last day of the month containing today
func CurrentMonth(today entity.Date) (entity.Date, entity.Date) {
	return today.StartOfMonth(), today.EndOfMonth()
}
