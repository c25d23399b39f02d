package report

import (
	"testing"
	"time"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) entity.Date { return entity.MustParseDate(s) }

func sale(id, on, customer string, amount, profit string, items ...entity.SaleItem) entity.Sale {
	return entity.Sale{
		ID:          id,
		Date:        day(on),
		Customer:    customer,
		Items:       items,
		TotalAmount: d(amount),
		NetProfit:   d(profit),
		Status:      enum.SaleStatusNew,
	}
}

func fixture() entity.Book {
	return entity.Book{
		Products: []entity.Product{
			{ID: "a", Quantity: 4, ActualUnitCost: d("10")},
			{ID: "b", Quantity: 20, ActualUnitCost: d("2.5")},
		},
		Purchases: []entity.Purchase{
			{ID: "pu1", Date: day("2024-01-02"), Supplier: "Acme", Items: []entity.PurchaseItem{
				{ProductID: "a", Quantity: 10, UnitPrice: d("9")},
				{ProductID: "b", Quantity: 20, UnitPrice: d("2")},
			}},
			{ID: "pu2", Date: day("2024-01-20"), Supplier: "Globex", Items: []entity.PurchaseItem{
				{ProductID: "a", Quantity: 2, UnitPrice: d("11")},
			}},
		},
		Sales: []entity.Sale{
			sale("s1", "2024-01-05", "Ann", "100", "40", entity.SaleItem{ProductID: "a", Quantity: 5, UnitPrice: d("20")}),
			sale("s2", "2024-01-31", "Bob", "60", "20", entity.SaleItem{ProductID: "a", Quantity: 3, UnitPrice: d("20")}),
			sale("s3", "2024-02-01", "Cid", "10", "5"),
		},
		Expenses: []entity.Expense{
			{ID: "e1", Date: day("2024-01-31"), Category: enum.ExpenseCategoryRent, Amount: d("15")},
			{ID: "e2", Date: day("2024-02-10"), Category: enum.ExpenseCategoryBills, Amount: d("7")},
		},
	}
}

func TestBuildDashboard(t *testing.T) {
	dash := BuildDashboard(fixture(), 10)

	assert.True(t, d("170").Equal(dash.TotalSales))
	assert.True(t, d("22").Equal(dash.TotalExpenses))
	assert.True(t, d("43").Equal(dash.NetProfit), dash.NetProfit.String())
	assert.True(t, d("90").Equal(dash.InventoryValue))
	assert.Equal(t, 2, dash.ProductCount)
	assert.Equal(t, 3, dash.SaleCount)

	require.Len(t, dash.RecentSales, 3)
	assert.Equal(t, "s3", dash.RecentSales[0].ID)
	assert.Equal(t, "s1", dash.RecentSales[2].ID)

	require.Len(t, dash.LowStock, 1)
	assert.Equal(t, "a", dash.LowStock[0].ID)
}

func TestBuildDashboardEmptyBook(t *testing.T) {
	dash := BuildDashboard(entity.Book{}, 10)
	assert.True(t, dash.TotalSales.IsZero())
	assert.True(t, dash.NetProfit.IsZero())
	assert.NotNil(t, dash.RecentSales)
	assert.NotNil(t, dash.LowStock)
}

func TestRecentSalesLimitAndTies(t *testing.T) {
	var sales []entity.Sale
	for i, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		on := "2024-03-01"
		if i == 0 {
			on = "2024-03-09"
		}
		sales = append(sales, sale(id, on, "x", "1", "1"))
	}

	got := RecentSales(sales, RecentSalesLimit)
	require.Len(t, got, 5)
	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"a", "g", "f", "e", "d"}, ids)
	assert.Equal(t, "a", sales[0].ID, "input must not be reordered")
}

func TestItemMovements(t *testing.T) {
	moves := ItemMovements(fixture(), "a")

	require.Len(t, moves, 4)
	assert.Equal(t, "s2", moves[0].ReferenceID)
	assert.Equal(t, -3, moves[0].Quantity)
	assert.Equal(t, "to customer: Bob", moves[0].Details)
	assert.Equal(t, entity.MovementSale, moves[0].Kind)

	assert.Equal(t, "pu2", moves[1].ReferenceID)
	assert.Equal(t, 2, moves[1].Quantity)
	assert.Equal(t, "from supplier: Globex", moves[1].Details)

	assert.Equal(t, "s1", moves[2].ReferenceID)
	assert.Equal(t, "pu1", moves[3].ReferenceID)
	assert.Equal(t, 10, moves[3].Quantity)
}

func TestItemMovementsSameDayKeepsOrder(t *testing.T) {
	book := entity.Book{
		Purchases: []entity.Purchase{{ID: "pu", Date: day("2024-05-05"), Items: []entity.PurchaseItem{{ProductID: "a", Quantity: 1}}}},
		Sales:     []entity.Sale{sale("s", "2024-05-05", "c", "1", "1", entity.SaleItem{ProductID: "a", Quantity: 1})},
	}
	moves := ItemMovements(book, "a")
	require.Len(t, moves, 2)
	assert.Equal(t, "pu", moves[0].ReferenceID)
	assert.Equal(t, "s", moves[1].ReferenceID)
}

func TestItemMovementsNone(t *testing.T) {
	moves := ItemMovements(fixture(), "zzz")
	assert.NotNil(t, moves)
	assert.Empty(t, moves)
}

func TestForPeriodIncludesEndDay(t *testing.T) {
	p, err := ForPeriod(fixture(), day("2024-01-05"), day("2024-01-31"))
	require.NoError(t, err)

	require.Len(t, p.Sales, 2)
	require.Len(t, p.Expenses, 1)
	assert.True(t, d("160").Equal(p.TotalSales))
	assert.True(t, d("60").Equal(p.SalesProfit))
	assert.True(t, d("15").Equal(p.TotalExpenses))
	assert.True(t, d("45").Equal(p.NetProfit))
	assert.True(t, d("90").Equal(p.InventoryValue))
}

func TestForPeriodSingleDay(t *testing.T) {
	p, err := ForPeriod(fixture(), day("2024-02-01"), day("2024-02-01"))
	require.NoError(t, err)
	require.Len(t, p.Sales, 1)
	assert.Equal(t, "s3", p.Sales[0].ID)
	assert.Empty(t, p.Expenses)
}

func TestForPeriodRejectsInvertedRange(t *testing.T) {
	_, err := ForPeriod(fixture(), day("2024-02-01"), day("2024-01-01"))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCurrentMonth(t *testing.T) {
	start, end := CurrentMonth(entity.NewDate(2024, time.February, 17))
	assert.Equal(t, day("2024-02-01"), start)
	assert.Equal(t, day("2024-02-29"), end)
}
