package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/internal/domain/enum"
	"github.com/sangkips/storebooks/internal/domain/ledger"
	"github.com/sangkips/storebooks/internal/domain/repository"
	infraRepo "github.com/sangkips/storebooks/internal/infrastructure/repository"
	"github.com/sangkips/storebooks/internal/infrastructure/storage"
	"github.com/sangkips/storebooks/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) entity.Date { return entity.MustParseDate(s) }

// flakyRepo fails every save while failing is set
type flakyRepo struct {
	repository.BookRepository
	mu      sync.Mutex
	failing bool
	saves   [][]repository.Slot
}

func (r *flakyRepo) Save(ctx context.Context, book entity.Book, slots ...repository.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = append(r.saves, slots)
	if r.failing {
		return errors.New("disk full")
	}
	return r.BookRepository.Save(ctx, book, slots...)
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (n *recordingNotifier) NotifyShipment(_ context.Context, saleID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, saleID)
	return n.err
}

func (n *recordingNotifier) Calls() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.calls...)
}

type fixture struct {
	books     *Books
	repo      *flakyRepo
	store     *storage.MemoryStore
	notifier  *recordingNotifier
	products  *ProductService
	purchases *PurchaseService
	sales     *SaleService
	expenses  *ExpenseService
	dashboard *DashboardService
}

func newFixture(t *testing.T, products ...entity.Product) *fixture {
	t.Helper()
	store := storage.NewMemoryStore()
	repo := &flakyRepo{BookRepository: infraRepo.NewBookRepository(store, nil)}
	books, err := LoadBooks(context.Background(), repo, false, nil)
	require.NoError(t, err)
	books.SetClock(func() time.Time { return time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC) })

	for _, p := range products {
		require.NoError(t, books.Update(context.Background(), func(st *BookState) ([]repository.Slot, error) {
			return []repository.Slot{repository.SlotProducts}, st.Ledger.Add(p)
		}))
	}

	notifier := &recordingNotifier{}
	return &fixture{
		books:     books,
		repo:      repo,
		store:     store,
		notifier:  notifier,
		products:  NewProductService(books, 10),
		purchases: NewPurchaseService(books, nil),
		sales:     NewSaleService(books, notifier, nil),
		expenses:  NewExpenseService(books),
		dashboard: NewDashboardService(books, 10),
	}
}

func appCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestPurchaseThenSaleEndToEnd(t *testing.T) {
	f := newFixture(t, entity.Product{ID: "a", Name: "Fan", SalePrice: d("150")})
	ctx := context.Background()

	receipt, err := f.purchases.RecordPurchase(ctx, &RecordPurchaseInput{
		Date:         day("2024-03-01"),
		Supplier:     "Acme",
		Items:        []entity.PurchaseItem{{ProductID: "a", Quantity: 10, UnitPrice: d("100")}},
		ShippingCost: d("50"),
	})
	require.NoError(t, err)
	assert.True(t, d("1050").Equal(receipt.Purchase.TotalCost))

	p, err := f.products.GetProduct(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)
	assert.True(t, d("105").Equal(p.ActualUnitCost))

	sold, err := f.sales.RecordSale(ctx, &RecordSaleInput{
		Date:     day("2024-03-02"),
		Customer: "Ann",
		Items:    []entity.SaleItem{{ProductID: "a", Quantity: 4}},
	})
	require.NoError(t, err)
	assert.True(t, d("600").Equal(sold.Sale.TotalAmount))
	assert.True(t, d("180").Equal(sold.Sale.NetProfit))
	assert.Equal(t, enum.SaleStatusNew, sold.Sale.Status)

	p, _ = f.products.GetProduct(ctx, "a")
	assert.Equal(t, 6, p.Quantity)

	assert.Equal(t, []repository.Slot{repository.SlotProducts, repository.SlotSales}, f.repo.saves[len(f.repo.saves)-1])
}

func TestSaleProfitSubtractsPromotion(t *testing.T) {
	f := newFixture(t, entity.Product{ID: "a", Quantity: 5, ActualUnitCost: d("12.25"), SalePrice: d("20")})

	sold, err := f.sales.RecordSale(context.Background(), &RecordSaleInput{
		Date:          day("2024-03-02"),
		Items:         []entity.SaleItem{{ProductID: "a", Quantity: 3, UnitPrice: d("999")}},
		PromotionCost: d("4.5"),
	})
	require.NoError(t, err)
	// 60 - 36.75 - 4.5
	assert.True(t, d("18.75").Equal(sold.Sale.NetProfit), sold.Sale.NetProfit.String())
	assert.True(t, d("20").Equal(sold.Sale.Items[0].UnitPrice))
	assert.True(t, d("36.75").Equal(sold.Sale.CostOfGoods()))
}

func TestSaleWithShortLineChangesNothing(t *testing.T) {
	f := newFixture(t,
		entity.Product{ID: "a", Name: "Fan", Quantity: 5, SalePrice: d("10")},
		entity.Product{ID: "b", Name: "Lamp", Quantity: 1, SalePrice: d("10")},
	)
	before := f.books.Snapshot()
	savesBefore := len(f.repo.saves)

	_, err := f.sales.RecordSale(context.Background(), &RecordSaleInput{
		Date:  day("2024-03-02"),
		Items: []entity.SaleItem{{ProductID: "a", Quantity: 1}, {ProductID: "b", Quantity: 2}},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appCode(t, err))
	assert.Contains(t, err.Error(), "Lamp")

	var stockErr *ledger.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)

	assert.Equal(t, before, f.books.Snapshot())
	assert.Len(t, f.repo.saves, savesBefore)
}

func TestFailedSaveLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t, entity.Product{ID: "a", Quantity: 5, ActualUnitCost: d("10"), SalePrice: d("10")})
	before := f.books.Snapshot()
	f.repo.failing = true

	_, err := f.purchases.RecordPurchase(context.Background(), &RecordPurchaseInput{
		Date:  day("2024-03-01"),
		Items: []entity.PurchaseItem{{ProductID: "a", Quantity: 5, UnitPrice: d("20")}},
	})
	require.Error(t, err)

	_, err = f.sales.RecordSale(context.Background(), &RecordSaleInput{
		Date:  day("2024-03-01"),
		Items: []entity.SaleItem{{ProductID: "a", Quantity: 1}},
	})
	require.Error(t, err)

	assert.Equal(t, before, f.books.Snapshot())
}

func TestMarkShippedOnce(t *testing.T) {
	f := newFixture(t, entity.Product{ID: "a", Quantity: 5, SalePrice: d("10")})
	ctx := context.Background()

	sold, err := f.sales.RecordSale(ctx, &RecordSaleInput{Date: day("2024-03-02"), Items: []entity.SaleItem{{ProductID: "a", Quantity: 1}}})
	require.NoError(t, err)

	shipped, err := f.sales.MarkShipped(ctx, sold.Sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusShipped, shipped.Status)
	require.NotNil(t, shipped.ShippedAt)

	_, err = f.sales.MarkShipped(ctx, sold.Sale.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSaleAlreadyShipped)
	assert.Equal(t, http.StatusConflict, appCode(t, err))

	f.sales.Wait()
	assert.Equal(t, []string{sold.Sale.ID}, f.notifier.Calls())

	got, err := f.sales.GetSale(ctx, sold.Sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusShipped, got.Status)
}

func TestMarkShippedUnknownSale(t *testing.T) {
	f := newFixture(t)
	_, err := f.sales.MarkShipped(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
	f.sales.Wait()
	assert.Empty(t, f.notifier.Calls())
}

func TestCarrierFailureDoesNotFailShipment(t *testing.T) {
	f := newFixture(t, entity.Product{ID: "a", Quantity: 5, SalePrice: d("10")})
	f.notifier.err = errors.New("carrier down")
	ctx := context.Background()

	sold, err := f.sales.RecordSale(ctx, &RecordSaleInput{Date: day("2024-03-02"), Items: []entity.SaleItem{{ProductID: "a", Quantity: 1}}})
	require.NoError(t, err)

	_, err = f.sales.MarkShipped(ctx, sold.Sale.ID)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return len(f.notifier.Calls()) == 1 }, time.Second, 10*time.Millisecond)
}

func TestRecordPurchaseValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.purchases.RecordPurchase(context.Background(), &RecordPurchaseInput{ShippingCost: d("-1")})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	fields := make([]string, 0, len(appErr.Errors))
	for _, fe := range appErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"date", "items", "shipping_cost"}, fields)
}

func TestRecordPurchaseReportsDroppedAndUnknown(t *testing.T) {
	f := newFixture(t, entity.Product{ID: "a"})

	receipt, err := f.purchases.RecordPurchase(context.Background(), &RecordPurchaseInput{
		Date: day("2024-03-01"),
		Items: []entity.PurchaseItem{
			{ProductID: "a", Quantity: 0, UnitPrice: d("5")},
			{ProductID: "ghost", Quantity: 1, UnitPrice: d("5")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, receipt.DroppedLines)
	assert.Equal(t, []string{"ghost"}, receipt.UnknownProducts)
	assert.Len(t, receipt.Purchase.Items, 1)
}

func TestCreateProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p, err := f.products.CreateProduct(ctx, &CreateProductInput{Name: " Kettle ", SKU: "KT-1", Quantity: 3, PurchasePrice: d("40"), SalePrice: d("55")})
	require.NoError(t, err)
	assert.Equal(t, "Kettle", p.Name)
	assert.True(t, d("40").Equal(p.ActualUnitCost))

	_, err = f.products.CreateProduct(ctx, &CreateProductInput{Name: "Other", SKU: "KT-1"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appCode(t, err))

	generated, err := f.products.CreateProduct(ctx, &CreateProductInput{Name: "No sku"})
	require.NoError(t, err)
	assert.NotEmpty(t, generated.SKU)

	_, err = f.products.CreateProduct(ctx, &CreateProductInput{Name: "", Quantity: -1})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	reloaded, err := infraRepo.NewBookRepository(f.store, nil).Load(ctx, entity.Book{})
	require.NoError(t, err)
	assert.Len(t, reloaded.Products, 2)
}

func TestListProductsFilters(t *testing.T) {
	f := newFixture(t, entity.SeedProducts()...)
	ctx := context.Background()

	res, err := f.products.ListProducts(ctx, &repository.ProductFilterParams{Search: "sam-"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "p2", res.Items[0].ID)

	res, err = f.products.ListProducts(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Pagination.Total)

	assert.Empty(t, f.products.LowStock(ctx))
}

func TestItemMovementsUnknownProduct(t *testing.T) {
	f := newFixture(t)
	_, err := f.products.ItemMovements(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
}

func TestListSalesFilters(t *testing.T) {
	f := newFixture(t, entity.Product{ID: "a", Quantity: 50, SalePrice: d("10")})
	ctx := context.Background()

	for _, in := range []RecordSaleInput{
		{Date: day("2024-03-01"), Customer: "Ann"},
		{Date: day("2024-03-05"), Customer: "Bob"},
		{Date: day("2024-03-03"), Customer: "Annette"},
	} {
		in := in
		in.Items = []entity.SaleItem{{ProductID: "a", Quantity: 1}}
		_, err := f.sales.RecordSale(ctx, &in)
		require.NoError(t, err)
	}

	res, err := f.sales.ListSales(ctx, &repository.SaleFilterParams{Search: "ann"})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Annette", res.Items[0].Customer)

	start, end := day("2024-03-02"), day("2024-03-05")
	res, err = f.sales.ListSales(ctx, &repository.SaleFilterParams{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Bob", res.Items[0].Customer)

	shipped := enum.SaleStatusShipped
	res, err = f.sales.ListSales(ctx, &repository.SaleFilterParams{Status: &shipped})
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	_, err = f.sales.ListSales(ctx, &repository.SaleFilterParams{StartDate: &end, EndDate: &start})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))
}

func TestExpensesAndDashboard(t *testing.T) {
	f := newFixture(t, entity.Product{ID: "a", Quantity: 5, ActualUnitCost: d("10"), SalePrice: d("30")})
	ctx := context.Background()

	_, err := f.sales.RecordSale(ctx, &RecordSaleInput{Date: day("2024-03-02"), Items: []entity.SaleItem{{ProductID: "a", Quantity: 2}}})
	require.NoError(t, err)

	_, err = f.expenses.RecordExpense(ctx, &RecordExpenseInput{Date: day("2024-03-03"), Category: enum.ExpenseCategoryRent, Amount: d("15")})
	require.NoError(t, err)
	_, err = f.expenses.RecordExpense(ctx, &RecordExpenseInput{Date: day("2024-02-03"), Category: enum.ExpenseCategoryBills, Amount: d("5")})
	require.NoError(t, err)
	_, err = f.expenses.RecordExpense(ctx, &RecordExpenseInput{Date: day("2024-03-03"), Category: enum.ExpenseCategory(99)})
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))

	rent := enum.ExpenseCategoryRent
	list, err := f.expenses.ListExpenses(ctx, &repository.ExpenseFilterParams{Category: &rent})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	dash := f.dashboard.GetDashboard(ctx)
	assert.True(t, d("60").Equal(dash.TotalSales))
	assert.True(t, d("20").Equal(dash.TotalExpenses))
	assert.True(t, d("20").Equal(dash.NetProfit), dash.NetProfit.String())
	assert.True(t, d("30").Equal(dash.InventoryValue))
	assert.Len(t, dash.LowStock, 1)

	// clock is fixed in March 2024
	period, err := f.dashboard.GetReport(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, day("2024-03-01"), period.Start)
	assert.Equal(t, day("2024-03-31"), period.End)
	assert.True(t, d("15").Equal(period.TotalExpenses))
	assert.True(t, d("25").Equal(period.NetProfit))

	start, end := day("2024-04-01"), day("2024-03-01")
	_, err = f.dashboard.GetReport(ctx, &start, &end)
	assert.Equal(t, http.StatusUnprocessableEntity, appCode(t, err))
}

func TestConcurrentSalesNeverOversell(t *testing.T) {
	f := newFixture(t, entity.Product{ID: "a", Quantity: 20, SalePrice: d("1")})
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.sales.RecordSale(ctx, &RecordSaleInput{Date: day("2024-03-02"), Items: []entity.SaleItem{{ProductID: "a", Quantity: 1}}})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, succeeded)
	p, _ := f.products.GetProduct(ctx, "a")
	assert.Equal(t, 0, p.Quantity)
	assert.Len(t, f.books.Snapshot().Sales, 20)
}

func TestLoadBooksSeeds(t *testing.T) {
	repo := infraRepo.NewBookRepository(storage.NewMemoryStore(), nil)
	books, err := LoadBooks(context.Background(), repo, true, nil)
	require.NoError(t, err)
	assert.Len(t, books.Products(), 3)
}
