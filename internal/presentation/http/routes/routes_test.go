package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/storebooks/internal/application/service"
	"github.com/sangkips/storebooks/internal/config"
	"github.com/sangkips/storebooks/internal/domain/entity"
	infraRepo "github.com/sangkips/storebooks/internal/infrastructure/repository"
	"github.com/sangkips/storebooks/internal/infrastructure/storage"
	"github.com/sangkips/storebooks/internal/presentation/http/handler"
	"github.com/sangkips/storebooks/pkg/carrier"
	"github.com/sangkips/storebooks/pkg/pagination"
	"github.com/sangkips/storebooks/pkg/printer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type server struct {
	router *gin.Engine
	sales  *service.SaleService
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	repo := infraRepo.NewBookRepository(storage.NewMemoryStore(), log)
	books, err := service.LoadBooks(context.Background(), repo, true, log)
	require.NoError(t, err)

	sales := service.NewSaleService(books, carrier.Nop{Log: log}, log)
	h := &Handlers{
		Product:   handler.NewProductHandler(service.NewProductService(books, 10)),
		Purchase:  handler.NewPurchaseHandler(service.NewPurchaseService(books, log)),
		Sale:      handler.NewSaleHandler(sales, service.NewReceiptService(books, printer.Discard{}, service.ReceiptConfig{ShopName: "storebooks", Currency: "EGP"}, log)),
		Expense:   handler.NewExpenseHandler(service.NewExpenseService(books)),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(books, 10)),
	}
	router, limiter := Setup(h, &Deps{
		Cfg:             &config.Config{App: config.AppConfig{Name: "storebooks"}},
		IdempotencyRepo: infraRepo.NewMemoryIdempotencyRepository(),
		Log:             log,
	})
	t.Cleanup(limiter.Stop)
	t.Cleanup(sales.Wait)

	return &server{router: router, sales: sales}
}

func (s *server) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env.Data
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "storebooks")
}

func TestPurchaseUpdatesLandedCost(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/purchases", gin.H{
		"date":          "2024-03-01",
		"supplier":      "LG Egypt",
		"items":         []gin.H{{"product_id": "p1", "quantity": 10, "unit_price": "1600"}},
		"shipping_cost": "500",
		"customs_cost":  "0",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/products/p1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	product := decode[entity.Product](t, w)
	assert.Equal(t, 25, product.Quantity)
	assert.True(t, decimal.NewFromInt(1590).Equal(product.ActualUnitCost), product.ActualUnitCost.String())

	w = s.do(t, http.MethodGet, "/api/v1/products/p1/movements", nil)
	require.Equal(t, http.StatusOK, w.Code)
	movements := decode[[]entity.Movement](t, w)
	require.Len(t, movements, 1)
	assert.Equal(t, "from supplier: LG Egypt", movements[0].Details)
}

func TestPurchaseRequiresItems(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodPost, "/api/v1/purchases", gin.H{"date": "2024-03-01"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/purchases", gin.H{
		"date":  "03/01/2024",
		"items": []gin.H{{"product_id": "p1", "quantity": 1, "unit_price": "10"}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/purchases", gin.H{
		"date":  "2024-03-01",
		"items": []gin.H{{"product_id": "p1", "quantity": 1000001, "unit_price": "10"}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleRejectsHugeQuantity(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodPost, "/api/v1/sales", gin.H{
		"date":  "2024-03-02",
		"items": []gin.H{{"product_id": "p1", "quantity": 9223372036854775807}, {"product_id": "p1", "quantity": 2}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/products/p1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quantity":15`)
}

func TestSaleLifecycle(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/sales", gin.H{
		"date":     "2024-03-02",
		"customer": "Ahmed",
		"items":    []gin.H{{"product_id": "p3", "quantity": 41}},
	})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/sales", gin.H{
		"date":     "2024-03-02",
		"customer": "Ahmed",
		"items":    []gin.H{{"product_id": "p3", "quantity": 5}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	receipt := decode[service.SaleReceipt](t, w)
	assert.True(t, decimal.NewFromInt(2250).Equal(receipt.Sale.TotalAmount))
	assert.False(t, receipt.Sale.IsShipped())

	path := "/api/v1/sales/" + receipt.Sale.ID + "/ship"
	w = s.do(t, http.MethodPost, path, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	shipped := decode[entity.Sale](t, w)
	assert.True(t, shipped.IsShipped())

	w = s.do(t, http.MethodPost, path, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/sales/"+receipt.Sale.ID+"/receipt", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/sales?status=shipped", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), receipt.Sale.ID)

	w = s.do(t, http.MethodPost, "/api/v1/sales/missing/ship", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestIdempotentExpense(t *testing.T) {
	s := newServer(t)
	body := gin.H{"date": "2024-03-03", "category": "rent", "description": "March", "amount": "5000"}

	first := s.do(t, http.MethodPost, "/api/v1/expenses", body, "Idempotency-Key", "rent-march")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	second := s.do(t, http.MethodPost, "/api/v1/expenses", body, "Idempotency-Key", "rent-march")
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	body["amount"] = "6000"
	third := s.do(t, http.MethodPost, "/api/v1/expenses", body, "Idempotency-Key", "rent-march")
	assert.Equal(t, http.StatusUnprocessableEntity, third.Code)

	w := s.do(t, http.MethodGet, "/api/v1/expenses", nil)
	require.Equal(t, http.StatusOK, w.Code)
	expenses := decode[pagination.PaginatedResult[entity.Expense]](t, w)
	assert.Len(t, expenses.Items, 1)
}

func TestReportRange(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/reports?start_date=2024-03-10&end_date=2024-03-01", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/reports?start_date=yesterday", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/reports?start_date=2024-03-01&end_date=2024-03-31", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "inventory_value")
}
