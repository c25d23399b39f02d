package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePrinter struct {
	jobs [][]byte
	err  error
}

func (p *capturePrinter) Print(_ context.Context, data []byte) error {
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return p.err
}

func TestPrintSaleReceipt(t *testing.T) {
	f := newFixture(t, entity.Product{ID: "a", Name: "Fan", Quantity: 5, SalePrice: d("150")})
	ctx := context.Background()

	sold, err := f.sales.RecordSale(ctx, &RecordSaleInput{
		Date:     day("2024-03-02"),
		Customer: "Ann",
		Items:    []entity.SaleItem{{ProductID: "a", Quantity: 2}},
	})
	require.NoError(t, err)

	p := &capturePrinter{}
	receipts := NewReceiptService(f.books, p, ReceiptConfig{ShopName: "Corner Shop", Currency: "USD", Width: 32}, nil)
	require.NoError(t, receipts.PrintSale(ctx, sold.Sale.ID))

	require.Len(t, p.jobs, 1)
	out := string(p.jobs[0])
	assert.Contains(t, out, "Corner Shop")
	assert.Contains(t, out, "2024-03-02")
	assert.Contains(t, out, "2x Fan")
	assert.Contains(t, out, "$300.00")
	assert.Contains(t, out, "Ann")
}

func TestPrintSaleErrors(t *testing.T) {
	f := newFixture(t, entity.Product{ID: "a", Name: "Fan", Quantity: 5, SalePrice: d("150")})
	ctx := context.Background()

	p := &capturePrinter{err: errors.New("connection refused")}
	receipts := NewReceiptService(f.books, p, ReceiptConfig{ShopName: "Corner Shop", Currency: "USD"}, nil)

	err := receipts.PrintSale(ctx, "missing")
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
	assert.Empty(t, p.jobs)

	sold, err := f.sales.RecordSale(ctx, &RecordSaleInput{
		Date:  day("2024-03-02"),
		Items: []entity.SaleItem{{ProductID: "a", Quantity: 1}},
	})
	require.NoError(t, err)

	err = receipts.PrintSale(ctx, sold.Sale.ID)
	assert.Equal(t, http.StatusBadGateway, appCode(t, err))
}
