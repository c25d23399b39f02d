package service

import (
	"context"
	"net/http"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/pkg/apperror"
	"github.com/sangkips/storebooks/pkg/printer"
	"github.com/sangkips/storebooks/pkg/utils"
	"go.uber.org/zap"
)

// ReceiptConfig is the header and layout of printed receipts
type ReceiptConfig struct {
	ShopName string
	Currency string
	Width    int
}

// ReceiptService prints sale receipts on the shop's thermal printer
type ReceiptService struct {
	books   *Books
	printer printer.Printer
	cfg     ReceiptConfig
	log     *zap.Logger
}

// NewReceiptService creates a new receipt service. A nil printer discards receipts.
func NewReceiptService(books *Books, p printer.Printer, cfg ReceiptConfig, log *zap.Logger) *ReceiptService {
	if log == nil {
		log = zap.NewNop()
	}
	if p == nil {
		p = printer.Discard{}
	}
	return &ReceiptService{books: books, printer: p, cfg: cfg, log: log}
}

// PrintSale prints the receipt of a recorded sale
func (s *ReceiptService) PrintSale(ctx context.Context, id string) error {
	book := s.books.Snapshot()
	sale, ok := book.FindSale(id)
	if !ok {
		return apperror.NewNotFoundError("Sale")
	}

	if err := s.printer.Print(ctx, s.SaleReceipt(&book, sale)); err != nil {
		s.log.Error("failed to print receipt", zap.String("sale_id", id), zap.Error(err))
		return apperror.Wrap(http.StatusBadGateway, "Printer unavailable", err)
	}
	s.log.Info("receipt printed", zap.String("sale_id", id))
	return nil
}

// SaleReceipt lays out the receipt. Lines name the product as it is now in book;
// products no longer listed show their id.
func (s *ReceiptService) SaleReceipt(book *entity.Book, sale entity.Sale) []byte {
	r := printer.NewReceipt(s.cfg.Width)
	r.Align(printer.AlignCenter).Large(true).Text(s.cfg.ShopName).Large(false)
	r.Text(sale.Date.String())
	r.Align(printer.AlignLeft).Rule()

	if sale.Customer != "" {
		r.Columns("Customer", sale.Customer)
	}
	r.Columns("Receipt", shortID(sale.ID))
	r.Rule()

	for _, item := range sale.Items {
		name := item.ProductID
		if p, ok := book.FindProduct(item.ProductID); ok {
			name = p.Name
		}
		r.Item(item.Quantity, name, utils.FormatMoney(item.Value(), s.cfg.Currency))
	}

	r.Rule().Bold(true)
	r.Columns("TOTAL", utils.FormatMoney(sale.TotalAmount, s.cfg.Currency))
	r.Bold(false)
	r.Align(printer.AlignCenter).Feed(1).Text("Thank you")

	return r.Bytes()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
