package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/internal/domain/enum"
	"github.com/sangkips/storebooks/internal/domain/ledger"
	"github.com/sangkips/storebooks/internal/domain/repository"
	"github.com/sangkips/storebooks/pkg/apperror"
	"github.com/sangkips/storebooks/pkg/carrier"
	"github.com/sangkips/storebooks/pkg/pagination"
	"github.com/sangkips/storebooks/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrSaleAlreadyShipped = errors.New("sale already shipped")

const defaultNotifyTimeout = 10 * time.Second

// SaleService records sales and moves them through shipping
type SaleService struct {
	books         *Books
	carrier       carrier.Notifier
	notifyTimeout time.Duration
	log           *zap.Logger
	inflight      sync.WaitGroup
}

// NewSaleService creates a new sale service. A nil notifier disables carrier calls.
func NewSaleService(books *Books, notifier carrier.Notifier, log *zap.Logger) *SaleService {
	if log == nil {
		log = zap.NewNop()
	}
	if notifier == nil {
		notifier = carrier.Nop{Log: log}
	}
	return &SaleService{
		books:         books,
		carrier:       notifier,
		notifyTimeout: defaultNotifyTimeout,
		log:           log,
	}
}

// RecordSaleInput represents the record sale input. Item unit prices are ignored; the
// current sale price of each product is used.
type RecordSaleInput struct {
	Date          entity.Date
	Customer      string
	Items         []entity.SaleItem
	PromotionCost decimal.Decimal
}

// SaleReceipt is the recorded sale plus the lines the ledger ignored
type SaleReceipt struct {
	Sale         entity.Sale     `json:"sale"`
	CostOfGoods  decimal.Decimal `json:"cost_of_goods"`
	DroppedLines int             `json:"dropped_lines"`
}

// RecordSale takes the sold units out of stock and appends the sale as new. The whole
// sale is refused when any product is short.
func (s *SaleService) RecordSale(ctx context.Context, input *RecordSaleInput) (*SaleReceipt, error) {
	var fieldErrors []apperror.FieldError
	if input.Date.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "date", Message: "date is required"})
	}
	if len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "at least one item is required"})
	}
	if input.PromotionCost.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "promotion_cost", Message: "promotion cost cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	var receipt SaleReceipt
	err := s.books.Update(ctx, func(st *BookState) ([]repository.Slot, error) {
		out, err := st.Ledger.ApplySale(input.Items)
		if err != nil {
			var stockErr *ledger.InsufficientStockError
			if errors.As(err, &stockErr) {
				return nil, apperror.Wrap(http.StatusConflict, stockErr.Error(), err)
			}
			return nil, err
		}

		sale := entity.Sale{
			ID:            utils.NewID(),
			Date:          input.Date,
			Customer:      strings.TrimSpace(input.Customer),
			Items:         out.Items,
			PromotionCost: input.PromotionCost,
			TotalAmount:   out.TotalAmount,
			NetProfit:     out.TotalAmount.Sub(out.TotalCostOfGoods).Sub(input.PromotionCost),
			Status:        enum.SaleStatusNew,
			CreatedAt:     s.books.Now().UTC(),
		}
		st.Sales = append(st.Sales, sale)

		receipt = SaleReceipt{Sale: sale, CostOfGoods: out.TotalCostOfGoods, DroppedLines: out.Dropped}
		return []repository.Slot{repository.SlotProducts, repository.SlotSales}, nil
	})
	if err != nil {
		return nil, err
	}

	if receipt.DroppedLines > 0 {
		s.log.Info("sale lines dropped",
			zap.String("sale_id", receipt.Sale.ID),
			zap.Int("dropped", receipt.DroppedLines))
	}
	return &receipt, nil
}

// MarkShipped moves a new sale to shipped and tells the carrier. A sale is shipped at
// most once; asking again is refused and the carrier is not called a second time.
func (s *SaleService) MarkShipped(ctx context.Context, id string) (*entity.Sale, error) {
	var shipped entity.Sale
	err := s.books.Update(ctx, func(st *BookState) ([]repository.Slot, error) {
		for i := range st.Sales {
			if st.Sales[i].ID != id {
				continue
			}
			if st.Sales[i].IsShipped() {
				return nil, apperror.Wrap(http.StatusConflict, "Sale already shipped", ErrSaleAlreadyShipped)
			}
			at := s.books.Now().UTC()
			st.Sales[i].Status = enum.SaleStatusShipped
			st.Sales[i].ShippedAt = &at
			shipped = st.Sales[i]
			return []repository.Slot{repository.SlotSales}, nil
		}
		return nil, apperror.NewNotFoundError("Sale")
	})
	if err != nil {
		return nil, err
	}

	s.notifyCarrier(shipped.ID)
	return &shipped, nil
}

// notifyCarrier calls the carrier in the background. Failures are logged only.
func (s *SaleService) notifyCarrier(saleID string) {
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.notifyTimeout)
		defer cancel()

		if err := s.carrier.NotifyShipment(ctx, saleID); err != nil {
			s.log.Warn("carrier notification failed", zap.String("sale_id", saleID), zap.Error(err))
			return
		}
		s.log.Info("carrier notified", zap.String("sale_id", saleID))
	}()
}

// Wait blocks until pending carrier notifications finish
func (s *SaleService) Wait() {
	s.inflight.Wait()
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(_ context.Context, id string) (*entity.Sale, error) {
	book := s.books.Snapshot()
	sale, ok := book.FindSale(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return &sale, nil
}

// ListSales lists sales newest first
func (s *SaleService) ListSales(_ context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	if params == nil {
		params = &repository.SaleFilterParams{}
	}
	if err := validateRange(params.StartDate, params.EndDate); err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(params.Search))

	sales := s.books.Snapshot().Sales
	matched := make([]entity.Sale, 0, len(sales))
	for i := len(sales) - 1; i >= 0; i-- {
		sale := sales[i]
		if params.Status != nil && sale.Status != *params.Status {
			continue
		}
		if !repository.InRange(sale.Date, params.StartDate, params.EndDate) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(sale.Customer), search) {
			continue
		}
		matched = append(matched, sale)
	}
	sortByDateDesc(matched, func(s entity.Sale) entity.Date { return s.Date })
	return pagination.Paginate(matched, params.Pagination), nil
}
