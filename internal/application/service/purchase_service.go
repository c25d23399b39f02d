package service

import (
	"context"
	"strings"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/internal/domain/ledger"
	"github.com/sangkips/storebooks/internal/domain/repository"
	"github.com/sangkips/storebooks/pkg/apperror"
	"github.com/sangkips/storebooks/pkg/pagination"
	"github.com/sangkips/storebooks/pkg/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PurchaseService records stock purchases and blends their landed cost into the ledger
type PurchaseService struct {
	books *Books
	log   *zap.Logger
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(books *Books, log *zap.Logger) *PurchaseService {
	if log == nil {
		log = zap.NewNop()
	}
	return &PurchaseService{books: books, log: log}
}

// RecordPurchaseInput represents the record purchase input
type RecordPurchaseInput struct {
	Date         entity.Date
	Supplier     string
	Items        []entity.PurchaseItem
	ShippingCost decimal.Decimal
	CustomsCost  decimal.Decimal
}

// PurchaseReceipt is the recorded purchase plus what the ledger did with each line
type PurchaseReceipt struct {
	Purchase        entity.Purchase     `json:"purchase"`
	Allocations     []ledger.Allocation `json:"allocations"`
	DroppedLines    int                 `json:"dropped_lines"`
	UnknownProducts []string            `json:"unknown_products,omitempty"`
}

func validatePurchase(input *RecordPurchaseInput) error {
	var fieldErrors []apperror.FieldError
	if input.Date.IsZero() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "date", Message: "date is required"})
	}
	if len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "at least one item is required"})
	}
	if input.ShippingCost.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "shipping_cost", Message: "shipping cost cannot be negative"})
	}
	if input.CustomsCost.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customs_cost", Message: "customs cost cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// RecordPurchase applies the purchase to the ledger and appends it. Products and
// purchases are saved together.
func (s *PurchaseService) RecordPurchase(ctx context.Context, input *RecordPurchaseInput) (*PurchaseReceipt, error) {
	if err := validatePurchase(input); err != nil {
		return nil, err
	}

	var receipt PurchaseReceipt
	err := s.books.Update(ctx, func(st *BookState) ([]repository.Slot, error) {
		out := st.Ledger.ApplyPurchase(input.Items, input.ShippingCost, input.CustomsCost)

		purchase := entity.Purchase{
			ID:           utils.NewID(),
			Date:         input.Date,
			Supplier:     strings.TrimSpace(input.Supplier),
			Items:        out.Items,
			ShippingCost: input.ShippingCost,
			CustomsCost:  input.CustomsCost,
			TotalCost:    out.TotalCost,
			CreatedAt:    s.books.Now().UTC(),
		}
		st.Purchases = append(st.Purchases, purchase)

		receipt = PurchaseReceipt{
			Purchase:        purchase,
			Allocations:     out.Allocations,
			DroppedLines:    out.Dropped,
			UnknownProducts: out.Unknown,
		}
		return []repository.Slot{repository.SlotProducts, repository.SlotPurchases}, nil
	})
	if err != nil {
		return nil, err
	}

	if receipt.DroppedLines > 0 {
		s.log.Info("purchase lines dropped",
			zap.String("purchase_id", receipt.Purchase.ID),
			zap.Int("dropped", receipt.DroppedLines))
	}
	for _, id := range receipt.UnknownProducts {
		s.log.Warn("purchase references unknown product",
			zap.String("purchase_id", receipt.Purchase.ID),
			zap.String("product_id", id))
	}
	return &receipt, nil
}

// GetPurchase retrieves a purchase by ID
func (s *PurchaseService) GetPurchase(_ context.Context, id string) (*entity.Purchase, error) {
	book := s.books.Snapshot()
	purchase, ok := book.FindPurchase(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return &purchase, nil
}

// ListPurchases lists purchases newest first
func (s *PurchaseService) ListPurchases(_ context.Context, params *repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	if params == nil {
		params = &repository.PurchaseFilterParams{}
	}
	if err := validateRange(params.StartDate, params.EndDate); err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(params.Search))

	purchases := s.books.Snapshot().Purchases
	matched := make([]entity.Purchase, 0, len(purchases))
	for i := len(purchases) - 1; i >= 0; i-- {
		p := purchases[i]
		if !repository.InRange(p.Date, params.StartDate, params.EndDate) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Supplier), search) {
			continue
		}
		if params.ProductID != "" && !purchaseTouches(p, params.ProductID) {
			continue
		}
		matched = append(matched, p)
	}
	sortByDateDesc(matched, func(p entity.Purchase) entity.Date { return p.Date })
	return pagination.Paginate(matched, params.Pagination), nil
}

func purchaseTouches(p entity.Purchase, productID string) bool {
	for _, item := range p.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
