package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/internal/domain/ledger"
	"github.com/sangkips/storebooks/internal/domain/report"
	"github.com/sangkips/storebooks/internal/domain/repository"
	"github.com/sangkips/storebooks/pkg/apperror"
	"github.com/sangkips/storebooks/pkg/pagination"
	"github.com/sangkips/storebooks/pkg/utils"
	"github.com/shopspring/decimal"
)

// ProductService handles product-related operations
type ProductService struct {
	books             *Books
	lowStockThreshold int
}

// NewProductService creates a new product service
func NewProductService(books *Books, lowStockThreshold int) *ProductService {
	return &ProductService{
		books:             books,
		lowStockThreshold: lowStockThreshold,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name          string
	SKU           string
	Quantity      int
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
}

// CreateProduct adds a product to the catalogue. Its cost basis starts at the purchase price.
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.Name) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "name", Message: "name is required"})
	}
	if input.Quantity < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quantity", Message: "quantity cannot be negative"})
	}
	if input.PurchasePrice.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "purchase_price", Message: "purchase price cannot be negative"})
	}
	if input.SalePrice.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "sale_price", Message: "sale price cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	sku := strings.TrimSpace(input.SKU)
	if sku == "" {
		sku = utils.GenerateSKU()
	}

	product := entity.Product{
		ID:             utils.NewID(),
		Name:           strings.TrimSpace(input.Name),
		SKU:            sku,
		Quantity:       input.Quantity,
		PurchasePrice:  input.PurchasePrice,
		ActualUnitCost: input.PurchasePrice,
		SalePrice:      input.SalePrice,
	}

	err := s.books.Update(ctx, func(st *BookState) ([]repository.Slot, error) {
		if err := st.Ledger.Add(product); err != nil {
			if errors.Is(err, ledger.ErrDuplicateSKU) || errors.Is(err, ledger.ErrDuplicateProduct) {
				return nil, apperror.Wrap(http.StatusConflict, "Product SKU already exists", err)
			}
			return nil, apperror.Wrap(http.StatusBadRequest, err.Error(), err)
		}
		return []repository.Slot{repository.SlotProducts}, nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(_ context.Context, id string) (*entity.Product, error) {
	product, ok := s.books.Product(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Product")
	}
	return &product, nil
}

// ListProducts lists products matching the filter in catalogue order
func (s *ProductService) ListProducts(_ context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	if params == nil {
		params = &repository.ProductFilterParams{}
	}
	search := strings.ToLower(strings.TrimSpace(params.Search))

	products := s.books.Products()
	matched := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if params.LowStock && !p.IsLowStock(s.lowStockThreshold) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		matched = append(matched, p)
	}
	return pagination.Paginate(matched, params.Pagination), nil
}

// LowStock lists products under the configured threshold
func (s *ProductService) LowStock(_ context.Context) []entity.Product {
	return report.LowStock(s.books.Products(), s.lowStockThreshold)
}

// LowStockThreshold returns the configured threshold
func (s *ProductService) LowStockThreshold() int {
	return s.lowStockThreshold
}

// ItemMovements lists every purchase and sale line of a product, newest first
func (s *ProductService) ItemMovements(_ context.Context, id string) ([]entity.Movement, error) {
	book := s.books.Snapshot()
	if _, ok := book.FindProduct(id); !ok {
		return nil, apperror.NewNotFoundError("Product")
	}
	return report.ItemMovements(book, id), nil
}
