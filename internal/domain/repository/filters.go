package repository

import (
	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/internal/domain/enum"
	"github.com/sangkips/storebooks/pkg/pagination"
)

// ProductFilterParams contains filtering parameters for product listings
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string // matches name or sku
	LowStock   bool
}

// PurchaseFilterParams contains filtering parameters for purchase listings
type PurchaseFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string // matches supplier
	ProductID  string
	StartDate  *entity.Date
	EndDate    *entity.Date
}

// SaleFilterParams contains filtering parameters for sale listings
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string // matches customer
	Status     *enum.SaleStatus
	StartDate  *entity.Date
	EndDate    *entity.Date
}

// ExpenseFilterParams contains filtering parameters for expense listings
type ExpenseFilterParams struct {
	Pagination *pagination.PaginationParams
	Category   *enum.ExpenseCategory
	StartDate  *entity.Date
	EndDate    *entity.Date
}

// InRange reports whether on falls within the optional inclusive bounds
func InRange(on entity.Date, start, end *entity.Date) bool {
	if start != nil && on.Before(*start) {
		return false
	}
	if end != nil && on.After(*end) {
		return false
	}
	return true
}
