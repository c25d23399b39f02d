package service

import (
	"sort"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/pkg/apperror"
)

// sortByDateDesc orders newest date first and keeps the existing order within a day
func sortByDateDesc[T any](items []T, date func(T) entity.Date) {
	sort.SliceStable(items, func(i, j int) bool {
		return date(items[i]).After(date(items[j]))
	})
}

func validateRange(start, end *entity.Date) error {
	if start != nil && end != nil && start.After(*end) {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "start_date", Message: "start date must not be after end date"},
		})
	}
	return nil
}
