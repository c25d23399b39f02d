package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewID generates a new record id
func NewID() string {
	return uuid.NewString()
}

// IsUUID reports whether s parses as a UUID
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// GenerateSKU generates a unique stock-keeping code for products created without one
func GenerateSKU() string {
	return "SKU-" + strings.ToUpper(uuid.New().String()[:8])
}
