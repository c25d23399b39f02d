package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)
	assert.True(t, IsUUID(a))
	assert.False(t, IsUUID("p1"))
}

func TestGenerateSKU(t *testing.T) {
	sku := GenerateSKU()
	assert.True(t, strings.HasPrefix(sku, "SKU-"))
	assert.Len(t, sku, 12)
	assert.Equal(t, strings.ToUpper(sku), sku)
}
