package repository

import (
	"context"
	"errors"

	"github.com/sangkips/storebooks/internal/domain/entity"
)

// Slot names one independently persisted book collection
type Slot string

const (
	SlotProducts  Slot = "products"
	SlotPurchases Slot = "purchases"
	SlotSales     Slot = "sales"
	SlotExpenses  Slot = "expenses"
)

// AllSlots lists every slot in load order
func AllSlots() []Slot {
	return []Slot{SlotProducts, SlotPurchases, SlotSales, SlotExpenses}
}

var ErrUnsupportedVersion = errors.New("unsupported slot format version")

// SlotStore is a durable key/value map holding one document per slot
type SlotStore interface {
	// Get returns the stored document, or found=false when the key was never written
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	// PutBatch writes every entry. Drivers that support it write them atomically.
	PutBatch(ctx context.Context, entries map[string][]byte) error
	Close() error
}

// BookRepository loads and saves the book collections
type BookRepository interface {
	// Load reads every slot. Slots never written fall back to the given defaults.
	Load(ctx context.Context, defaults entity.Book) (entity.Book, error)
	// Save rewrites the listed slots from book in full
	Save(ctx context.Context, book entity.Book, slots ...Slot) error
}
