package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/sangkips/storebooks/internal/domain/entity"
	domainRepo "github.com/sangkips/storebooks/internal/domain/repository"
	"go.uber.org/zap"
)

// SlotFormatVersion is written into every slot document
const SlotFormatVersion = 1

type envelope struct {
	Version int             `json:"version"`
	Items   json.RawMessage `json:"items"`
}

type bookRepository struct {
	store domainRepo.SlotStore
	log   *zap.Logger
}

// NewBookRepository creates a book repository on top of a slot store
func NewBookRepository(store domainRepo.SlotStore, log *zap.Logger) domainRepo.BookRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &bookRepository{store: store, log: log}
}

func (r *bookRepository) Load(ctx context.Context, defaults entity.Book) (entity.Book, error) {
	book := entity.Book{}
	var err error

	if book.Products, err = loadSlot(ctx, r, domainRepo.SlotProducts, defaults.Products); err != nil {
		return entity.Book{}, err
	}
	if book.Purchases, err = loadSlot(ctx, r, domainRepo.SlotPurchases, defaults.Purchases); err != nil {
		return entity.Book{}, err
	}
	if book.Sales, err = loadSlot(ctx, r, domainRepo.SlotSales, defaults.Sales); err != nil {
		return entity.Book{}, err
	}
	if book.Expenses, err = loadSlot(ctx, r, domainRepo.SlotExpenses, defaults.Expenses); err != nil {
		return entity.Book{}, err
	}
	return book, nil
}

func (r *bookRepository) Save(ctx context.Context, book entity.Book, slots ...domainRepo.Slot) error {
	if len(slots) == 0 {
		slots = domainRepo.AllSlots()
	}

	entries := make(map[string][]byte, len(slots))
	for _, slot := range slots {
		var (
			data []byte
			err  error
		)
		switch slot {
		case domainRepo.SlotProducts:
			data, err = encodeSlot(book.Products)
		case domainRepo.SlotPurchases:
			data, err = encodeSlot(book.Purchases)
		case domainRepo.SlotSales:
			data, err = encodeSlot(book.Sales)
		case domainRepo.SlotExpenses:
			data, err = encodeSlot(book.Expenses)
		default:
			return fmt.Errorf("unknown slot %q", slot)
		}
		if err != nil {
			return fmt.Errorf("failed to encode slot %s: %w", slot, err)
		}
		entries[string(slot)] = data
	}

	if err := r.store.PutBatch(ctx, entries); err != nil {
		return fmt.Errorf("failed to save book: %w", err)
	}
	return nil
}

func loadSlot[T any](ctx context.Context, r *bookRepository, slot domainRepo.Slot, fallback []T) ([]T, error) {
	data, found, err := r.store.Get(ctx, string(slot))
	if err != nil {
		return nil, fmt.Errorf("failed to load slot %s: %w", slot, err)
	}
	if !found {
		r.log.Info("slot not found, using defaults", zap.String("slot", string(slot)), zap.Int("items", len(fallback)))
		out := make([]T, len(fallback))
		copy(out, fallback)
		return out, nil
	}

	items, err := decodeSlot[T](data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode slot %s: %w", slot, err)
	}
	return items, nil
}

func encodeSlot[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Version: SlotFormatVersion, Items: raw})
}

// decodeSlot reads a versioned document. A bare JSON array is read as the
// unversioned layout older books were written in.
func decodeSlot[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	items := make([]T, 0)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	if env.Version != SlotFormatVersion {
		return nil, fmt.Errorf("%w: %d", domainRepo.ErrUnsupportedVersion, env.Version)
	}
	if len(env.Items) == 0 || string(env.Items) == "null" {
		return items, nil
	}
	if err := json.Unmarshal(env.Items, &items); err != nil {
		return nil, err
	}
	return items, nil
}
