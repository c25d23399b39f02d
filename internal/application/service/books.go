package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/internal/domain/ledger"
	"github.com/sangkips/storebooks/internal/domain/repository"
	"go.uber.org/zap"
)

// Books owns the product ledger and the recorded purchases, sales and expenses. Every
// write goes through Update, which runs one at a time, persists the slots it touched
// and only then publishes the new state. Readers see the last published state.
type Books struct {
	mu        sync.RWMutex
	ledger    *ledger.Ledger
	purchases []entity.Purchase
	sales     []entity.Sale
	expenses  []entity.Expense

	repo repository.BookRepository
	log  *zap.Logger
	now  func() time.Time
}

// BookState is the working copy handed to an update. Changes to it are discarded if
// the update fails.
type BookState struct {
	Ledger    *ledger.Ledger
	Purchases []entity.Purchase
	Sales     []entity.Sale
	Expenses  []entity.Expense
}

func (s *BookState) book() entity.Book {
	return entity.Book{
		Products:  s.Ledger.Products(),
		Purchases: s.Purchases,
		Sales:     s.Sales,
		Expenses:  s.Expenses,
	}
}

// NewBooks wraps an already loaded book
func NewBooks(book entity.Book, repo repository.BookRepository, log *zap.Logger) *Books {
	if log == nil {
		log = zap.NewNop()
	}
	return &Books{
		ledger:    ledger.New(book.Products),
		purchases: slices.Clone(book.Purchases),
		sales:     slices.Clone(book.Sales),
		expenses:  slices.Clone(book.Expenses),
		repo:      repo,
		log:       log,
		now:       time.Now,
	}
}

// LoadBooks reads the book from repo. A fresh store starts with the seed catalogue
// when seed is set.
func LoadBooks(ctx context.Context, repo repository.BookRepository, seed bool, log *zap.Logger) (*Books, error) {
	defaults := entity.Book{}
	if seed {
		defaults.Products = entity.SeedProducts()
	}

	book, err := repo.Load(ctx, defaults)
	if err != nil {
		return nil, fmt.Errorf("failed to load books: %w", err)
	}

	b := NewBooks(book, repo, log)
	b.log.Info("books loaded",
		zap.Int("products", b.ledger.Len()),
		zap.Int("purchases", len(b.purchases)),
		zap.Int("sales", len(b.sales)),
		zap.Int("expenses", len(b.expenses)),
	)
	return b, nil
}

// Update applies fn to a copy of the current state. fn returns the slots it changed;
// those are saved in one batch and the copy replaces the current state. If fn or the
// save fails nothing is published.
func (b *Books) Update(ctx context.Context, fn func(s *BookState) ([]repository.Slot, error)) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := &BookState{
		Ledger:    b.ledger.Clone(),
		Purchases: slices.Clone(b.purchases),
		Sales:     slices.Clone(b.sales),
		Expenses:  slices.Clone(b.expenses),
	}

	slots, err := fn(state)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		return nil
	}

	if err := b.repo.Save(ctx, state.book(), slots...); err != nil {
		b.log.Error("failed to persist books", zap.Error(err), zap.Any("slots", slots))
		return err
	}

	b.ledger = state.Ledger
	b.purchases = state.Purchases
	b.sales = state.Sales
	b.expenses = state.Expenses
	return nil
}

// Snapshot returns a copy of every collection
func (b *Books) Snapshot() entity.Book {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return entity.Book{
		Products:  b.ledger.Products(),
		Purchases: slices.Clone(b.purchases),
		Sales:     slices.Clone(b.sales),
		Expenses:  slices.Clone(b.expenses),
	}
}

// Product looks a product up by id
func (b *Books) Product(id string) (entity.Product, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ledger.Product(id)
}

// Products returns every product in insertion order
func (b *Books) Products() []entity.Product {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ledger.Products()
}

// Now returns the clock used to stamp records
func (b *Books) Now() time.Time {
	return b.now()
}

// SetClock replaces the clock, for tests
func (b *Books) SetClock(now func() time.Time) {
	b.now = now
}
