// Package bootstrap opens the configured persistence backend and assembles the
// services shared by the API server and bookctl.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sangkips/storebooks/internal/application/service"
	"github.com/sangkips/storebooks/internal/config"
	"github.com/sangkips/storebooks/internal/domain/repository"
	"github.com/sangkips/storebooks/internal/infrastructure/database"
	infraRepo "github.com/sangkips/storebooks/internal/infrastructure/repository"
	"github.com/sangkips/storebooks/internal/infrastructure/storage"
)

// Backend is the slot store plus the idempotency key store of the selected driver
type Backend struct {
	Slots       repository.SlotStore
	Idempotency repository.IdempotencyRepository
}

// Close releases the slot store
func (b *Backend) Close() error {
	return b.Slots.Close()
}

// OpenBackend connects to the store named by cfg.Store.Driver. Idempotency keys live
// in postgres when that driver is used and in memory otherwise.
func OpenBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Backend, error) {
	switch cfg.Store.Driver {
	case "memory":
		return &Backend{
			Slots:       storage.NewMemoryStore(),
			Idempotency: infraRepo.NewMemoryIdempotencyRepository(),
		}, nil

	case "sqlite":
		store, err := storage.NewSQLiteStore(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info("using sqlite store", zap.String("path", cfg.Store.SQLitePath))
		return &Backend{Slots: store, Idempotency: infraRepo.NewMemoryIdempotencyRepository()}, nil

	case "postgres":
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug, log)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db, log); err != nil {
			return nil, err
		}
		return &Backend{
			Slots:       storage.NewPostgresStore(db),
			Idempotency: infraRepo.NewIdempotencyRepository(db),
		}, nil

	case "mongo":
		connectCtx, cancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
		defer cancel()
		store, err := storage.NewMongoStore(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return nil, err
		}
		log.Info("using mongo store", zap.String("database", cfg.Mongo.Database), zap.String("collection", cfg.Mongo.Collection))
		return &Backend{Slots: store, Idempotency: infraRepo.NewMemoryIdempotencyRepository()}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// LoadBooks reads the persisted books through backend, seeding the catalogue when
// configured
func LoadBooks(ctx context.Context, cfg *config.Config, backend *Backend, log *zap.Logger) (*service.Books, error) {
	repo := infraRepo.NewBookRepository(backend.Slots, log.Named("repo.books"))
	return service.LoadBooks(ctx, repo, cfg.Books.SeedProducts, log.Named("books"))
}
