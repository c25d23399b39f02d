package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sangkips/storebooks/internal/domain/entity"
	"github.com/sangkips/storebooks/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostgresStore persists slots in the book_slots table through gorm
type PostgresStore struct {
	db *gorm.DB
}

var _ repository.SlotStore = (*PostgresStore)(nil)

// NewPostgresStore wraps an open connection. The schema is created by database.AutoMigrate.
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var slot entity.Slot
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return slot.Data, true, nil
}

func (s *PostgresStore) PutBatch(ctx context.Context, entries map[string][]byte) error {
	now := time.Now().UTC()
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, key := range sortedKeys(entries) {
			slot := entity.Slot{Key: key, Data: entries[key], UpdatedAt: now}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "key"}},
				DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
			}).Create(&slot).Error
			if err != nil {
				return fmt.Errorf("failed to write slot %s: %w", key, err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
