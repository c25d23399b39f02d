package repository

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/storebooks/internal/domain/entity"
	domainRepo "github.com/sangkips/storebooks/internal/domain/repository"
)

type memoryIdempotencyRepository struct {
	mu   sync.Mutex
	keys map[string]entity.IdempotencyKey
	now  func() time.Time
}

// NewMemoryIdempotencyRepository keeps idempotency keys in process memory
func NewMemoryIdempotencyRepository() domainRepo.IdempotencyRepository {
	return newMemoryIdempotencyRepository(time.Now)
}

func newMemoryIdempotencyRepository(now func() time.Time) *memoryIdempotencyRepository {
	return &memoryIdempotencyRepository{keys: make(map[string]entity.IdempotencyKey), now: now}
}

func (r *memoryIdempotencyRepository) GetByKey(_ context.Context, key string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ikey, ok := r.keys[key]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

// Create keeps the first response stored under a key
func (r *memoryIdempotencyRepository) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.keys[ikey.Key]; ok && !existing.IsExpiredAt(r.now()) {
		return nil
	}
	stored := *ikey
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now()
	}
	r.keys[ikey.Key] = stored
	return nil
}

func (r *memoryIdempotencyRepository) DeleteExpired(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var removed int64
	for k, v := range r.keys {
		if v.IsExpiredAt(now) {
			delete(r.keys, k)
			removed++
		}
	}
	return removed, nil
}
