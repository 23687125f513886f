package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	domainRepo "github.com/sellwise/pos-api/internal/domain/repository"
)

type idempotencyKeyID struct {
	key       string
	cashierID uuid.UUID
}

type idempotencyRepository struct {
	mu   sync.RWMutex
	keys map[idempotencyKeyID]entity.IdempotencyKey
}

// NewIdempotencyRepository creates an in-memory idempotency key repository
func NewIdempotencyRepository() domainRepo.IdempotencyRepository {
	return &idempotencyRepository{keys: make(map[idempotencyKeyID]entity.IdempotencyKey)}
}

func (r *idempotencyRepository) Create(ctx context.Context, key *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if key.ID == uuid.Nil {
		key.ID = uuid.New()
	}
	key.CreatedAt = time.Now()
	r.keys[idempotencyKeyID{key: key.Key, cashierID: key.CashierID}] = *key
	return nil
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, cashierID uuid.UUID) (*entity.IdempotencyKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ikey, ok := r.keys[idempotencyKeyID{key: key, cashierID: cashierID}]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}
