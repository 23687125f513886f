package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	domainRepo "github.com/sellwise/pos-api/internal/domain/repository"
)

type cashierRepository struct {
	mu       sync.RWMutex
	cashiers map[uuid.UUID]entity.Cashier
}

// NewCashierRepository creates an in-memory cashier repository
func NewCashierRepository() domainRepo.CashierRepository {
	return &cashierRepository{cashiers: make(map[uuid.UUID]entity.Cashier)}
}

func (r *cashierRepository) Create(ctx context.Context, cashier *entity.Cashier) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cashier.ID == uuid.Nil {
		cashier.ID = uuid.New()
	}
	now := time.Now()
	cashier.CreatedAt = now
	cashier.UpdatedAt = now
	r.cashiers[cashier.ID] = *cashier
	return nil
}

func (r *cashierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Cashier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cashier, ok := r.cashiers[id]
	if !ok {
		return nil, nil
	}
	return &cashier, nil
}

func (r *cashierRepository) GetByEmail(ctx context.Context, email string) (*entity.Cashier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, cashier := range r.cashiers {
		if cashier.Email == email {
			c := cashier
			return &c, nil
		}
	}
	return nil, nil
}
