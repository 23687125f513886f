package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	domainRepo "github.com/sellwise/pos-api/internal/domain/repository"
)

type shiftRepository struct {
	mu     sync.RWMutex
	shifts map[uuid.UUID]entity.Shift
}

// NewShiftRepository creates an in-memory shift repository
func NewShiftRepository() domainRepo.ShiftRepository {
	return &shiftRepository{shifts: make(map[uuid.UUID]entity.Shift)}
}

func (r *shiftRepository) Create(ctx context.Context, shift *entity.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if shift.ID == uuid.Nil {
		shift.ID = uuid.New()
	}
	now := time.Now()
	shift.CreatedAt = now
	shift.UpdatedAt = now
	stored := *shift
	stored.Receipts = nil
	r.shifts[shift.ID] = stored
	return nil
}

func (r *shiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shift, ok := r.shifts[id]
	if !ok {
		return nil, nil
	}
	return &shift, nil
}

func (r *shiftRepository) Update(ctx context.Context, shift *entity.Shift) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	shift.UpdatedAt = time.Now()
	stored := *shift
	stored.Receipts = nil
	r.shifts[shift.ID] = stored
	return nil
}
