// Package memory provides mutex-guarded in-memory implementations of the
// domain repositories. They back the "memory" database driver and the
// service tests; reads return copies so callers can never mutate stored
// state through a projection.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	domainRepo "github.com/sellwise/pos-api/internal/domain/repository"
)

type receiptRepository struct {
	mu       sync.RWMutex
	receipts map[uuid.UUID]entity.Receipt
}

// NewReceiptRepository creates an in-memory receipt repository
func NewReceiptRepository() domainRepo.ReceiptRepository {
	return &receiptRepository{receipts: make(map[uuid.UUID]entity.Receipt)}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	now := time.Now()
	receipt.CreatedAt = now
	receipt.UpdatedAt = now

	stored := *receipt
	stored.Items = nil
	r.receipts[receipt.ID] = stored
	return nil
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	receipt, ok := r.receipts[id]
	if !ok {
		return nil, nil
	}
	return &receipt, nil
}

func (r *receiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	receipt.UpdatedAt = time.Now()
	stored := *receipt
	stored.Items = nil
	r.receipts[receipt.ID] = stored
	return nil
}

func (r *receiptRepository) ListByShift(ctx context.Context, shiftID uuid.UUID) ([]entity.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var receipts []entity.Receipt
	for _, receipt := range r.receipts {
		if receipt.ShiftID == shiftID {
			receipts = append(receipts, receipt)
		}
	}
	return receipts, nil
}

type receiptItemRepository struct {
	mu    sync.RWMutex
	items []entity.ReceiptItem // insertion-ordered
}

// NewReceiptItemRepository creates an in-memory receipt item repository
func NewReceiptItemRepository() domainRepo.ReceiptItemRepository {
	return &receiptItemRepository{}
}

func (r *receiptItemRepository) Create(ctx context.Context, item *entity.ReceiptItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items = append(r.items, *item)
	return nil
}

func (r *receiptItemRepository) Update(ctx context.Context, item *entity.ReceiptItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID == item.ID {
			item.UpdatedAt = time.Now()
			r.items[i] = *item
			return nil
		}
	}
	return nil
}

func (r *receiptItemRepository) GetByReceiptID(ctx context.Context, receiptID uuid.UUID) ([]entity.ReceiptItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []entity.ReceiptItem
	for _, item := range r.items {
		if item.ReceiptID == receiptID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (r *receiptItemRepository) ClearDiscountsByReceiptID(ctx context.Context, receiptID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ReceiptID == receiptID {
			r.items[i].Discount = 0
		}
	}
	return nil
}

func (r *receiptItemRepository) DeleteByReceiptID(ctx context.Context, receiptID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.items[:0]
	for _, item := range r.items {
		if item.ReceiptID != receiptID {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}
