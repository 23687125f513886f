package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
)

// ReceiptRepository defines the interface for receipt data operations.
// GetByID returns (nil, nil) when the receipt does not exist.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	Update(ctx context.Context, receipt *entity.Receipt) error
	ListByShift(ctx context.Context, shiftID uuid.UUID) ([]entity.Receipt, error)
}

// ReceiptItemRepository defines the interface for receipt line item data
// operations. Items are always scoped to one receipt.
type ReceiptItemRepository interface {
	Create(ctx context.Context, item *entity.ReceiptItem) error
	Update(ctx context.Context, item *entity.ReceiptItem) error
	GetByReceiptID(ctx context.Context, receiptID uuid.UUID) ([]entity.ReceiptItem, error)
	// ClearDiscountsByReceiptID zeroes the discount on every line of the
	// receipt. Called when an item mutation invalidates a prior calculation.
	ClearDiscountsByReceiptID(ctx context.Context, receiptID uuid.UUID) error
	// DeleteByReceiptID removes all lines of the receipt at once.
	DeleteByReceiptID(ctx context.Context, receiptID uuid.UUID) error
}
