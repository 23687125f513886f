package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	domainRepo "github.com/sellwise/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Create(receipt).Error
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Save(receipt).Error
}

func (r *receiptRepository) ListByShift(ctx context.Context, shiftID uuid.UUID) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := r.db.WithContext(ctx).
		Where("shift_id = ?", shiftID).
		Order("created_at ASC").
		Find(&receipts).Error
	return receipts, err
}

type receiptItemRepository struct {
	db *gorm.DB
}

// NewReceiptItemRepository creates a new receipt item repository
func NewReceiptItemRepository(db *gorm.DB) domainRepo.ReceiptItemRepository {
	return &receiptItemRepository{db: db}
}

func (r *receiptItemRepository) Create(ctx context.Context, item *entity.ReceiptItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *receiptItemRepository) Update(ctx context.Context, item *entity.ReceiptItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *receiptItemRepository) GetByReceiptID(ctx context.Context, receiptID uuid.UUID) ([]entity.ReceiptItem, error) {
	var items []entity.ReceiptItem
	err := r.db.WithContext(ctx).
		Where("receipt_id = ?", receiptID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *receiptItemRepository) ClearDiscountsByReceiptID(ctx context.Context, receiptID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.ReceiptItem{}).
		Where("receipt_id = ?", receiptID).
		Update("discount", 0).Error
}

func (r *receiptItemRepository) DeleteByReceiptID(ctx context.Context, receiptID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ReceiptItem{}, "receipt_id = ?", receiptID).Error
}
