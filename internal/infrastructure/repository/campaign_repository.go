package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	domainRepo "github.com/sellwise/pos-api/internal/domain/repository"
	"github.com/sellwise/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

type campaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a new campaign repository
func NewCampaignRepository(db *gorm.DB) domainRepo.CampaignRepository {
	return &campaignRepository{db: db}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *entity.Campaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

func (r *campaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	var campaign entity.Campaign
	err := r.db.WithContext(ctx).
		Preload("ComboProducts").
		First(&campaign, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &campaign, err
}

func (r *campaignRepository) GetByName(ctx context.Context, name string) (*entity.Campaign, error) {
	var campaign entity.Campaign
	err := r.db.WithContext(ctx).First(&campaign, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &campaign, err
}

func (r *campaignRepository) ListActive(ctx context.Context) ([]entity.Campaign, error) {
	var campaigns []entity.Campaign
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Preload("ComboProducts").
		Order("created_at ASC").
		Find(&campaigns).Error
	return campaigns, err
}

func (r *campaignRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Campaign, int64, error) {
	var campaigns []entity.Campaign
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Campaign{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("ComboProducts").
		Order("created_at DESC").
		Find(&campaigns).Error

	return campaigns, total, err
}

func (r *campaignRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&entity.Campaign{}).
		Where("id = ?", id).
		Update("active", false).Error
}
