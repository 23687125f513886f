package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	domainRepo "github.com/sellwise/pos-api/internal/domain/repository"
	"github.com/sellwise/pos-api/pkg/pagination"
)

type campaignRepository struct {
	mu        sync.RWMutex
	campaigns []entity.Campaign // insertion-ordered, so ListActive is creation-ordered
}

// NewCampaignRepository creates an in-memory campaign repository
func NewCampaignRepository() domainRepo.CampaignRepository {
	return &campaignRepository{}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *entity.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if campaign.ID == uuid.Nil {
		campaign.ID = uuid.New()
	}
	for i := range campaign.ComboProducts {
		if campaign.ComboProducts[i].ID == uuid.Nil {
			campaign.ComboProducts[i].ID = uuid.New()
		}
		campaign.ComboProducts[i].CampaignID = campaign.ID
	}
	now := time.Now()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	stored := *campaign
	stored.ComboProducts = append([]entity.CampaignProduct(nil), campaign.ComboProducts...)
	r.campaigns = append(r.campaigns, stored)
	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.campaigns {
		if r.campaigns[i].ID == id {
			campaign := r.campaigns[i]
			campaign.ComboProducts = append([]entity.CampaignProduct(nil), r.campaigns[i].ComboProducts...)
			return &campaign, nil
		}
	}
	return nil, nil
}

func (r *campaignRepository) GetByName(ctx context.Context, name string) (*entity.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.campaigns {
		if r.campaigns[i].Name == name {
			campaign := r.campaigns[i]
			return &campaign, nil
		}
	}
	return nil, nil
}

func (r *campaignRepository) ListActive(ctx context.Context) ([]entity.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []entity.Campaign
	for i := range r.campaigns {
		if r.campaigns[i].Active {
			campaign := r.campaigns[i]
			campaign.ComboProducts = append([]entity.CampaignProduct(nil), r.campaigns[i].ComboProducts...)
			active = append(active, campaign)
		}
	}
	return active, nil
}

func (r *campaignRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Campaign, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	params.Validate()
	total := int64(len(r.campaigns))

	start := params.Offset()
	if start > len(r.campaigns) {
		start = len(r.campaigns)
	}
	end := start + params.PerPage
	if end > len(r.campaigns) {
		end = len(r.campaigns)
	}

	page := append([]entity.Campaign(nil), r.campaigns[start:end]...)
	return page, total, nil
}

func (r *campaignRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.campaigns {
		if r.campaigns[i].ID == id {
			r.campaigns[i].Active = false
			r.campaigns[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}
