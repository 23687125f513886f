package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	"github.com/sellwise/pos-api/pkg/pagination"
)

// CampaignRepository defines the interface for campaign data operations.
// Campaigns are never hard-deleted; Deactivate flips the active flag and
// the record is retained for audit.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *entity.Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Campaign, error)
	GetByName(ctx context.Context, name string) (*entity.Campaign, error)
	// ListActive returns active campaigns in creation order, combo
	// products preloaded.
	ListActive(ctx context.Context) ([]entity.Campaign, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Campaign, int64, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}
