package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	"github.com/sellwise/pos-api/internal/domain/enum"
	"github.com/sellwise/pos-api/internal/domain/repository"
	"github.com/sellwise/pos-api/pkg/apperror"
	"github.com/sellwise/pos-api/pkg/pagination"
)

// CreateCampaignInput carries the kind-specific configuration of a new
// campaign. Which fields are required depends on the campaign type; the
// service rejects fields that do not belong to the declared kind.
type CreateCampaignInput struct {
	Name            string
	Type            enum.CampaignType
	MinSubTotal     int64
	ProductID       *uuid.UUID
	BuyQuantity     int
	FreeQuantity    int
	Percentage      int
	DiscountAmount  int64
	ComboProductIDs []uuid.UUID
}

// CampaignService manages campaign definitions. Evaluation against
// receipts lives in the receipt engine; this service only owns the
// configuration lifecycle.
type CampaignService struct {
	campaigns repository.CampaignRepository
	products  repository.ProductRepository
}

// NewCampaignService creates a new campaign service
func NewCampaignService(campaigns repository.CampaignRepository, products repository.ProductRepository) *CampaignService {
	return &CampaignService{campaigns: campaigns, products: products}
}

// Create validates and stores a campaign. Campaigns are active on
// creation.
func (s *CampaignService) Create(ctx context.Context, input CreateCampaignInput) (*entity.Campaign, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("campaign name is required")
	}
	if !input.Type.Valid() {
		return nil, apperror.NewValidationError("unknown campaign type")
	}
	if err := s.validateKind(ctx, input); err != nil {
		return nil, err
	}

	existing, err := s.campaigns.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewAlreadyExistsError("campaign with name '%s' already exists", input.Name)
	}

	campaign := &entity.Campaign{
		Name:           input.Name,
		Type:           input.Type,
		MinSubTotal:    input.MinSubTotal,
		ProductID:      input.ProductID,
		BuyQuantity:    input.BuyQuantity,
		FreeQuantity:   input.FreeQuantity,
		Percentage:     input.Percentage,
		DiscountAmount: input.DiscountAmount,
		Active:         true,
	}
	for _, productID := range input.ComboProductIDs {
		campaign.ComboProducts = append(campaign.ComboProducts, entity.CampaignProduct{ProductID: productID})
	}

	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// validateKind enforces the per-kind field contract and checks that every
// referenced product exists.
func (s *CampaignService) validateKind(ctx context.Context, input CreateCampaignInput) error {
	switch input.Type {
	case enum.CampaignBuyNGetN:
		if input.ProductID == nil {
			return apperror.NewValidationError("buy-n-get-n campaign requires a product")
		}
		if input.BuyQuantity < 1 || input.FreeQuantity < 1 {
			return apperror.NewValidationError("buy-n-get-n campaign requires positive buy and free quantities")
		}
		if input.Percentage != 0 || input.DiscountAmount != 0 || len(input.ComboProductIDs) != 0 {
			return apperror.NewValidationError("buy-n-get-n campaign accepts only product and quantities")
		}
		return s.requireProducts(ctx, *input.ProductID)

	case enum.CampaignCombo:
		if len(input.ComboProductIDs) < 2 {
			return apperror.NewValidationError("combo campaign requires at least two products")
		}
		if input.DiscountAmount <= 0 {
			return apperror.NewValidationError("combo campaign requires a positive discount amount")
		}
		if input.ProductID != nil || input.Percentage != 0 || input.BuyQuantity != 0 || input.FreeQuantity != 0 {
			return apperror.NewValidationError("combo campaign accepts only products and a discount amount")
		}
		return s.requireProducts(ctx, input.ComboProductIDs...)

	case enum.CampaignDiscount:
		if input.Percentage < 1 || input.Percentage > 100 {
			return apperror.NewValidationError("discount campaign requires a percentage between 1 and 100")
		}
		if input.DiscountAmount != 0 || input.BuyQuantity != 0 || input.FreeQuantity != 0 || len(input.ComboProductIDs) != 0 {
			return apperror.NewValidationError("discount campaign accepts only percentage, product and minimum subtotal")
		}
		if input.ProductID != nil {
			return s.requireProducts(ctx, *input.ProductID)
		}
		return nil

	case enum.CampaignWholeReceiptDiscount:
		if input.Percentage < 1 || input.Percentage > 100 {
			return apperror.NewValidationError("whole-receipt campaign requires a percentage between 1 and 100")
		}
		if input.MinSubTotal <= 0 {
			return apperror.NewValidationError("whole-receipt campaign requires a positive subtotal threshold")
		}
		if input.ProductID != nil || input.DiscountAmount != 0 || input.BuyQuantity != 0 || input.FreeQuantity != 0 || len(input.ComboProductIDs) != 0 {
			return apperror.NewValidationError("whole-receipt campaign accepts only percentage and subtotal threshold")
		}
		return nil
	}
	return apperror.NewValidationError("unknown campaign type")
}

func (s *CampaignService) requireProducts(ctx context.Context, ids ...uuid.UUID) error {
	for _, id := range ids {
		product, err := s.products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFoundError("Product", id)
		}
	}
	return nil
}

// Get returns a campaign by id.
func (s *CampaignService) Get(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, apperror.NewNotFoundError("Campaign", id)
	}
	return campaign, nil
}

// List returns a page of campaigns, active and inactive.
func (s *CampaignService) List(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Campaign], error) {
	params.Validate()

	campaigns, total, err := s.campaigns.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(campaigns, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// Deactivate retires a campaign. Deactivation is permanent; a retired
// campaign never influences later calculations.
func (s *CampaignService) Deactivate(ctx context.Context, id uuid.UUID) (*entity.Campaign, error) {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, apperror.NewNotFoundError("Campaign", id)
	}

	if campaign.Active {
		if err := s.campaigns.Deactivate(ctx, id); err != nil {
			return nil, err
		}
		campaign.Active = false
	}
	return campaign, nil
}
