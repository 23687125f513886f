package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/application/service"
	"github.com/sellwise/pos-api/internal/domain/enum"
	"github.com/sellwise/pos-api/internal/presentation/http/dto/request"
	"github.com/sellwise/pos-api/internal/presentation/http/dto/response"
	"github.com/sellwise/pos-api/pkg/pagination"
)

// CampaignHandler handles campaign-related HTTP requests
type CampaignHandler struct {
	campaignService *service.CampaignService
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignService *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService}
}

// Create handles creating a campaign
func (h *CampaignHandler) Create(c *gin.Context) {
	var req request.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	campaignType, err := enum.ParseCampaignType(req.Type)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := service.CreateCampaignInput{
		Name:           req.Name,
		Type:           campaignType,
		MinSubTotal:    toCents(req.MinSubTotal),
		BuyQuantity:    req.BuyQuantity,
		FreeQuantity:   req.FreeQuantity,
		Percentage:     req.Percentage,
		DiscountAmount: toCents(req.DiscountAmount),
	}

	if req.ProductID != "" {
		productID, err := uuid.Parse(req.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid product ID")
			return
		}
		input.ProductID = &productID
	}

	for _, raw := range req.ComboProductIDs {
		productID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "Invalid combo product ID")
			return
		}
		input.ComboProductIDs = append(input.ComboProductIDs, productID)
	}

	campaign, err := h.campaignService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Campaign created successfully", campaign)
}

// Get handles getting a single campaign
func (h *CampaignHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid campaign ID")
		return
	}

	campaign, err := h.campaignService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Campaign retrieved successfully", campaign)
}

// List handles listing campaigns
func (h *CampaignHandler) List(c *gin.Context) {
	var params pagination.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.campaignService.List(c.Request.Context(), &params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Campaigns retrieved successfully", result)
}

// Deactivate handles retiring a campaign
func (h *CampaignHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid campaign ID")
		return
	}

	campaign, err := h.campaignService.Deactivate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Campaign deactivated successfully", campaign)
}
