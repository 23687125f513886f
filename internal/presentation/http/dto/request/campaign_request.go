package request

// CreateCampaignRequest represents the campaign creation request. Only the
// fields belonging to the declared campaign type may be set; monetary
// amounts are given in major currency units.
type CreateCampaignRequest struct {
	Name            string   `json:"name" binding:"required"`
	Type            string   `json:"type" binding:"required"`
	MinSubTotal     float64  `json:"min_subtotal"`
	ProductID       string   `json:"product_id"`
	BuyQuantity     int      `json:"buy_quantity"`
	FreeQuantity    int      `json:"free_quantity"`
	Percentage      int      `json:"percentage"`
	DiscountAmount  float64  `json:"discount_amount"`
	ComboProductIDs []string `json:"combo_product_ids"`
}
