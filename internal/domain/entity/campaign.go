package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Campaign represents a promotional rule. Exactly one kind per campaign;
// which of the condition/reward fields are meaningful depends on Type and
// is validated at creation. Campaigns are soft-deactivated, never deleted.
type Campaign struct {
	ID   uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	Name string            `gorm:"size:255;unique;not null" json:"name"`
	Type enum.CampaignType `gorm:"not null" json:"type"`

	// Conditions
	MinSubTotal int64      `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	ProductID   *uuid.UUID `gorm:"type:uuid;index" json:"product_id,omitempty"`
	BuyQuantity int        `gorm:"default:0" json:"buy_quantity,omitempty"`

	// Rewards
	Percentage     int   `gorm:"default:0" json:"percentage,omitempty"`
	DiscountAmount int64 `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	FreeQuantity   int   `gorm:"default:0" json:"free_quantity,omitempty"`

	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	ComboProducts []CampaignProduct `gorm:"foreignKey:CampaignID" json:"combo_products,omitempty"`
}

// ComboProductIDs returns the product ids a COMBO campaign requires.
func (c *Campaign) ComboProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.ComboProducts))
	for _, p := range c.ComboProducts {
		ids = append(ids, p.ProductID)
	}
	return ids
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (c Campaign) MarshalJSON() ([]byte, error) {
	type Alias Campaign
	return json.Marshal(&struct {
		Alias
		MinSubTotal    float64 `json:"min_subtotal,omitempty"`
		DiscountAmount float64 `json:"discount_amount,omitempty"`
	}{
		Alias:          Alias(c),
		MinSubTotal:    float64(c.MinSubTotal) / 100,
		DiscountAmount: float64(c.DiscountAmount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new campaign
func (c *Campaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// CampaignProduct links a COMBO campaign to one required product.
type CampaignProduct struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"-"`
	CampaignID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`

	// Relationships
	Campaign Campaign `gorm:"foreignKey:CampaignID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new campaign product
func (p *CampaignProduct) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CampaignProduct model
func (CampaignProduct) TableName() string {
	return "campaign_products"
}
