package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Shift represents a cashier work session. Receipts belong to exactly one
// shift, and a shift only closes once all of its receipts are closed.
type Shift struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	State     enum.ShiftState `gorm:"default:0" json:"state"`
	OpenedAt  time.Time       `json:"opened_at"`
	ClosedAt  *time.Time      `json:"closed_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Receipts []Receipt `gorm:"foreignKey:ShiftID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new shift
func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shift model
func (Shift) TableName() string {
	return "shifts"
}
