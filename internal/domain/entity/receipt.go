package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Receipt represents a single checkout transaction. Monetary fields are
// stored in reference-currency cents; projections convert on read only.
type Receipt struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ShiftID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"shift_id"`
	State         enum.ReceiptState `gorm:"default:0" json:"state"`
	SubTotal      int64             `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TotalDiscount int64             `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	// Calculated is flipped by CalculateTotal and cleared by any item
	// mutation; payment is refused while it is false.
	Calculated      bool           `gorm:"default:false" json:"calculated"`
	PaymentAmount   int64          `gorm:"default:0" json:"-"` // Verbatim paid cents in PaymentCurrency
	PaymentCurrency *enum.Currency `gorm:"size:3" json:"payment_currency,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Shift Shift         `gorm:"foreignKey:ShiftID" json:"-"`
	Items []ReceiptItem `gorm:"foreignKey:ReceiptID" json:"items,omitempty"`
}

// Total returns the payable amount in reference-currency cents.
func (r *Receipt) Total() int64 {
	return r.SubTotal - r.TotalDiscount
}

// Savings returns the amount the customer saved through campaigns.
func (r *Receipt) Savings() int64 {
	return r.TotalDiscount
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (r Receipt) MarshalJSON() ([]byte, error) {
	type Alias Receipt
	out := struct {
		Alias
		SubTotal      float64 `json:"subtotal"`
		TotalDiscount float64 `json:"total_discount"`
		Total         float64 `json:"total"`
		Savings       float64 `json:"savings"`
		PaymentAmount float64 `json:"payment_amount,omitempty"`
	}{
		Alias:         Alias(r),
		SubTotal:      float64(r.SubTotal) / 100,
		TotalDiscount: float64(r.TotalDiscount) / 100,
		Total:         float64(r.Total()) / 100,
		Savings:       float64(r.Savings()) / 100,
	}
	if r.PaymentCurrency != nil {
		out.PaymentAmount = float64(r.PaymentAmount) / 100
	}
	return json.Marshal(&out)
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// ReceiptItem represents one product line on a receipt. The product name
// and unit price are snapshots taken at add time.
type ReceiptItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"receipt_id"`
	ProductID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string         `gorm:"size:255;not null" json:"name"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	UnitPrice   int64          `gorm:"not null" json:"-"`  // Stored in cents, excluded from JSON
	Discount    int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Receipt Receipt `gorm:"foreignKey:ReceiptID" json:"-"`
}

// Gross returns quantity times unit price, before discount.
func (i *ReceiptItem) Gross() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// Total returns the line total after discount, never negative.
func (i *ReceiptItem) Total() int64 {
	total := i.Gross() - i.Discount
	if total < 0 {
		return 0
	}
	return total
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (i ReceiptItem) MarshalJSON() ([]byte, error) {
	type Alias ReceiptItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		Discount  float64 `json:"discount"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(i),
		UnitPrice: float64(i.UnitPrice) / 100,
		Discount:  float64(i.Discount) / 100,
		Total:     float64(i.Total()) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new receipt item
func (i *ReceiptItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptItem model
func (ReceiptItem) TableName() string {
	return "receipt_items"
}
