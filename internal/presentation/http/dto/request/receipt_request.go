package request

// CreateReceiptRequest represents the receipt creation request
type CreateReceiptRequest struct {
	ShiftID string `json:"shift_id" binding:"required"`
}

// AddItemRequest represents the add-item request
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// PaymentRequest represents the payment request. Amount is given in major
// units of the payment currency.
type PaymentRequest struct {
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Currency string  `json:"currency" binding:"required"`
}
