package request

// CreateProductRequest represents the product creation request. Price is
// given in major currency units and converted to cents on the way in.
type CreateProductRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required,gte=0"`
}
