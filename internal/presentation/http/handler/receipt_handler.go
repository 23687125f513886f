package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/application/service"
	"github.com/sellwise/pos-api/internal/domain/enum"
	"github.com/sellwise/pos-api/internal/presentation/http/dto/request"
	"github.com/sellwise/pos-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	printerService *service.PrinterService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService, printerService *service.PrinterService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService, printerService: printerService}
}

func receiptID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return uuid.Nil, false
	}
	return id, true
}

// Create handles opening a receipt on a shift
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req request.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	shiftID, err := uuid.Parse(req.ShiftID)
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	receipt, err := h.receiptService.Create(c.Request.Context(), shiftID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", receipt)
}

// Get handles getting a receipt, optionally converted to another currency
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := receiptID(c)
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id, queryCurrency(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// AddItem handles adding a product line to a receipt
func (h *ReceiptHandler) AddItem(c *gin.Context) {
	id, ok := receiptID(c)
	if !ok {
		return
	}

	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	receipt, err := h.receiptService.AddItem(c.Request.Context(), id, productID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added successfully", receipt)
}

// ListItems handles listing a receipt's line items
func (h *ReceiptHandler) ListItems(c *gin.Context) {
	id, ok := receiptID(c)
	if !ok {
		return
	}

	items, err := h.receiptService.GetReceiptItems(c.Request.Context(), id, queryCurrency(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt items retrieved successfully", items)
}

// ClearItems handles removing all line items from an open receipt
func (h *ReceiptHandler) ClearItems(c *gin.Context) {
	id, ok := receiptID(c)
	if !ok {
		return
	}

	if err := h.receiptService.ClearItems(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// CalculateTotal handles applying the active campaigns to a receipt
func (h *ReceiptHandler) CalculateTotal(c *gin.Context) {
	id, ok := receiptID(c)
	if !ok {
		return
	}

	total, err := h.receiptService.CalculateTotal(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt total calculated successfully", gin.H{
		"receipt_id": id,
		"total":      float64(total) / 100,
		"currency":   enum.ReferenceCurrency,
	})
}

// ProcessPayment handles settling a receipt
func (h *ReceiptHandler) ProcessPayment(c *gin.Context) {
	id, ok := receiptID(c)
	if !ok {
		return
	}

	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	receipt, err := h.receiptService.ProcessPayment(c.Request.Context(), id, toCents(req.Amount), enum.Currency(req.Currency))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment processed successfully", receipt)
}

// Close handles finalizing a payed receipt
func (h *ReceiptHandler) Close(c *gin.Context) {
	id, ok := receiptID(c)
	if !ok {
		return
	}

	receipt, err := h.receiptService.CloseReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt closed successfully", receipt)
}

// Quote handles quoting a receipt total in another currency
func (h *ReceiptHandler) Quote(c *gin.Context) {
	id, ok := receiptID(c)
	if !ok {
		return
	}

	quote, err := h.receiptService.GetQuote(c.Request.Context(), id, queryCurrency(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quote retrieved successfully", gin.H{
		"receipt_id":     quote.ReceiptID,
		"currency":       quote.Currency,
		"subtotal":       float64(quote.SubTotal) / 100,
		"total_discount": float64(quote.TotalDiscount) / 100,
		"total":          float64(quote.Total()) / 100,
	})
}

// Print handles printing a closed receipt
func (h *ReceiptHandler) Print(c *gin.Context) {
	id, ok := receiptID(c)
	if !ok {
		return
	}

	if err := h.printerService.PrintReceipt(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sent to printer", nil)
}
