package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/application/service"
	"github.com/sellwise/pos-api/internal/domain/enum"
	"github.com/sellwise/pos-api/internal/presentation/http/dto/response"
)

// ShiftHandler handles shift-related HTTP requests
type ShiftHandler struct {
	shiftService *service.ShiftService
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

func shiftID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return uuid.Nil, false
	}
	return id, true
}

// Open handles opening a shift
func (h *ShiftHandler) Open(c *gin.Context) {
	shift, err := h.shiftService.Open(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shift opened successfully", shift)
}

// Get handles getting a shift
func (h *ShiftHandler) Get(c *gin.Context) {
	id, ok := shiftID(c)
	if !ok {
		return
	}

	shift, err := h.shiftService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift retrieved successfully", shift)
}

// Close handles closing a shift
func (h *ShiftHandler) Close(c *gin.Context) {
	id, ok := shiftID(c)
	if !ok {
		return
	}

	shift, err := h.shiftService.Close(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift closed successfully", shift)
}

// XReport handles the mid-shift report
func (h *ShiftHandler) XReport(c *gin.Context) {
	id, ok := shiftID(c)
	if !ok {
		return
	}

	report, err := h.shiftService.XReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "X report generated successfully", reportPayload(report))
}

// YReport handles the end-of-shift report
func (h *ShiftHandler) YReport(c *gin.Context) {
	id, ok := shiftID(c)
	if !ok {
		return
	}

	report, err := h.shiftService.YReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Y report generated successfully", reportPayload(report))
}

func reportPayload(report *service.ShiftReport) gin.H {
	return gin.H{
		"shift_id":        report.ShiftID,
		"state":           report.State,
		"receipts":        report.Receipts,
		"closed_receipts": report.ClosedReceipts,
		"revenue":         float64(report.Revenue) / 100,
		"currency":        enum.ReferenceCurrency,
		"items_sold":      report.ItemsSold,
	}
}
