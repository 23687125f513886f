package handler

import (
	"math"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/enum"
)

// GetCashierID extracts the cashier ID from the Gin context
func GetCashierID(c *gin.Context) *uuid.UUID {
	cashierIDVal, exists := c.Get("cashier_id")
	if !exists {
		return nil
	}
	cashierID, ok := cashierIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &cashierID
}

// GetCashierEmail extracts the cashier email from the Gin context
func GetCashierEmail(c *gin.Context) string {
	email, exists := c.Get("cashier_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// toCents converts a major-unit decimal amount to cents
func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// queryCurrency reads the optional ?currency= parameter, defaulting to the
// reference currency. Validation happens in the service layer.
func queryCurrency(c *gin.Context) enum.Currency {
	raw := c.Query("currency")
	if raw == "" {
		return enum.ReferenceCurrency
	}
	return enum.Currency(raw)
}
