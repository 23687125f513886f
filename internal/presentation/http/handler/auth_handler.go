package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sellwise/pos-api/internal/application/service"
	"github.com/sellwise/pos-api/internal/presentation/http/dto/request"
	"github.com/sellwise/pos-api/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles cashier registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cashier, err := h.authService.Register(c.Request.Context(), &service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Cashier registered successfully", cashier)
}

// Login handles cashier login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	out, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"cashier":      out.Cashier,
		"access_token": out.AccessToken,
	})
}

// Me returns the authenticated cashier
func (h *AuthHandler) Me(c *gin.Context) {
	cashierID := GetCashierID(c)
	if cashierID == nil {
		response.Unauthorized(c, "Cashier not authenticated")
		return
	}

	cashier, err := h.authService.GetCurrentCashier(c.Request.Context(), *cashierID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Cashier retrieved successfully", cashier)
}
