package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellwise/pos-api/internal/config"
	domainRepo "github.com/sellwise/pos-api/internal/domain/repository"
	"github.com/sellwise/pos-api/internal/presentation/http/handler"
	"github.com/sellwise/pos-api/internal/presentation/http/middleware"
	"github.com/sellwise/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Shift    *handler.ShiftHandler
	Product  *handler.ProductHandler
	Campaign *handler.CampaignHandler
	Receipt  *handler.ReceiptHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/auth/me", h.Auth.Me)

	// Shifts
	shifts := protected.Group("/shifts")
	{
		shifts.POST("", h.Shift.Open)
		shifts.GET("/:id", h.Shift.Get)
		shifts.POST("/:id/close", h.Shift.Close)
		shifts.GET("/:id/x-report", h.Shift.XReport)
		shifts.GET("/:id/y-report", h.Shift.YReport)
	}

	// Products
	products := protected.Group("/products")
	{
		products.POST("", h.Product.Create)
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
	}

	// Campaigns
	campaigns := protected.Group("/campaigns")
	{
		campaigns.POST("", h.Campaign.Create)
		campaigns.GET("", h.Campaign.List)
		campaigns.GET("/:id", h.Campaign.Get)
		campaigns.POST("/:id/deactivate", h.Campaign.Deactivate)
	}

	// Receipts
	receipts := protected.Group("/receipts")
	{
		receipts.POST("", h.Receipt.Create)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.POST("/:id/items", h.Receipt.AddItem)
		receipts.GET("/:id/items", h.Receipt.ListItems)
		receipts.DELETE("/:id/items", h.Receipt.ClearItems)
		receipts.POST("/:id/calculate", h.Receipt.CalculateTotal)
		receipts.POST("/:id/close", h.Receipt.Close)
		receipts.GET("/:id/quote", h.Receipt.Quote)
		receipts.POST("/:id/print", h.Receipt.Print)

		// A retried payment must not settle the receipt twice.
		payment := receipts.Group("")
		payment.Use(middleware.IdempotencyRequired(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))
		payment.POST("/:id/payment", h.Receipt.ProcessPayment)
	}

	// Printer
	protected.GET("/printer/status", h.Printer.GetStatus)
}
