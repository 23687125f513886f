package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sellwise/pos-api/internal/application/service"
	"github.com/sellwise/pos-api/internal/config"
	domainRepo "github.com/sellwise/pos-api/internal/domain/repository"
	"github.com/sellwise/pos-api/internal/infrastructure/database"
	"github.com/sellwise/pos-api/internal/infrastructure/memory"
	"github.com/sellwise/pos-api/internal/infrastructure/repository"
	"github.com/sellwise/pos-api/internal/presentation/http/handler"
	"github.com/sellwise/pos-api/internal/presentation/http/routes"
	"github.com/sellwise/pos-api/pkg/notify"
	"github.com/sellwise/pos-api/pkg/printer"
	"github.com/sellwise/pos-api/pkg/utils"
)

type repositories struct {
	cashiers    domainRepo.CashierRepository
	shifts      domainRepo.ShiftRepository
	products    domainRepo.ProductRepository
	campaigns   domainRepo.CampaignRepository
	receipts    domainRepo.ReceiptRepository
	items       domainRepo.ReceiptItemRepository
	idempotency domainRepo.IdempotencyRepository
}

// newRepositories wires the persistence backend selected by DB_DRIVER.
// The memory backend exists for demos and kiosk installs without Postgres.
func newRepositories(cfg *config.Config) (*repositories, error) {
	if cfg.Database.Driver == "memory" {
		log.Println("Using in-memory persistence")
		return &repositories{
			cashiers:    memory.NewCashierRepository(),
			shifts:      memory.NewShiftRepository(),
			products:    memory.NewProductRepository(),
			campaigns:   memory.NewCampaignRepository(),
			receipts:    memory.NewReceiptRepository(),
			items:       memory.NewReceiptItemRepository(),
			idempotency: memory.NewIdempotencyRepository(),
		}, nil
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}

	return &repositories{
		cashiers:    repository.NewCashierRepository(db),
		shifts:      repository.NewShiftRepository(db),
		products:    repository.NewProductRepository(db),
		campaigns:   repository.NewCampaignRepository(db),
		receipts:    repository.NewReceiptRepository(db),
		items:       repository.NewReceiptItemRepository(db),
		idempotency: repository.NewIdempotencyRepository(db),
	}, nil
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	repos, err := newRepositories(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize persistence: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize owner notifications
	var notifier notify.Notifier
	if cfg.Telegram.Token != "" {
		telegramNotifier, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID)
		if err != nil {
			log.Printf("Warning: Failed to initialize Telegram notifier: %v", err)
			notifier = notify.NewNoopNotifier()
		} else {
			notifier = telegramNotifier
		}
	} else {
		notifier = notify.NewNoopNotifier()
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	currencyService := service.NewCurrencyService(cfg.Currency.USDRate, cfg.Currency.EURRate)
	authService := service.NewAuthService(repos.cashiers, jwtManager)
	productService := service.NewProductService(repos.products)
	campaignService := service.NewCampaignService(repos.campaigns, repos.products)
	shiftService := service.NewShiftService(repos.shifts, repos.receipts, repos.items, notifier)
	receiptService := service.NewReceiptService(
		repos.receipts, repos.items, repos.products, repos.campaigns, repos.shifts, currencyService)
	printerService := service.NewPrinterService(
		thermalPrinter, repos.receipts, repos.items, cfg.Printer.Type, cfg.App.Name)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Shift:    handler.NewShiftHandler(shiftService),
		Product:  handler.NewProductHandler(productService),
		Campaign: handler.NewCampaignHandler(campaignService),
		Receipt:  handler.NewReceiptHandler(receiptService, printerService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: repos.idempotency,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
