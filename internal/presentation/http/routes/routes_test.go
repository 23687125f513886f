package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellwise/pos-api/internal/application/service"
	"github.com/sellwise/pos-api/internal/config"
	"github.com/sellwise/pos-api/internal/infrastructure/memory"
	"github.com/sellwise/pos-api/internal/presentation/http/handler"
	"github.com/sellwise/pos-api/pkg/notify"
	"github.com/sellwise/pos-api/pkg/printer"
	"github.com/sellwise/pos-api/pkg/utils"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App: config.AppConfig{Name: "pos-api-test"},
		RateLimit: config.RateLimitConfig{
			Requests: 1000,
			Duration: 1,
		},
	}

	cashierRepo := memory.NewCashierRepository()
	shiftRepo := memory.NewShiftRepository()
	productRepo := memory.NewProductRepository()
	campaignRepo := memory.NewCampaignRepository()
	receiptRepo := memory.NewReceiptRepository()
	itemRepo := memory.NewReceiptItemRepository()
	idempotencyRepo := memory.NewIdempotencyRepository()

	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	currencyService := service.NewCurrencyService(2.5, 3.0)

	receiptService := service.NewReceiptService(
		receiptRepo, itemRepo, productRepo, campaignRepo, shiftRepo, currencyService)
	printerService := service.NewPrinterService(
		printer.NewNullPrinter(), receiptRepo, itemRepo, "none", cfg.App.Name)

	handlers := &Handlers{
		Auth:     handler.NewAuthHandler(service.NewAuthService(cashierRepo, jwtManager)),
		Shift:    handler.NewShiftHandler(service.NewShiftService(shiftRepo, receiptRepo, itemRepo, notify.NewNoopNotifier())),
		Product:  handler.NewProductHandler(service.NewProductService(productRepo)),
		Campaign: handler.NewCampaignHandler(service.NewCampaignService(campaignRepo, productRepo)),
		Receipt:  handler.NewReceiptHandler(receiptService, printerService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	return Setup(handlers, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})
}

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (c *apiClient) do(method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	c.t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	}
	return w, parsed
}

func (c *apiClient) must(method, path, body string, wantStatus int, headers map[string]string) map[string]interface{} {
	c.t.Helper()
	w, parsed := c.do(method, path, body, headers)
	if w.Code != wantStatus {
		c.t.Fatalf("%s %s: status = %d, want %d (body %s)", method, path, w.Code, wantStatus, w.Body.String())
	}
	return parsed
}

func dataField(t *testing.T, payload map[string]interface{}, key string) interface{} {
	t.Helper()
	data, ok := payload["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %v", payload)
	}
	return data[key]
}

func TestCheckoutFlowOverHTTP(t *testing.T) {
	client := &apiClient{t: t, router: newTestRouter(t)}

	// Auth is required for everything beyond registration.
	w, _ := client.do("POST", "/api/v1/shifts", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated request: status = %d, want 401", w.Code)
	}

	client.must("POST", "/api/v1/auth/register",
		`{"name":"Nino","email":"nino@example.com","password":"correct horse"}`, 201, nil)
	login := client.must("POST", "/api/v1/auth/login",
		`{"email":"nino@example.com","password":"correct horse"}`, 200, nil)
	client.token, _ = dataField(t, login, "access_token").(string)
	if client.token == "" {
		t.Fatal("login returned no access token")
	}

	shift := client.must("POST", "/api/v1/shifts", "", 201, nil)
	shiftID := dataField(t, shift, "id").(string)

	product := client.must("POST", "/api/v1/products", `{"name":"Espresso","price":5.00}`, 201, nil)
	productID := dataField(t, product, "id").(string)

	client.must("POST", "/api/v1/campaigns",
		`{"name":"spend 8 save 10%","type":"WHOLE_RECEIPT_DISCOUNT","percentage":10,"min_subtotal":8.00}`, 201, nil)

	receipt := client.must("POST", "/api/v1/receipts", fmt.Sprintf(`{"shift_id":"%s"}`, shiftID), 201, nil)
	receiptID := dataField(t, receipt, "id").(string)

	client.must("POST", "/api/v1/receipts/"+receiptID+"/items",
		fmt.Sprintf(`{"product_id":"%s","quantity":2}`, productID), 200, nil)

	calc := client.must("POST", "/api/v1/receipts/"+receiptID+"/calculate", "", 200, nil)
	if total := dataField(t, calc, "total").(float64); total != 9.0 {
		t.Fatalf("calculated total = %v, want 9.0", total)
	}

	// Payment requires an idempotency key.
	w, _ = client.do("POST", "/api/v1/receipts/"+receiptID+"/payment",
		`{"amount":9.00,"currency":"GEL"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("payment without idempotency key: status = %d, want 400", w.Code)
	}

	idem := map[string]string{"Idempotency-Key": "pay-1"}
	payment := client.must("POST", "/api/v1/receipts/"+receiptID+"/payment",
		`{"amount":9.00,"currency":"GEL"}`, 200, idem)
	if state := dataField(t, payment, "state").(string); state != "PAYED" {
		t.Fatalf("state after payment = %s, want PAYED", state)
	}

	// A replayed payment returns the stored response, not a second charge.
	w, _ = client.do("POST", "/api/v1/receipts/"+receiptID+"/payment",
		`{"amount":9.00,"currency":"GEL"}`, idem)
	if w.Code != 200 {
		t.Fatalf("replayed payment: status = %d, want 200", w.Code)
	}
	if w.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("replayed payment not marked as replay")
	}

	quote := client.must("GET", "/api/v1/receipts/"+receiptID+"/quote?currency=USD", "", 200, nil)
	if total := dataField(t, quote, "total").(float64); total != 3.6 {
		t.Errorf("USD quote total = %v, want 3.6", total)
	}

	closed := client.must("POST", "/api/v1/receipts/"+receiptID+"/close", "", 200, nil)
	if state := dataField(t, closed, "state").(string); state != "CLOSED" {
		t.Fatalf("state after close = %s, want CLOSED", state)
	}

	client.must("POST", "/api/v1/receipts/"+receiptID+"/print", "", 200, nil)

	xReport := client.must("GET", "/api/v1/shifts/"+shiftID+"/x-report", "", 200, nil)
	if revenue := dataField(t, xReport, "revenue").(float64); revenue != 9.0 {
		t.Errorf("x-report revenue = %v, want 9.0", revenue)
	}

	client.must("POST", "/api/v1/shifts/"+shiftID+"/close", "", 200, nil)
	client.must("GET", "/api/v1/shifts/"+shiftID+"/y-report", "", 200, nil)
}

func TestUnknownReceiptOverHTTP(t *testing.T) {
	client := &apiClient{t: t, router: newTestRouter(t)}

	client.must("POST", "/api/v1/auth/register",
		`{"name":"Nino","email":"nino@example.com","password":"correct horse"}`, 201, nil)
	login := client.must("POST", "/api/v1/auth/login",
		`{"email":"nino@example.com","password":"correct horse"}`, 200, nil)
	client.token = dataField(t, login, "access_token").(string)

	w, parsed := client.do("GET", "/api/v1/receipts/2f9c7d7e-54f2-4bdf-8a30-0c1f7e2d9b11", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	want := "Receipt with id '2f9c7d7e-54f2-4bdf-8a30-0c1f7e2d9b11' does not exist"
	if msg, _ := parsed["message"].(string); msg != want {
		t.Errorf("message = %q, want %q", msg, want)
	}
}

func TestHealthEndpoint(t *testing.T) {
	client := &apiClient{t: t, router: newTestRouter(t)}

	payload := client.must("GET", "/health", "", 200, nil)
	if payload["status"] != "ok" {
		t.Errorf("health payload = %v", payload)
	}
}
