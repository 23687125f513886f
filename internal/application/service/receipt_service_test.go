package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	"github.com/sellwise/pos-api/internal/domain/enum"
	"github.com/sellwise/pos-api/internal/domain/repository"
	"github.com/sellwise/pos-api/internal/infrastructure/memory"
	"github.com/sellwise/pos-api/pkg/apperror"
)

type receiptFixture struct {
	svc       *ReceiptService
	shifts    repository.ShiftRepository
	products  repository.ProductRepository
	campaigns repository.CampaignRepository
	items     repository.ReceiptItemRepository
	shiftID   uuid.UUID
}

func newReceiptFixture(t *testing.T) *receiptFixture {
	t.Helper()

	shifts := memory.NewShiftRepository()
	products := memory.NewProductRepository()
	campaigns := memory.NewCampaignRepository()
	receipts := memory.NewReceiptRepository()
	items := memory.NewReceiptItemRepository()
	currency := NewCurrencyService(2.5, 3.0)

	shift := &entity.Shift{State: enum.ShiftStateOpen}
	if err := shifts.Create(context.Background(), shift); err != nil {
		t.Fatalf("create shift: %v", err)
	}

	return &receiptFixture{
		svc:       NewReceiptService(receipts, items, products, campaigns, shifts, currency),
		shifts:    shifts,
		products:  products,
		campaigns: campaigns,
		items:     items,
		shiftID:   shift.ID,
	}
}

func (f *receiptFixture) addProduct(t *testing.T, name string, price int64) uuid.UUID {
	t.Helper()
	product := &entity.Product{Name: name, Price: price}
	if err := f.products.Create(context.Background(), product); err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product.ID
}

func (f *receiptFixture) addCampaign(t *testing.T, campaign entity.Campaign) {
	t.Helper()
	campaign.Active = true
	if campaign.Name == "" {
		campaign.Name = fmt.Sprintf("campaign-%s", uuid.New())
	}
	if err := f.campaigns.Create(context.Background(), &campaign); err != nil {
		t.Fatalf("create campaign: %v", err)
	}
}

func TestReceiptLifecycle(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()
	productID := f.addProduct(t, "Espresso", 500)

	receipt, err := f.svc.Create(ctx, f.shiftID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if receipt.State != enum.ReceiptStateOpen {
		t.Fatalf("new receipt state = %s, want OPEN", receipt.State)
	}

	if _, err := f.svc.AddItem(ctx, receipt.ID, productID, 2); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	total, err := f.svc.CalculateTotal(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("CalculateTotal() error = %v", err)
	}
	if total != 1000 {
		t.Fatalf("total = %d, want 1000", total)
	}

	payed, err := f.svc.ProcessPayment(ctx, receipt.ID, 1000, enum.CurrencyGEL)
	if err != nil {
		t.Fatalf("ProcessPayment() error = %v", err)
	}
	if payed.State != enum.ReceiptStatePayed {
		t.Fatalf("state after payment = %s, want PAYED", payed.State)
	}

	closed, err := f.svc.CloseReceipt(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("CloseReceipt() error = %v", err)
	}
	if closed.State != enum.ReceiptStateClosed {
		t.Fatalf("state after close = %s, want CLOSED", closed.State)
	}
}

func TestCreateReceiptShiftChecks(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()

	unknown := uuid.New()
	_, err := f.svc.Create(ctx, unknown)
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("expected not found for unknown shift, got %v", err)
	}
	wantMsg := fmt.Sprintf("Shift with id '%s' does not exist", unknown)
	if err.Error() != wantMsg {
		t.Errorf("error message = %q, want %q", err.Error(), wantMsg)
	}

	closedShift := &entity.Shift{State: enum.ShiftStateClosed}
	if err := f.shifts.Create(ctx, closedShift); err != nil {
		t.Fatalf("create shift: %v", err)
	}
	if _, err := f.svc.Create(ctx, closedShift.ID); !apperror.IsKind(err, apperror.KindInvalidState) {
		t.Fatalf("expected invalid state for closed shift, got %v", err)
	}
}

func TestAddItemMergesRepeatedProduct(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()
	productID := f.addProduct(t, "Latte", 700)

	receipt, _ := f.svc.Create(ctx, f.shiftID)
	if _, err := f.svc.AddItem(ctx, receipt.ID, productID, 1); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	updated, err := f.svc.AddItem(ctx, receipt.ID, productID, 2)
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	items, err := f.svc.GetReceiptItems(ctx, receipt.ID, enum.CurrencyGEL)
	if err != nil {
		t.Fatalf("GetReceiptItems() error = %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("line count = %d, want 1 merged line", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("merged quantity = %d, want 3", items[0].Quantity)
	}
	if updated.SubTotal != 2100 {
		t.Errorf("subtotal = %d, want 2100", updated.SubTotal)
	}
}

func TestAddItemSnapshotsNameAndPrice(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()
	productID := f.addProduct(t, "Bagel", 300)

	receipt, _ := f.svc.Create(ctx, f.shiftID)
	if _, err := f.svc.AddItem(ctx, receipt.ID, productID, 1); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	// The line carries its own copy of the catalog data.
	items, _ := f.svc.GetReceiptItems(ctx, receipt.ID, enum.CurrencyGEL)
	if items[0].ProductName != "Bagel" {
		t.Errorf("product name = %q, want snapshot %q", items[0].ProductName, "Bagel")
	}
	if items[0].UnitPrice != 300 {
		t.Errorf("unit price = %d, want snapshot 300", items[0].UnitPrice)
	}
}

func TestAddItemRefusedOutsideOpenState(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()
	productID := f.addProduct(t, "Tea", 400)

	receipt, _ := f.svc.Create(ctx, f.shiftID)
	f.svc.AddItem(ctx, receipt.ID, productID, 1)
	f.svc.CalculateTotal(ctx, receipt.ID)
	f.svc.ProcessPayment(ctx, receipt.ID, 400, enum.CurrencyGEL)

	_, err := f.svc.AddItem(ctx, receipt.ID, productID, 1)
	if !apperror.IsKind(err, apperror.KindInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if err.Error() != "cannot add items to receipt in PAYED state" {
		t.Errorf("error message = %q", err.Error())
	}
}

func TestAddItemInvalidatesCalculation(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()
	productID := f.addProduct(t, "Cake", 1000)
	f.addCampaign(t, entity.Campaign{
		Type:        enum.CampaignWholeReceiptDiscount,
		MinSubTotal: 500,
		Percentage:  10,
	})

	receipt, _ := f.svc.Create(ctx, f.shiftID)
	f.svc.AddItem(ctx, receipt.ID, productID, 1)
	if _, err := f.svc.CalculateTotal(ctx, receipt.ID); err != nil {
		t.Fatalf("CalculateTotal() error = %v", err)
	}

	// Adding another item drops the stale discount and calculation flag.
	updated, err := f.svc.AddItem(ctx, receipt.ID, productID, 1)
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if updated.Calculated {
		t.Error("receipt still marked calculated after item mutation")
	}
	if updated.TotalDiscount != 0 {
		t.Errorf("stale discount retained: %d", updated.TotalDiscount)
	}

	// Payment is refused until the receipt is recalculated.
	if _, err := f.svc.ProcessPayment(ctx, receipt.ID, 1800, enum.CurrencyGEL); !apperror.IsKind(err, apperror.KindInvalidState) {
		t.Fatalf("expected invalid state before recalculation, got %v", err)
	}

	total, err := f.svc.CalculateTotal(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("CalculateTotal() error = %v", err)
	}
	if total != 1800 {
		t.Errorf("total = %d, want 1800", total)
	}
}

func TestCalculateTotalIsIdempotent(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()
	productID := f.addProduct(t, "Pizza", 2000)
	f.addCampaign(t, entity.Campaign{
		Type:        enum.CampaignWholeReceiptDiscount,
		MinSubTotal: 1000,
		Percentage:  10,
	})

	receipt, _ := f.svc.Create(ctx, f.shiftID)
	f.svc.AddItem(ctx, receipt.ID, productID, 1)

	first, err := f.svc.CalculateTotal(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("CalculateTotal() error = %v", err)
	}
	second, err := f.svc.CalculateTotal(ctx, receipt.ID)
	if err != nil {
		t.Fatalf("CalculateTotal() error = %v", err)
	}
	if first != second {
		t.Errorf("repeated calculation changed the total: %d then %d", first, second)
	}
	if first != 1800 {
		t.Errorf("total = %d, want 1800", first)
	}
}

func TestProcessPaymentExactMatchOnly(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()
	productID := f.addProduct(t, "Salad", 1500)

	receipt, _ := f.svc.Create(ctx, f.shiftID)
	f.svc.AddItem(ctx, receipt.ID, productID, 1)
	f.svc.CalculateTotal(ctx, receipt.ID)

	for _, amount := range []int64{1499, 1501} {
		if _, err := f.svc.ProcessPayment(ctx, receipt.ID, amount, enum.CurrencyGEL); !apperror.IsKind(err, apperror.KindPaymentMismatch) {
			t.Errorf("amount %d: expected payment mismatch, got %v", amount, err)
		}
	}

	// A failed payment leaves the receipt open and payable.
	payed, err := f.svc.ProcessPayment(ctx, receipt.ID, 1500, enum.CurrencyGEL)
	if err != nil {
		t.Fatalf("ProcessPayment() error = %v", err)
	}
	if payed.State != enum.ReceiptStatePayed {
		t.Errorf("state = %s, want PAYED", payed.State)
	}
}

func TestProcessPaymentForeignCurrency(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()
	// 25.00 GEL total; at 2.5 GEL/USD that is exactly 10.00 USD.
	productID := f.addProduct(t, "Book", 2500)

	receipt, _ := f.svc.Create(ctx, f.shiftID)
	f.svc.AddItem(ctx, receipt.ID, productID, 1)
	f.svc.CalculateTotal(ctx, receipt.ID)

	payed, err := f.svc.ProcessPayment(ctx, receipt.ID, 1000, enum.CurrencyUSD)
	if err != nil {
		t.Fatalf("ProcessPayment() error = %v", err)
	}
	if payed.PaymentAmount != 1000 {
		t.Errorf("payment amount = %d, want verbatim 1000", payed.PaymentAmount)
	}
	if payed.PaymentCurrency == nil || *payed.PaymentCurrency != enum.CurrencyUSD {
		t.Errorf("payment currency = %v, want USD", payed.PaymentCurrency)
	}
	// Stored totals stay in the reference currency.
	if payed.SubTotal != 2500 {
		t.Errorf("subtotal = %d, want 2500", payed.SubTotal)
	}
}

func TestProcessPaymentRequiresCalculation(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()
	productID := f.addProduct(t, "Juice", 600)

	receipt, _ := f.svc.Create(ctx, f.shiftID)
	f.svc.AddItem(ctx, receipt.ID, productID, 1)

	if _, err := f.svc.ProcessPayment(ctx, receipt.ID, 600, enum.CurrencyGEL); !apperror.IsKind(err, apperror.KindInvalidState) {
		t.Fatalf("expected invalid state without calculation, got %v", err)
	}
}

func TestCloseReceiptRequiresPayedState(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()

	receipt, _ := f.svc.Create(ctx, f.shiftID)
	_, err := f.svc.CloseReceipt(ctx, receipt.ID)
	if !apperror.IsKind(err, apperror.KindInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if err.Error() != "cannot close receipt that is not in PAYED state" {
		t.Errorf("error message = %q", err.Error())
	}
}

func TestGetQuoteConvertsConsistently(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()
	productID := f.addProduct(t, "Headphones", 5000)
	f.addCampaign(t, entity.Campaign{
		Type:        enum.CampaignWholeReceiptDiscount,
		MinSubTotal: 1000,
		Percentage:  10,
	})

	receipt, _ := f.svc.Create(ctx, f.shiftID)
	f.svc.AddItem(ctx, receipt.ID, productID, 1)
	f.svc.CalculateTotal(ctx, receipt.ID)

	quote, err := f.svc.GetQuote(ctx, receipt.ID, enum.CurrencyUSD)
	if err != nil {
		t.Fatalf("GetQuote() error = %v", err)
	}
	if quote.SubTotal != 2000 {
		t.Errorf("quoted subtotal = %d, want 2000", quote.SubTotal)
	}
	if quote.TotalDiscount != 200 {
		t.Errorf("quoted discount = %d, want 200", quote.TotalDiscount)
	}
	if quote.Total() != quote.SubTotal-quote.TotalDiscount {
		t.Errorf("quote total %d breaks subtotal-discount identity", quote.Total())
	}

	// Quoting never mutates stored amounts.
	stored, _ := f.svc.GetReceipt(ctx, receipt.ID, enum.CurrencyGEL)
	if stored.SubTotal != 5000 {
		t.Errorf("stored subtotal = %d after quote, want 5000", stored.SubTotal)
	}
}

func TestGetReceiptUnknownID(t *testing.T) {
	f := newReceiptFixture(t)
	unknown := uuid.New()

	_, err := f.svc.GetReceipt(context.Background(), unknown, enum.CurrencyGEL)
	if !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	wantMsg := fmt.Sprintf("Receipt with id '%s' does not exist", unknown)
	if err.Error() != wantMsg {
		t.Errorf("error message = %q, want %q", err.Error(), wantMsg)
	}
}

func TestClearItemsResetsReceipt(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()
	productID := f.addProduct(t, "Soup", 800)

	receipt, _ := f.svc.Create(ctx, f.shiftID)
	f.svc.AddItem(ctx, receipt.ID, productID, 2)
	f.svc.CalculateTotal(ctx, receipt.ID)

	if err := f.svc.ClearItems(ctx, receipt.ID); err != nil {
		t.Fatalf("ClearItems() error = %v", err)
	}

	cleared, _ := f.svc.GetReceipt(ctx, receipt.ID, enum.CurrencyGEL)
	if cleared.SubTotal != 0 || cleared.TotalDiscount != 0 || cleared.Calculated {
		t.Errorf("receipt not reset: subtotal=%d discount=%d calculated=%v",
			cleared.SubTotal, cleared.TotalDiscount, cleared.Calculated)
	}
	items, _ := f.svc.GetReceiptItems(ctx, receipt.ID, enum.CurrencyGEL)
	if len(items) != 0 {
		t.Errorf("items remain after clear: %d", len(items))
	}
}

func TestDeactivatedCampaignStopsApplying(t *testing.T) {
	f := newReceiptFixture(t)
	ctx := context.Background()
	productID := f.addProduct(t, "Wine", 3000)

	campaign := entity.Campaign{
		Name:        "happy hour",
		Type:        enum.CampaignWholeReceiptDiscount,
		MinSubTotal: 1000,
		Percentage:  10,
		Active:      true,
	}
	if err := f.campaigns.Create(ctx, &campaign); err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	receipt, _ := f.svc.Create(ctx, f.shiftID)
	f.svc.AddItem(ctx, receipt.ID, productID, 1)
	total, _ := f.svc.CalculateTotal(ctx, receipt.ID)
	if total != 2700 {
		t.Fatalf("total with campaign = %d, want 2700", total)
	}

	if err := f.campaigns.Deactivate(ctx, campaign.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	// Recalculation reflects the current campaign set.
	total, _ = f.svc.CalculateTotal(ctx, receipt.ID)
	if total != 3000 {
		t.Errorf("total after deactivation = %d, want 3000", total)
	}
}
