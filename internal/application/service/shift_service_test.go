package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/enum"
	"github.com/sellwise/pos-api/internal/infrastructure/memory"
	"github.com/sellwise/pos-api/pkg/apperror"
)

type recordingNotifier struct {
	messages []string
}

func (n *recordingNotifier) Send(text string) error {
	n.messages = append(n.messages, text)
	return nil
}

type shiftFixture struct {
	shifts   *ShiftService
	receipts *ReceiptService
	products *ProductService
	notifier *recordingNotifier
}

func newShiftFixture(t *testing.T) *shiftFixture {
	t.Helper()

	shiftRepo := memory.NewShiftRepository()
	receiptRepo := memory.NewReceiptRepository()
	itemRepo := memory.NewReceiptItemRepository()
	productRepo := memory.NewProductRepository()
	campaignRepo := memory.NewCampaignRepository()
	notifier := &recordingNotifier{}

	return &shiftFixture{
		shifts:   NewShiftService(shiftRepo, receiptRepo, itemRepo, notifier),
		receipts: NewReceiptService(receiptRepo, itemRepo, productRepo, campaignRepo, shiftRepo, NewCurrencyService(2.5, 3.0)),
		products: NewProductService(productRepo),
		notifier: notifier,
	}
}

// sellReceipt runs one receipt through its full lifecycle on the shift.
func (f *shiftFixture) sellReceipt(t *testing.T, shiftID, productID uuid.UUID, qty int, total int64) {
	t.Helper()
	ctx := context.Background()

	receipt, err := f.receipts.Create(ctx, shiftID)
	if err != nil {
		t.Fatalf("create receipt: %v", err)
	}
	if _, err := f.receipts.AddItem(ctx, receipt.ID, productID, qty); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := f.receipts.CalculateTotal(ctx, receipt.ID); err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if _, err := f.receipts.ProcessPayment(ctx, receipt.ID, total, enum.CurrencyGEL); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if _, err := f.receipts.CloseReceipt(ctx, receipt.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestShiftOpenAndClose(t *testing.T) {
	f := newShiftFixture(t)
	ctx := context.Background()

	shift, err := f.shifts.Open(ctx)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if shift.State != enum.ShiftStateOpen {
		t.Fatalf("state = %s, want OPEN", shift.State)
	}

	closed, err := f.shifts.Close(ctx, shift.ID)
	if err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if closed.State != enum.ShiftStateClosed {
		t.Errorf("state = %s, want CLOSED", closed.State)
	}
	if closed.ClosedAt == nil {
		t.Error("ClosedAt not set")
	}
	if len(f.notifier.messages) != 1 {
		t.Errorf("owner notifications = %d, want 1", len(f.notifier.messages))
	}

	// A closed shift cannot close again.
	if _, err := f.shifts.Close(ctx, shift.ID); !apperror.IsKind(err, apperror.KindInvalidState) {
		t.Errorf("expected invalid state on double close, got %v", err)
	}
}

func TestShiftCloseBlockedByOpenReceipt(t *testing.T) {
	f := newShiftFixture(t)
	ctx := context.Background()

	shift, _ := f.shifts.Open(ctx)
	product, err := f.products.Create(ctx, "Sandwich", 950)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	receipt, err := f.receipts.Create(ctx, shift.ID)
	if err != nil {
		t.Fatalf("create receipt: %v", err)
	}
	if _, err := f.receipts.AddItem(ctx, receipt.ID, product.ID, 1); err != nil {
		t.Fatalf("add item: %v", err)
	}

	if _, err := f.shifts.Close(ctx, shift.ID); !apperror.IsKind(err, apperror.KindInvalidState) {
		t.Fatalf("expected invalid state with open receipt, got %v", err)
	}

	// Once the receipt is settled and closed, the shift closes too.
	if _, err := f.receipts.CalculateTotal(ctx, receipt.ID); err != nil {
		t.Fatalf("calculate: %v", err)
	}
	if _, err := f.receipts.ProcessPayment(ctx, receipt.ID, 950, enum.CurrencyGEL); err != nil {
		t.Fatalf("pay: %v", err)
	}
	if _, err := f.receipts.CloseReceipt(ctx, receipt.ID); err != nil {
		t.Fatalf("close receipt: %v", err)
	}
	if _, err := f.shifts.Close(ctx, shift.ID); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestShiftReports(t *testing.T) {
	f := newShiftFixture(t)
	ctx := context.Background()

	shift, _ := f.shifts.Open(ctx)
	espresso, err := f.products.Create(ctx, "Espresso", 500)
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	f.sellReceipt(t, shift.ID, espresso.ID, 2, 1000)
	f.sellReceipt(t, shift.ID, espresso.ID, 1, 500)

	// Y report is refused while the shift is still open.
	if _, err := f.shifts.YReport(ctx, shift.ID); !apperror.IsKind(err, apperror.KindInvalidState) {
		t.Errorf("expected invalid state for Y report on open shift, got %v", err)
	}

	xReport, err := f.shifts.XReport(ctx, shift.ID)
	if err != nil {
		t.Fatalf("XReport() error = %v", err)
	}
	if xReport.ClosedReceipts != 2 {
		t.Errorf("closed receipts = %d, want 2", xReport.ClosedReceipts)
	}
	if xReport.Revenue != 1500 {
		t.Errorf("revenue = %d, want 1500", xReport.Revenue)
	}
	if xReport.ItemsSold["Espresso"] != 3 {
		t.Errorf("espresso sold = %d, want 3", xReport.ItemsSold["Espresso"])
	}

	if _, err := f.shifts.Close(ctx, shift.ID); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// X report is refused once the shift has closed.
	if _, err := f.shifts.XReport(ctx, shift.ID); !apperror.IsKind(err, apperror.KindInvalidState) {
		t.Errorf("expected invalid state for X report on closed shift, got %v", err)
	}

	yReport, err := f.shifts.YReport(ctx, shift.ID)
	if err != nil {
		t.Fatalf("YReport() error = %v", err)
	}
	if yReport.Revenue != xReport.Revenue {
		t.Errorf("Y report revenue %d differs from X report %d", yReport.Revenue, xReport.Revenue)
	}
}

func TestShiftReportUnknownShift(t *testing.T) {
	f := newShiftFixture(t)

	if _, err := f.shifts.XReport(context.Background(), uuid.New()); !apperror.IsKind(err, apperror.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
