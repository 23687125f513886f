package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	"github.com/sellwise/pos-api/internal/domain/enum"
	"github.com/sellwise/pos-api/internal/domain/repository"
	"github.com/sellwise/pos-api/pkg/apperror"
	"github.com/sellwise/pos-api/pkg/printer"
)

// PrinterService renders closed receipts and sends them to the thermal
// printer.
type PrinterService struct {
	printer     printer.Printer
	receipts    repository.ReceiptRepository
	items       repository.ReceiptItemRepository
	printerType string
	storeName   string
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	receipts repository.ReceiptRepository,
	items repository.ReceiptItemRepository,
	printerType string,
	storeName string,
) *PrinterService {
	return &PrinterService{
		printer:     p,
		receipts:    receipts,
		items:       items,
		printerType: printerType,
		storeName:   storeName,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintReceipt renders a receipt and sends it to the printer. Only closed
// receipts can be printed; the fiscal document exists once the sale is
// final.
func (s *PrinterService) PrintReceipt(ctx context.Context, receiptID uuid.UUID) error {
	receipt, err := s.receipts.GetByID(ctx, receiptID)
	if err != nil {
		return err
	}
	if receipt == nil {
		return apperror.NewNotFoundError("Receipt", receiptID)
	}
	if receipt.State != enum.ReceiptStateClosed {
		return apperror.NewInvalidStateError("cannot print receipt in %s state", receipt.State)
	}

	items, err := s.items.GetByReceiptID(ctx, receiptID)
	if err != nil {
		return err
	}

	data := s.formatReceipt(receipt, items)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (receipt %s): %v", receiptID, err)
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	return nil
}

// formatReceipt converts a receipt into ESC/POS bytes.
func (s *PrinterService) formatReceipt(r *entity.Receipt, items []entity.ReceiptItem) []byte {
	currency := string(enum.ReferenceCurrency)
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		Text(s.storeName).
		SetBold(false).
		Text(r.CreatedAt.Format("2006-01-02 15:04")).
		Text(fmt.Sprintf("Receipt %s", shortID(r.ID)))

	doc.SetAlign(printer.AlignLeft).
		Separator()

	for i := range items {
		doc.AmountRow(fmt.Sprintf("%dx %s", items[i].Quantity, items[i].ProductName), items[i].Gross(), currency)
		if items[i].Discount > 0 {
			doc.AmountRow("  discount", -items[i].Discount, currency)
		}
	}

	doc.Separator().
		AmountRow("Subtotal", r.SubTotal, currency)
	if r.TotalDiscount > 0 {
		doc.AmountRow("Discount", -r.TotalDiscount, currency)
	}
	doc.SetBold(true)
	doc.AmountRow("TOTAL", r.Total(), currency)
	doc.SetBold(false)

	if r.PaymentCurrency != nil {
		doc.AmountRow("Paid", r.PaymentAmount, string(*r.PaymentCurrency))
	}
	if r.Savings() > 0 {
		doc.AmountRow("You saved", r.Savings(), currency)
	}

	doc.Separator().
		SetAlign(printer.AlignCenter).
		Text("Thank you!").
		FeedLines(3).
		Cut()

	return doc.Bytes()
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
