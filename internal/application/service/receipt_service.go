package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	"github.com/sellwise/pos-api/internal/domain/enum"
	"github.com/sellwise/pos-api/internal/domain/repository"
	"github.com/sellwise/pos-api/pkg/apperror"
)

// ReceiptService is the receipt engine: it owns the lifecycle state
// machine, delegates discount computation to the campaign rules, and
// enforces the receipt invariants. Mutating operations on the same
// receipt are serialized through a per-id lock; operations on different
// receipts proceed in parallel.
type ReceiptService struct {
	receipts  repository.ReceiptRepository
	items     repository.ReceiptItemRepository
	products  repository.ProductRepository
	campaigns repository.CampaignRepository
	shifts    repository.ShiftRepository
	currency  *CurrencyService

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receipts repository.ReceiptRepository,
	items repository.ReceiptItemRepository,
	products repository.ProductRepository,
	campaigns repository.CampaignRepository,
	shifts repository.ShiftRepository,
	currency *CurrencyService,
) *ReceiptService {
	return &ReceiptService{
		receipts:  receipts,
		items:     items,
		products:  products,
		campaigns: campaigns,
		shifts:    shifts,
		currency:  currency,
		locks:     make(map[uuid.UUID]*sync.Mutex),
	}
}

// lockReceipt returns the mutex serializing mutations of one receipt.
func (s *ReceiptService) lockReceipt(id uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}

// getReceipt resolves a receipt or fails with NotFound.
func (s *ReceiptService) getReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.receipts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt", id)
	}
	return receipt, nil
}

// Create opens a new receipt on the given shift. The shift must exist and
// be open.
func (s *ReceiptService) Create(ctx context.Context, shiftID uuid.UUID) (*entity.Receipt, error) {
	shift, err := s.shifts.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Shift", shiftID)
	}
	if shift.State != enum.ShiftStateOpen {
		return nil, apperror.NewInvalidStateError("cannot open receipt on shift in %s state", shift.State)
	}

	receipt := &entity.Receipt{
		ShiftID: shiftID,
		State:   enum.ReceiptStateOpen,
	}
	if err := s.receipts.Create(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// AddItem adds a product to an open receipt. A repeated add of the same
// product merges into the existing line instead of creating a duplicate.
// Any previously computed discount is invalidated until the next
// CalculateTotal.
func (s *ReceiptService) AddItem(ctx context.Context, receiptID, productID uuid.UUID, quantity int) (*entity.Receipt, error) {
	if quantity < 1 {
		return nil, apperror.NewValidationError("quantity must be at least 1")
	}

	lock := s.lockReceipt(receiptID)
	lock.Lock()
	defer lock.Unlock()

	receipt, err := s.getReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.State != enum.ReceiptStateOpen {
		return nil, apperror.NewInvalidStateError("cannot add items to receipt in %s state", receipt.State)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product", productID)
	}

	items, err := s.items.GetByReceiptID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			items[i].Discount = 0
			if err := s.items.Update(ctx, &items[i]); err != nil {
				return nil, err
			}
			merged = true
			break
		}
	}
	if !merged {
		item := entity.ReceiptItem{
			ReceiptID:   receiptID,
			ProductID:   productID,
			ProductName: product.Name, // snapshot, immune to later renames
			Quantity:    quantity,
			UnitPrice:   product.Price, // snapshot
		}
		if err := s.items.Create(ctx, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	// The item set changed, so the previous discount no longer describes
	// this receipt. Drop it until the next calculation.
	if err := s.items.ClearDiscountsByReceiptID(ctx, receiptID); err != nil {
		return nil, err
	}

	var subtotal int64
	for i := range items {
		subtotal += items[i].Gross()
	}
	receipt.SubTotal = subtotal
	receipt.TotalDiscount = 0
	receipt.Calculated = false

	if err := s.receipts.Update(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// CalculateTotal evaluates the active campaigns against the receipt's
// current line items and folds the resulting discount into the receipt.
// The rule set is always evaluated fresh against the item snapshot and
// the stored discount is replaced, never incremented, so repeated calls
// are idempotent. Returns the payable total in reference-currency cents.
func (s *ReceiptService) CalculateTotal(ctx context.Context, receiptID uuid.UUID) (int64, error) {
	lock := s.lockReceipt(receiptID)
	lock.Lock()
	defer lock.Unlock()

	receipt, err := s.getReceipt(ctx, receiptID)
	if err != nil {
		return 0, err
	}
	if receipt.State != enum.ReceiptStateOpen {
		return 0, apperror.NewInvalidStateError("cannot calculate total for receipt in %s state", receipt.State)
	}

	items, err := s.items.GetByReceiptID(ctx, receiptID)
	if err != nil {
		return 0, err
	}
	campaigns, err := s.campaigns.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	result := evaluateCampaigns(items, receipt.SubTotal, campaigns)

	for i := range items {
		discount := result.LineDiscounts[items[i].ID]
		if items[i].Discount == discount {
			continue
		}
		items[i].Discount = discount
		if err := s.items.Update(ctx, &items[i]); err != nil {
			return 0, err
		}
	}

	receipt.TotalDiscount = result.Aggregate
	receipt.Calculated = true
	if err := s.receipts.Update(ctx, receipt); err != nil {
		return 0, err
	}
	return receipt.Total(), nil
}

// ProcessPayment settles an open, calculated receipt. The payment is
// converted to the reference currency and must equal the total exactly;
// there is no partial or overpayment tolerance. On success the payment
// amount and currency are recorded verbatim and the receipt moves to
// PAYED.
func (s *ReceiptService) ProcessPayment(ctx context.Context, receiptID uuid.UUID, amount int64, currency enum.Currency) (*entity.Receipt, error) {
	if !currency.Valid() {
		return nil, apperror.NewValidationError("unsupported currency '%s'", currency)
	}

	lock := s.lockReceipt(receiptID)
	lock.Lock()
	defer lock.Unlock()

	receipt, err := s.getReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.State != enum.ReceiptStateOpen {
		return nil, apperror.NewInvalidStateError("cannot process payment for receipt in %s state", receipt.State)
	}
	if !receipt.Calculated {
		return nil, apperror.NewInvalidStateError("cannot process payment for receipt that has not been calculated")
	}

	paid, err := s.currency.ToReference(amount, currency)
	if err != nil {
		return nil, err
	}
	if paid != receipt.Total() {
		return nil, apperror.NewPaymentMismatchError(
			"payment of %.2f %s does not match receipt total %.2f %s",
			float64(amount)/100, currency,
			float64(receipt.Total())/100, enum.ReferenceCurrency,
		)
	}

	receipt.State = enum.ReceiptStatePayed
	receipt.PaymentAmount = amount
	receipt.PaymentCurrency = &currency
	if err := s.receipts.Update(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// CloseReceipt finalizes a payed receipt. CLOSED is terminal: nothing
// mutates a receipt after this transition.
func (s *ReceiptService) CloseReceipt(ctx context.Context, receiptID uuid.UUID) (*entity.Receipt, error) {
	lock := s.lockReceipt(receiptID)
	lock.Lock()
	defer lock.Unlock()

	receipt, err := s.getReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt.State != enum.ReceiptStatePayed {
		return nil, apperror.NewInvalidStateError("cannot close receipt that is not in PAYED state")
	}

	receipt.State = enum.ReceiptStateClosed
	if err := s.receipts.Update(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// GetReceipt returns a read-only projection of the receipt with monetary
// fields converted to the requested currency. Stored values stay in the
// reference currency; repeated calls are side-effect-free.
func (s *ReceiptService) GetReceipt(ctx context.Context, receiptID uuid.UUID, currency enum.Currency) (*entity.Receipt, error) {
	if !currency.Valid() {
		return nil, apperror.NewValidationError("unsupported currency '%s'", currency)
	}

	receipt, err := s.getReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	if currency != enum.ReferenceCurrency {
		if receipt.SubTotal, err = s.currency.FromReference(receipt.SubTotal, currency); err != nil {
			return nil, err
		}
		if receipt.TotalDiscount, err = s.currency.FromReference(receipt.TotalDiscount, currency); err != nil {
			return nil, err
		}
	}

	items, err := s.GetReceiptItems(ctx, receiptID, currency)
	if err != nil {
		return nil, err
	}
	receipt.Items = items
	return receipt, nil
}

// GetReceiptItems returns the receipt's line items with unit price and
// discount converted to the requested currency.
func (s *ReceiptService) GetReceiptItems(ctx context.Context, receiptID uuid.UUID, currency enum.Currency) ([]entity.ReceiptItem, error) {
	if !currency.Valid() {
		return nil, apperror.NewValidationError("unsupported currency '%s'", currency)
	}

	if _, err := s.getReceipt(ctx, receiptID); err != nil {
		return nil, err
	}

	items, err := s.items.GetByReceiptID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	if currency != enum.ReferenceCurrency {
		for i := range items {
			if items[i].UnitPrice, err = s.currency.FromReference(items[i].UnitPrice, currency); err != nil {
				return nil, err
			}
			if items[i].Discount, err = s.currency.FromReference(items[i].Discount, currency); err != nil {
				return nil, err
			}
		}
	}
	return items, nil
}

// Quote is a read-only total in a requested currency.
type Quote struct {
	ReceiptID     uuid.UUID     `json:"receipt_id"`
	Currency      enum.Currency `json:"currency"`
	SubTotal      int64         `json:"-"`
	TotalDiscount int64         `json:"-"`
}

// Total returns the quoted payable amount. Derived from the converted
// subtotal and discount so the identity total = subtotal - discount holds
// in the target currency too.
func (q *Quote) Total() int64 {
	return q.SubTotal - q.TotalDiscount
}

// GetQuote returns the receipt's totals converted to the requested
// currency. Legal in any state and never mutates.
func (s *ReceiptService) GetQuote(ctx context.Context, receiptID uuid.UUID, currency enum.Currency) (*Quote, error) {
	if !currency.Valid() {
		return nil, apperror.NewValidationError("unsupported currency '%s'", currency)
	}

	receipt, err := s.getReceipt(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	subtotal, err := s.currency.FromReference(receipt.SubTotal, currency)
	if err != nil {
		return nil, err
	}
	discount, err := s.currency.FromReference(receipt.TotalDiscount, currency)
	if err != nil {
		return nil, err
	}

	return &Quote{
		ReceiptID:     receiptID,
		Currency:      currency,
		SubTotal:      subtotal,
		TotalDiscount: discount,
	}, nil
}

// ClearItems removes every line of a receipt, e.g. on administrative
// rollback. Only open receipts can be cleared.
func (s *ReceiptService) ClearItems(ctx context.Context, receiptID uuid.UUID) error {
	lock := s.lockReceipt(receiptID)
	lock.Lock()
	defer lock.Unlock()

	receipt, err := s.getReceipt(ctx, receiptID)
	if err != nil {
		return err
	}
	if receipt.State != enum.ReceiptStateOpen {
		return apperror.NewInvalidStateError("cannot clear items of receipt in %s state", receipt.State)
	}

	if err := s.items.DeleteByReceiptID(ctx, receiptID); err != nil {
		return err
	}

	receipt.SubTotal = 0
	receipt.TotalDiscount = 0
	receipt.Calculated = false
	return s.receipts.Update(ctx, receipt)
}
