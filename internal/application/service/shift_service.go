package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	"github.com/sellwise/pos-api/internal/domain/enum"
	"github.com/sellwise/pos-api/internal/domain/repository"
	"github.com/sellwise/pos-api/pkg/apperror"
	"github.com/sellwise/pos-api/pkg/notify"
)

// ShiftReport aggregates a shift's trading figures. An X report is taken
// mid-shift; a Y (Z) report is the final version of the same numbers after
// the shift has closed.
type ShiftReport struct {
	ShiftID        uuid.UUID       `json:"shift_id"`
	State          enum.ShiftState `json:"state"`
	Receipts       int             `json:"receipts"`
	ClosedReceipts int             `json:"closed_receipts"`
	Revenue        int64           `json:"-"`
	ItemsSold      map[string]int  `json:"items_sold"`
}

// ShiftService manages shift sessions and their reports
type ShiftService struct {
	shifts   repository.ShiftRepository
	receipts repository.ReceiptRepository
	items    repository.ReceiptItemRepository
	notifier notify.Notifier
}

// NewShiftService creates a new shift service
func NewShiftService(
	shifts repository.ShiftRepository,
	receipts repository.ReceiptRepository,
	items repository.ReceiptItemRepository,
	notifier notify.Notifier,
) *ShiftService {
	return &ShiftService{
		shifts:   shifts,
		receipts: receipts,
		items:    items,
		notifier: notifier,
	}
}

func (s *ShiftService) getShift(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	shift, err := s.shifts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.NewNotFoundError("Shift", id)
	}
	return shift, nil
}

// Open starts a new shift.
func (s *ShiftService) Open(ctx context.Context) (*entity.Shift, error) {
	shift := &entity.Shift{
		State:    enum.ShiftStateOpen,
		OpenedAt: time.Now(),
	}
	if err := s.shifts.Create(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// Get returns a shift by id.
func (s *ShiftService) Get(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	return s.getShift(ctx, id)
}

// Close ends a shift. Every receipt on the shift must already be closed;
// an open or payed receipt blocks the transition. On success the owner is
// notified with a short summary of the shift's figures.
func (s *ShiftService) Close(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	shift, err := s.getShift(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift.State != enum.ShiftStateOpen {
		return nil, apperror.NewInvalidStateError("cannot close shift in %s state", shift.State)
	}

	receipts, err := s.receipts.ListByShift(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range receipts {
		if receipts[i].State != enum.ReceiptStateClosed {
			return nil, apperror.NewInvalidStateError(
				"cannot close shift with receipt '%s' in %s state", receipts[i].ID, receipts[i].State)
		}
	}

	now := time.Now()
	shift.State = enum.ShiftStateClosed
	shift.ClosedAt = &now
	if err := s.shifts.Update(ctx, shift); err != nil {
		return nil, err
	}

	sold, err := s.collectSold(ctx, receipts)
	if err != nil {
		return nil, err
	}
	report := buildReport(shift, receipts, sold)
	if err := s.notifier.Send(formatShiftSummary(report)); err != nil {
		// Notification failure must not undo the close.
		log.Printf("Warning: shift %s closed but owner notification failed: %v", shift.ID, err)
	}
	return shift, nil
}

// XReport returns the running figures of an open shift.
func (s *ShiftService) XReport(ctx context.Context, id uuid.UUID) (*ShiftReport, error) {
	return s.report(ctx, id, enum.ShiftStateOpen, "X report requires an open shift")
}

// YReport returns the final figures of a closed shift.
func (s *ShiftService) YReport(ctx context.Context, id uuid.UUID) (*ShiftReport, error) {
	return s.report(ctx, id, enum.ShiftStateClosed, "Y report requires a closed shift")
}

func (s *ShiftService) report(ctx context.Context, id uuid.UUID, want enum.ShiftState, msg string) (*ShiftReport, error) {
	shift, err := s.getShift(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift.State != want {
		return nil, apperror.NewInvalidStateError("%s, shift is in %s state", msg, shift.State)
	}

	receipts, err := s.receipts.ListByShift(ctx, id)
	if err != nil {
		return nil, err
	}

	sold, err := s.collectSold(ctx, receipts)
	if err != nil {
		return nil, err
	}
	return buildReport(shift, receipts, sold), nil
}

// collectSold tallies sold quantities per product name over the shift's
// closed receipts.
func (s *ShiftService) collectSold(ctx context.Context, receipts []entity.Receipt) (map[string]int, error) {
	sold := make(map[string]int)
	for i := range receipts {
		if receipts[i].State != enum.ReceiptStateClosed {
			continue
		}
		items, err := s.items.GetByReceiptID(ctx, receipts[i].ID)
		if err != nil {
			return nil, err
		}
		for j := range items {
			sold[items[j].ProductName] += items[j].Quantity
		}
	}
	return sold, nil
}

// buildReport folds closed receipts into revenue and receipt counts.
func buildReport(shift *entity.Shift, receipts []entity.Receipt, sold map[string]int) *ShiftReport {
	report := &ShiftReport{
		ShiftID:   shift.ID,
		State:     shift.State,
		Receipts:  len(receipts),
		ItemsSold: sold,
	}
	if report.ItemsSold == nil {
		report.ItemsSold = make(map[string]int)
	}
	for i := range receipts {
		if receipts[i].State == enum.ReceiptStateClosed {
			report.ClosedReceipts++
			report.Revenue += receipts[i].Total()
		}
	}
	return report
}

func formatShiftSummary(report *ShiftReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shift %s closed\n", report.ShiftID)
	fmt.Fprintf(&b, "Receipts: %d\n", report.ClosedReceipts)
	fmt.Fprintf(&b, "Revenue: %.2f %s", float64(report.Revenue)/100, enum.ReferenceCurrency)

	if len(report.ItemsSold) > 0 {
		names := make([]string, 0, len(report.ItemsSold))
		for name := range report.ItemsSold {
			names = append(names, name)
		}
		sort.Strings(names)
		b.WriteString("\nSold:")
		for _, name := range names {
			fmt.Fprintf(&b, "\n  %s x%d", name, report.ItemsSold[name])
		}
	}
	return b.String()
}
