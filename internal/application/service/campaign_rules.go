package service

import (
	"github.com/google/uuid"
	"github.com/sellwise/pos-api/internal/domain/entity"
	"github.com/sellwise/pos-api/internal/domain/enum"
)

// discountResult is the outcome of evaluating the active campaigns over a
// receipt's line items. Line discounts map item id to the discount applied
// to that line; Aggregate includes both the line-scoped and the
// receipt-scoped amounts.
type discountResult struct {
	LineDiscounts map[uuid.UUID]int64
	Aggregate     int64
}

// evaluateCampaigns computes the total discount for the given line items
// and subtotal. Rules are evaluated independently and their discounts are
// summed; no rule observes another rule's output, so the result does not
// depend on campaign order. Line-scoped discounts are capped at the line's
// gross amount so no line total goes negative; the cap is applied to the
// accumulated sum per line, which keeps the aggregate order-independent
// even when several campaigns target the same line.
func evaluateCampaigns(items []entity.ReceiptItem, subtotal int64, campaigns []entity.Campaign) discountResult {
	requested := make(map[uuid.UUID]int64) // uncapped per-line sums
	var receiptScoped int64

	for i := range campaigns {
		campaign := &campaigns[i]
		if !campaign.Active {
			continue
		}
		switch campaign.Type {
		case enum.CampaignDiscount:
			applyDiscount(campaign, items, subtotal, requested, &receiptScoped)
		case enum.CampaignWholeReceiptDiscount:
			applyWholeReceiptDiscount(campaign, subtotal, &receiptScoped)
		case enum.CampaignBuyNGetN:
			applyBuyNGetN(campaign, items, &receiptScoped)
		case enum.CampaignCombo:
			applyCombo(campaign, items, &receiptScoped)
		}
	}

	result := discountResult{LineDiscounts: make(map[uuid.UUID]int64, len(requested))}
	for i := range items {
		want, ok := requested[items[i].ID]
		if !ok {
			continue
		}
		if gross := items[i].Gross(); want > gross {
			want = gross
		}
		result.LineDiscounts[items[i].ID] = want
		result.Aggregate += want
	}
	result.Aggregate += receiptScoped
	return result
}

// applyDiscount handles percentage discounts, either scoped to a product
// (recorded on the matching lines) or applied to the whole subtotal. An
// optional minimum purchase amount gates the rule.
func applyDiscount(c *entity.Campaign, items []entity.ReceiptItem, subtotal int64, requested map[uuid.UUID]int64, receiptScoped *int64) {
	if c.MinSubTotal > 0 && subtotal < c.MinSubTotal {
		return
	}

	if c.ProductID == nil {
		*receiptScoped += percentOf(subtotal, c.Percentage)
		return
	}

	for i := range items {
		if items[i].ProductID == *c.ProductID {
			requested[items[i].ID] += percentOf(items[i].Gross(), c.Percentage)
		}
	}
}

// applyWholeReceiptDiscount applies a percentage of the subtotal once the
// subtotal strictly exceeds the configured threshold.
func applyWholeReceiptDiscount(c *entity.Campaign, subtotal int64, receiptScoped *int64) {
	if subtotal <= c.MinSubTotal {
		return
	}
	*receiptScoped += percentOf(subtotal, c.Percentage)
}

// applyBuyNGetN counts the qualifying product across lines and awards free
// units per complete buy-set. The cap free <= count - buyQuantity prevents
// granting more free units than were actually paid for.
func applyBuyNGetN(c *entity.Campaign, items []entity.ReceiptItem, receiptScoped *int64) {
	if c.ProductID == nil || c.BuyQuantity < 1 {
		return
	}

	var count int
	var unitPrice int64
	for i := range items {
		if items[i].ProductID == *c.ProductID {
			count += items[i].Quantity
			unitPrice = items[i].UnitPrice
		}
	}
	if count < c.BuyQuantity {
		return
	}

	sets := count / c.BuyQuantity
	free := sets * c.FreeQuantity
	if maxFree := count - c.BuyQuantity; free > maxFree {
		free = maxFree
	}
	*receiptScoped += int64(free) * unitPrice
}

// applyCombo grants the fixed discount once when every required product is
// present on the receipt. Quantities are irrelevant; this is a presence test.
func applyCombo(c *entity.Campaign, items []entity.ReceiptItem, receiptScoped *int64) {
	if len(c.ComboProducts) == 0 {
		return
	}

	present := make(map[uuid.UUID]bool, len(items))
	for i := range items {
		present[items[i].ProductID] = true
	}
	for _, p := range c.ComboProducts {
		if !present[p.ProductID] {
			return
		}
	}
	*receiptScoped += c.DiscountAmount
}

func percentOf(amount int64, percentage int) int64 {
	return amount * int64(percentage) / 100
}
