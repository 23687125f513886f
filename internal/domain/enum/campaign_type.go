package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// CampaignType represents the kind of a promotional campaign.
// The set is closed: discount evaluation switches exhaustively over it.
type CampaignType int

const (
	CampaignBuyNGetN             CampaignType = 0
	CampaignCombo                CampaignType = 1
	CampaignDiscount             CampaignType = 2
	CampaignWholeReceiptDiscount CampaignType = 3
)

func (t CampaignType) String() string {
	return [...]string{"BUY_N_GET_N", "COMBO", "DISCOUNT", "WHOLE_RECEIPT_DISCOUNT"}[t]
}

// Valid reports whether t is one of the known campaign kinds.
func (t CampaignType) Valid() bool {
	return t >= CampaignBuyNGetN && t <= CampaignWholeReceiptDiscount
}

// ParseCampaignType converts a wire string into a CampaignType.
func ParseCampaignType(s string) (CampaignType, error) {
	switch s {
	case "BUY_N_GET_N":
		return CampaignBuyNGetN, nil
	case "COMBO":
		return CampaignCombo, nil
	case "DISCOUNT":
		return CampaignDiscount, nil
	case "WHOLE_RECEIPT_DISCOUNT":
		return CampaignWholeReceiptDiscount, nil
	}
	return 0, fmt.Errorf("unknown campaign type %q", s)
}

func (t CampaignType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *CampaignType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*t = CampaignType(i)
		return nil
	}
	switch str {
	case "BUY_N_GET_N":
		*t = CampaignBuyNGetN
	case "COMBO":
		*t = CampaignCombo
	case "DISCOUNT":
		*t = CampaignDiscount
	case "WHOLE_RECEIPT_DISCOUNT":
		*t = CampaignWholeReceiptDiscount
	default:
		return fmt.Errorf("unknown campaign type %q", str)
	}
	return nil
}

func (t CampaignType) Value() (driver.Value, error) {
	return int64(t), nil
}

func (t *CampaignType) Scan(value interface{}) error {
	if value == nil {
		*t = CampaignBuyNGetN
		return nil
	}
	switch v := value.(type) {
	case int64:
		*t = CampaignType(v)
	case int:
		*t = CampaignType(v)
	}
	return nil
}
