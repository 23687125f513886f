package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ReceiptState represents the lifecycle state of a receipt
type ReceiptState int

const (
	ReceiptStateOpen   ReceiptState = 0
	ReceiptStatePayed  ReceiptState = 1
	ReceiptStateClosed ReceiptState = 2
)

func (s ReceiptState) String() string {
	return [...]string{"OPEN", "PAYED", "CLOSED"}[s]
}

func (s ReceiptState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ReceiptState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ReceiptState(i)
		return nil
	}
	switch str {
	case "OPEN":
		*s = ReceiptStateOpen
	case "PAYED":
		*s = ReceiptStatePayed
	case "CLOSED":
		*s = ReceiptStateClosed
	}
	return nil
}

func (s ReceiptState) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ReceiptState) Scan(value interface{}) error {
	if value == nil {
		*s = ReceiptStateOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ReceiptState(v)
	case int:
		*s = ReceiptState(v)
	}
	return nil
}
