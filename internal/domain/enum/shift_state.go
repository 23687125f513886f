package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ShiftState represents the lifecycle state of a cashier shift
type ShiftState int

const (
	ShiftStateOpen   ShiftState = 0
	ShiftStateClosed ShiftState = 1
)

func (s ShiftState) String() string {
	return [...]string{"OPEN", "CLOSED"}[s]
}

func (s ShiftState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ShiftState) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = ShiftState(i)
		return nil
	}
	switch str {
	case "OPEN":
		*s = ShiftStateOpen
	case "CLOSED":
		*s = ShiftStateClosed
	}
	return nil
}

func (s ShiftState) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *ShiftState) Scan(value interface{}) error {
	if value == nil {
		*s = ShiftStateOpen
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = ShiftState(v)
	case int:
		*s = ShiftState(v)
	}
	return nil
}
