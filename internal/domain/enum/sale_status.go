package enum

import (
	"encoding/json"
	"fmt"
)

// SaleStatus represents the shipping status of a sale
type SaleStatus int

const (
	SaleStatusNew     SaleStatus = 0
	SaleStatusShipped SaleStatus = 1
)

func (s SaleStatus) String() string {
	switch s {
	case SaleStatusNew:
		return "new"
	case SaleStatusShipped:
		return "shipped"
	default:
		return "unknown"
	}
}

// ParseSaleStatus parses the lower-case status name
func ParseSaleStatus(str string) (SaleStatus, error) {
	switch str {
	case "new":
		return SaleStatusNew, nil
	case "shipped":
		return SaleStatusShipped, nil
	default:
		return SaleStatusNew, fmt.Errorf("unknown sale status: %q", str)
	}
}

func (s SaleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the status name. A missing status decodes as new, which is
// what records written before the field existed carry.
func (s *SaleStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = SaleStatus(i)
		return nil
	}
	if str == "" {
		*s = SaleStatusNew
		return nil
	}
	status, err := ParseSaleStatus(str)
	if err != nil {
		return err
	}
	*s = status
	return nil
}
