package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Material is a product consumed by one use of a service.
type Material struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// Materials is stored as a jsonb column.
type Materials []Material

func (m Materials) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *Materials) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("materials: unsupported type %T", src)
	}
	if len(raw) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(raw, m)
}

// Clone copies the snapshot so tickets never share a backing array with the catalog.
func (m Materials) Clone() Materials {
	if len(m) == 0 {
		return nil
	}
	out := make(Materials, len(m))
	copy(out, m)
	return out
}
