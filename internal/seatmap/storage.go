package seatmap

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Value serializes the layout to JSONB for storage on the bus row.
func (l Layout) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, fmt.Errorf("seat layout must not be empty")
	}
	return json.Marshal(l)
}

// Scan parses a stored layout and validates its shape. Seat numbers
// must run 1..N in order; a row that fails this check is corrupt.
func (l *Layout) Scan(value interface{}) error {
	if value == nil {
		return fmt.Errorf("seat layout column is null")
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported seat layout column type %T", value)
	}

	var decoded Layout
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("malformed seat layout: %w", err)
	}
	if len(decoded) == 0 {
		return fmt.Errorf("seat layout must not be empty")
	}
	for i, seat := range decoded {
		if seat.Number != i+1 {
			return fmt.Errorf("seat layout out of order at index %d: number %d", i, seat.Number)
		}
		if seat.Label == "" {
			return fmt.Errorf("seat %d has an empty label", seat.Number)
		}
	}

	*l = decoded
	return nil
}
