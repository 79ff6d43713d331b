package bookings

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"busline/internal/seatmap"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a booking. A booking is created
// PENDING, becomes PAID when payment completes, and CANCELLED when a
// refund is requested. Only non-CANCELLED bookings hold seats.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

type Booking struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	ScheduleID  uuid.UUID `json:"schedule_id" gorm:"type:uuid;not null;index:idx_bookings_schedule_date"`
	JourneyDate time.Time `json:"journey_date" gorm:"type:date;not null;index:idx_bookings_schedule_date"`
	TotalPrice  float64   `json:"total_price" gorm:"not null"`
	Status      Status    `json:"status" gorm:"not null;default:'PENDING';index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SeatAllocation holds the concrete seats a booking claims. Exactly one
// per booking; deleted only when a refunded booking releases its seats.
type SeatAllocation struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID uuid.UUID `json:"booking_id" gorm:"type:uuid;uniqueIndex;not null"`
	Seats     SeatList  `json:"seats" gorm:"type:jsonb;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SeatList is the ordered (seat number, seat label) pairs of one
// allocation, stored as JSONB.
type SeatList []seatmap.Seat

// Numbers returns the claimed seat numbers in order.
func (sl SeatList) Numbers() []int {
	numbers := make([]int, len(sl))
	for i, seat := range sl {
		numbers[i] = seat.Number
	}
	return numbers
}

// Labels returns the claimed seat labels in order.
func (sl SeatList) Labels() []string {
	labels := make([]string, len(sl))
	for i, seat := range sl {
		labels[i] = seat.Label
	}
	return labels
}

// Value serializes the seat list for storage.
func (sl SeatList) Value() (driver.Value, error) {
	if err := sl.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(sl)
}

// Scan parses a stored seat list and rejects malformed rows.
func (sl *SeatList) Scan(value interface{}) error {
	if value == nil {
		return fmt.Errorf("seat list column is null")
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported seat list column type %T", value)
	}

	var decoded SeatList
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("malformed seat list: %w", err)
	}
	if err := decoded.validate(); err != nil {
		return err
	}

	*sl = decoded
	return nil
}

// validate enforces the allocation shape: at least one seat, labels
// present, numbers positive and strictly increasing.
func (sl SeatList) validate() error {
	if len(sl) == 0 {
		return fmt.Errorf("seat list must not be empty")
	}
	previous := 0
	for _, seat := range sl {
		if seat.Number <= previous {
			return fmt.Errorf("seat numbers must be strictly increasing, got %d after %d", seat.Number, previous)
		}
		if seat.Label == "" {
			return fmt.Errorf("seat %d has an empty label", seat.Number)
		}
		previous = seat.Number
	}
	return nil
}
