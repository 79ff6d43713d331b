package buses

import (
	"time"

	"busline/internal/seatmap"

	"github.com/google/uuid"
)

type Bus struct {
	ID                 uuid.UUID       `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	RegistrationNumber string          `json:"registration_number" gorm:"uniqueIndex;not null"`
	BusType            seatmap.BusType `json:"bus_type" gorm:"not null"`
	Class              seatmap.Class   `json:"class" gorm:"not null"`
	// Seats is the layout copied verbatim at creation time. Later
	// changes to the canonical tables never renumber an existing bus.
	Seats         seatmap.Layout `json:"seats" gorm:"type:jsonb;not null"`
	FarePerTicket float64        `json:"fare_per_ticket" gorm:"not null"`
	DriverID      uuid.UUID      `json:"driver_id" gorm:"type:uuid;uniqueIndex;not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}
