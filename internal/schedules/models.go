package schedules

import (
	"time"

	"github.com/google/uuid"
)

type Schedule struct {
	ID                     uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BusID                  uuid.UUID `json:"bus_id" gorm:"type:uuid;not null;index"`
	RouteID                uuid.UUID `json:"route_id" gorm:"type:uuid;not null;index"`
	EstimatedDepartureTime time.Time `json:"estimated_departure_time" gorm:"not null"`
	EstimatedArrivalTime   time.Time `json:"estimated_arrival_time" gorm:"not null"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}
