package routes

import (
	"time"

	"github.com/google/uuid"
)

type Route struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Origin             string    `json:"origin" gorm:"not null;index:idx_routes_origin_destination"`
	Destination        string    `json:"destination" gorm:"not null;index:idx_routes_origin_destination"`
	DistanceInKm       float64   `json:"distance_in_km" gorm:"not null"`
	EstimatedTimeInMin int       `json:"estimated_time_in_min" gorm:"not null"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
