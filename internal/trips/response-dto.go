package trips

import (
	"time"

	"github.com/google/uuid"
)

type TripResponse struct {
	TripID     uuid.UUID `json:"trip_id"`
	ScheduleID uuid.UUID `json:"schedule_id"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// ScheduleTripStats reports how many journeys a schedule has finished.
// The count is always derived from trip rows, never stored.
type ScheduleTripStats struct {
	ScheduleID     uuid.UUID `json:"schedule_id"`
	CompletedTrips int64     `json:"completed_trips"`
}

func toTripResponse(trip *Trip) TripResponse {
	return TripResponse{
		TripID:     trip.ID,
		ScheduleID: trip.ScheduleID,
		Status:     trip.Status,
		CreatedAt:  trip.CreatedAt,
	}
}
