package schedules

import (
	"time"

	"github.com/google/uuid"
)

type ScheduleResponse struct {
	ScheduleID             uuid.UUID `json:"schedule_id"`
	BusID                  uuid.UUID `json:"bus_id"`
	RouteID                uuid.UUID `json:"route_id"`
	EstimatedDepartureTime time.Time `json:"estimated_departure_time"`
	EstimatedArrivalTime   time.Time `json:"estimated_arrival_time"`
}

func toScheduleResponse(schedule *Schedule) ScheduleResponse {
	return ScheduleResponse{
		ScheduleID:             schedule.ID,
		BusID:                  schedule.BusID,
		RouteID:                schedule.RouteID,
		EstimatedDepartureTime: schedule.EstimatedDepartureTime,
		EstimatedArrivalTime:   schedule.EstimatedArrivalTime,
	}
}
