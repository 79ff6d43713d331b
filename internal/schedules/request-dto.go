package schedules

import "time"

type CreateScheduleRequest struct {
	BusID                  string    `json:"bus_id" binding:"required,uuid"`
	RouteID                string    `json:"route_id" binding:"required,uuid"`
	EstimatedDepartureTime time.Time `json:"estimated_departure_time" binding:"required"`
	EstimatedArrivalTime   time.Time `json:"estimated_arrival_time" binding:"required"`
}

type ScheduleFilters struct {
	RouteID string `form:"route_id"`
	BusID   string `form:"bus_id"`
}
