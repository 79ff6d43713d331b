package routes

import "github.com/google/uuid"

type RouteResponse struct {
	RouteID            uuid.UUID `json:"route_id"`
	Origin             string    `json:"origin"`
	Destination        string    `json:"destination"`
	DistanceInKm       float64   `json:"distance_in_km"`
	EstimatedTimeInMin int       `json:"estimated_time_in_min"`
}

func toRouteResponse(route *Route) RouteResponse {
	return RouteResponse{
		RouteID:            route.ID,
		Origin:             route.Origin,
		Destination:        route.Destination,
		DistanceInKm:       route.DistanceInKm,
		EstimatedTimeInMin: route.EstimatedTimeInMin,
	}
}
