package routes

type CreateRouteRequest struct {
	Origin             string  `json:"origin" binding:"required,min=2"`
	Destination        string  `json:"destination" binding:"required,min=2"`
	DistanceInKm       float64 `json:"distance_in_km" binding:"required,gt=0"`
	EstimatedTimeInMin int     `json:"estimated_time_in_min" binding:"required,gt=0"`
}
