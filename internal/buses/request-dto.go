package buses

type CreateBusRequest struct {
	RegistrationNumber string  `json:"registration_number" binding:"required,min=4"`
	BusType            string  `json:"bus_type" binding:"required"`
	Class              string  `json:"class" binding:"required"`
	FarePerTicket      float64 `json:"fare_per_ticket" binding:"required,gt=0"`
	DriverID           string  `json:"driver_id" binding:"required,uuid"`
}

type BusFilters struct {
	BusType string `form:"bus_type"`
	Class   string `form:"class"`
}
