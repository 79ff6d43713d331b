package buses

import (
	"busline/internal/seatmap"

	"github.com/google/uuid"
)

type BusResponse struct {
	BusID              uuid.UUID       `json:"bus_id"`
	RegistrationNumber string          `json:"registration_number"`
	BusType            seatmap.BusType `json:"bus_type"`
	Class              seatmap.Class   `json:"class"`
	TotalSeats         int             `json:"total_seats"`
	FarePerTicket      float64         `json:"fare_per_ticket"`
	DriverID           uuid.UUID       `json:"driver_id"`
}

func toBusResponse(bus *Bus) BusResponse {
	return BusResponse{
		BusID:              bus.ID,
		RegistrationNumber: bus.RegistrationNumber,
		BusType:            bus.BusType,
		Class:              bus.Class,
		TotalSeats:         len(bus.Seats),
		FarePerTicket:      bus.FarePerTicket,
		DriverID:           bus.DriverID,
	}
}
