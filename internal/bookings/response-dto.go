package bookings

import (
	"time"

	"github.com/google/uuid"
)

type BookingResponse struct {
	BookingID   uuid.UUID `json:"booking_id"`
	ScheduleID  uuid.UUID `json:"schedule_id"`
	JourneyDate string    `json:"journey_date"`
	Status      Status    `json:"status"`
	TotalPrice  float64   `json:"total_price"`
	Seats       SeatList  `json:"seats"`
	CreatedAt   time.Time `json:"created_at"`
}

// AvailabilityResponse reports the free seats for one (schedule,
// journey date) pair. It is the payload cached per pair.
type AvailabilityResponse struct {
	ScheduleID     uuid.UUID `json:"schedule_id"`
	JourneyDate    string    `json:"journey_date"`
	TotalSeats     int       `json:"total_seats"`
	AvailableSeats SeatList  `json:"available_seats"`
}

func toBookingResponse(booking *Booking, seats SeatList) BookingResponse {
	return BookingResponse{
		BookingID:   booking.ID,
		ScheduleID:  booking.ScheduleID,
		JourneyDate: booking.JourneyDate.Format(journeyDateLayout),
		Status:      booking.Status,
		TotalPrice:  booking.TotalPrice,
		Seats:       seats,
		CreatedAt:   booking.CreatedAt,
	}
}
