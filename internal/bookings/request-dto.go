package bookings

type CreateBookingRequest struct {
	ScheduleID  string `json:"schedule_id" binding:"required,uuid" validate:"required,uuid"`
	JourneyDate string `json:"journey_date" binding:"required" validate:"required,datetime=2006-01-02"`
	Seats       []int  `json:"seats" binding:"required,min=1,dive,gt=0" validate:"required,min=1,dive,gt=0"`
}

type AvailabilityQuery struct {
	ScheduleID  string `form:"schedule_id" binding:"required,uuid"`
	JourneyDate string `form:"journey_date" binding:"required"`
}
