package trips

type StartTripRequest struct {
	ScheduleID string `json:"schedule_id" binding:"required,uuid"`
}

type UpdateTripStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
