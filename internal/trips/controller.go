package trips

import (
	"net/http"

	"busline/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) StartTrip(ctx *gin.Context) {
	var req StartTripRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	trip, err := c.service.StartTrip(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Trip has been started successfully.", trip, nil)
}

func (c *Controller) UpdateTripStatus(ctx *gin.Context) {
	tripID := ctx.Param("tripId")
	if tripID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Trip ID is required", nil, "missing trip ID")
		return
	}

	var req UpdateTripStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	trip, err := c.service.UpdateTripStatus(ctx.Request.Context(), tripID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Status of this trip has been updated successfully.", trip, nil)
}

func (c *Controller) GetTrip(ctx *gin.Context) {
	tripID := ctx.Param("tripId")
	if tripID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Trip ID is required", nil, "missing trip ID")
		return
	}

	trip, err := c.service.GetTrip(ctx.Request.Context(), tripID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Trip retrieved successfully", trip, nil)
}

func (c *Controller) ListTrips(ctx *gin.Context) {
	trips, err := c.service.ListTrips(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Trips retrieved successfully", trips, nil)
}

func (c *Controller) GetScheduleTripStats(ctx *gin.Context) {
	scheduleID := ctx.Param("scheduleId")
	if scheduleID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Schedule ID is required", nil, "missing schedule ID")
		return
	}

	stats, err := c.service.GetScheduleTripStats(ctx.Request.Context(), scheduleID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Trip stats retrieved successfully", stats, nil)
}
