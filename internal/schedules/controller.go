package schedules

import (
	"fmt"
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

func (c *Controller) CreateSchedule(ctx *gin.Context) {
	var req CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	schedule, err := c.service.CreateSchedule(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "A schedule has been created successfully.", schedule, nil)
}

func (c *Controller) GetSchedules(ctx *gin.Context) {
	var filters ScheduleFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	found, err := c.service.GetSchedules(ctx.Request.Context(), filters)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	message := fmt.Sprintf("%d schedules have been found.", len(found))
	response.RespondJSON(ctx, "success", http.StatusOK, message, found, nil)
}

func (c *Controller) GetSchedule(ctx *gin.Context) {
	scheduleID := ctx.Param("scheduleId")
	if scheduleID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Schedule ID is required", nil, "missing schedule ID")
		return
	}

	schedule, err := c.service.GetSchedule(ctx.Request.Context(), scheduleID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Schedule retrieved successfully", schedule, nil)
}

func (c *Controller) DeleteSchedule(ctx *gin.Context) {
	scheduleID := ctx.Param("scheduleId")
	if scheduleID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Schedule ID is required", nil, "missing schedule ID")
		return
	}

	if err := c.service.DeleteSchedule(ctx.Request.Context(), scheduleID); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Schedule has been deleted successfully.", nil, nil)
}
