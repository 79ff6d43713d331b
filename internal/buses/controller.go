package buses

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

func (c *Controller) CreateBus(ctx *gin.Context) {
	var req CreateBusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	bus, err := c.service.CreateBus(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "A bus has been created successfully.", bus, nil)
}

func (c *Controller) GetBuses(ctx *gin.Context) {
	var filters BusFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	found, err := c.service.GetBuses(ctx.Request.Context(), filters)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	message := fmt.Sprintf("%d buses have been found.", len(found))
	response.RespondJSON(ctx, "success", http.StatusOK, message, found, nil)
}

func (c *Controller) GetBus(ctx *gin.Context) {
	busID := ctx.Param("busId")
	if busID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Bus ID is required", nil, "missing bus ID")
		return
	}

	bus, err := c.service.GetBus(ctx.Request.Context(), busID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bus retrieved successfully", bus, nil)
}

func (c *Controller) DeleteBus(ctx *gin.Context) {
	busID := ctx.Param("busId")
	if busID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Bus ID is required", nil, "missing bus ID")
		return
	}

	if err := c.service.DeleteBus(ctx.Request.Context(), busID); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bus has been deleted successfully.", nil, nil)
}
