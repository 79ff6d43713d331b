package routes

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

func (c *Controller) CreateRoute(ctx *gin.Context) {
	var req CreateRouteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	route, err := c.service.CreateRoute(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Route has been created successfully.", route, nil)
}

func (c *Controller) GetRoutes(ctx *gin.Context) {
	found, err := c.service.GetRoutes(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	message := fmt.Sprintf("%d routes have been found.", len(found))
	response.RespondJSON(ctx, "success", http.StatusOK, message, found, nil)
}

func (c *Controller) DeleteRoute(ctx *gin.Context) {
	routeID := ctx.Param("routeId")
	if routeID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Route ID is required", nil, "missing route ID")
		return
	}

	if err := c.service.DeleteRoute(ctx.Request.Context(), routeID); err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Route has been deleted.", nil, nil)
}
