package payments

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

func (c *Controller) CompletePayment(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	bookingID := ctx.Param("bookingId")
	if bookingID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Booking ID is required", nil, "missing booking ID")
		return
	}

	var req CompletePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	payment, err := c.service.CompletePayment(ctx.Request.Context(), userID.(string), bookingID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Payment has been completed and the ticket has been issued.", payment, nil)
}
