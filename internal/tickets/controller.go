package tickets

import (
	"fmt"
	"net/http"
	"strconv"

	"busline/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) GetTicket(ctx *gin.Context) {
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

	ticket, err := c.service.GetTicket(ctx.Request.Context(), userID.(string), bookingID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Ticket has been found.", ticket, nil)
}

func (c *Controller) ResendTicket(ctx *gin.Context) {
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

	ticket, err := c.service.ResendTicket(ctx.Request.Context(), userID.(string), bookingID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Tickets have been sent to your email.", ticket, nil)
}

func (c *Controller) RequestRefund(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	ticketID := ctx.Param("ticketId")
	if ticketID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Ticket ID is required", nil, "missing ticket ID")
		return
	}

	var req RefundRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	refund, err := c.service.RequestRefund(ctx.Request.Context(), userID.(string), ticketID, req)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated,
		"Your ticket has been refunded, collect your paid amount from the counter.", refund, nil)
}

func (c *Controller) ListRefunds(ctx *gin.Context) {
	refunds, err := c.service.ListRefunds(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Refunds retrieved successfully", refunds, nil)
}

func (c *Controller) ConfirmMoneyReturned(ctx *gin.Context) {
	refundID := ctx.Param("refundId")
	if refundID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Refund ID is required", nil, "missing refund ID")
		return
	}

	confirmed, err := c.service.ConfirmMoneyReturned(ctx.Request.Context(), refundID)
	if err != nil {
		response.RespondError(ctx, err)
		return
	}

	message := fmt.Sprintf("Please pay %s taka to the client at the counter.",
		strconv.FormatFloat(confirmed.TotalPrice, 'f', -1, 64))
	response.RespondJSON(ctx, "success", http.StatusOK, message, confirmed, nil)
}
