package tickets

import (
	"busline/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTicketRoutes(rg *gin.RouterGroup, controller *Controller, bookingLimiter gin.HandlerFunc) {
	tickets := rg.Group("/tickets")
	tickets.Use(middleware.JWTAuth())
	{
		tickets.GET("/:bookingId", controller.GetTicket)                             // GET /api/v1/tickets/:bookingId
		tickets.POST("/resend/:bookingId", controller.ResendTicket)                  // POST /api/v1/tickets/resend/:bookingId
		tickets.POST("/refunds/:ticketId", bookingLimiter, controller.RequestRefund) // POST /api/v1/tickets/refunds/:ticketId
	}

	admin := rg.Group("/admin")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("/refunds", controller.ListRefunds)                            // GET /api/v1/admin/refunds
		admin.PATCH("/refunds/:refundId/money", controller.ConfirmMoneyReturned) // PATCH /api/v1/admin/refunds/:refundId/money
	}
}
