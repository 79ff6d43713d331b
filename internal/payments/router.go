package payments

import (
	"busline/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPaymentRoutes(rg *gin.RouterGroup, controller *Controller, bookingLimiter gin.HandlerFunc) {
	payments := rg.Group("/payments")
	payments.Use(middleware.JWTAuth())
	{
		payments.POST("/:bookingId", bookingLimiter, controller.CompletePayment) // POST /api/v1/payments/:bookingId
	}
}
