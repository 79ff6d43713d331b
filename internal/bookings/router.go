package bookings

import (
	"busline/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, bookingLimiter gin.HandlerFunc) {
	bookings := rg.Group("/bookings")
	bookings.Use(middleware.JWTAuth())
	{
		bookings.GET("", controller.GetUserBookings)                // GET /api/v1/bookings
		bookings.GET("/availability", controller.GetAvailableSeats) // GET /api/v1/bookings/availability
		bookings.GET("/:bookingId", controller.GetBooking)          // GET /api/v1/bookings/:bookingId

		// Seat reservation gets the tighter rate limit bucket
		bookings.POST("", bookingLimiter, controller.CreateBooking) // POST /api/v1/bookings
	}

	users := rg.Group("/users")
	users.Use(middleware.JWTAuth())
	{
		users.GET("/bookings", controller.GetUserBookings) // GET /api/v1/users/bookings
	}
}
