package trips

import (
	"busline/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupTripRoutes(rg *gin.RouterGroup, controller *Controller) {
	admin := rg.Group("/admin/trips")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.StartTrip)                        // POST /api/v1/admin/trips
		admin.GET("", controller.ListTrips)                         // GET /api/v1/admin/trips
		admin.GET("/:tripId", controller.GetTrip)                   // GET /api/v1/admin/trips/:tripId
		admin.PATCH("/:tripId/status", controller.UpdateTripStatus) // PATCH /api/v1/admin/trips/:tripId/status
	}

	schedules := rg.Group("/schedules")
	schedules.Use(middleware.JWTAuth())
	{
		schedules.GET("/:scheduleId/trips/stats", controller.GetScheduleTripStats) // GET /api/v1/schedules/:scheduleId/trips/stats
	}
}
