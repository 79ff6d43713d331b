package schedules

import (
	"busline/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupScheduleRoutes(rg *gin.RouterGroup, controller *Controller) {
	schedules := rg.Group("/schedules")
	schedules.Use(middleware.JWTAuth())
	{
		schedules.GET("", controller.GetSchedules)            // GET /api/v1/schedules
		schedules.GET("/:scheduleId", controller.GetSchedule) // GET /api/v1/schedules/:scheduleId
	}

	admin := rg.Group("/admin/schedules")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateSchedule)               // POST /api/v1/admin/schedules
		admin.DELETE("/:scheduleId", controller.DeleteSchedule) // DELETE /api/v1/admin/schedules/:scheduleId
	}
}
