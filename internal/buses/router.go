package buses

import (
	"busline/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBusRoutes(rg *gin.RouterGroup, controller *Controller) {
	buses := rg.Group("/buses")
	buses.Use(middleware.JWTAuth())
	{
		buses.GET("", controller.GetBuses)      // GET /api/v1/buses
		buses.GET("/:busId", controller.GetBus) // GET /api/v1/buses/:busId
	}

	admin := rg.Group("/admin/buses")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateBus)          // POST /api/v1/admin/buses
		admin.DELETE("/:busId", controller.DeleteBus) // DELETE /api/v1/admin/buses/:busId
	}
}
