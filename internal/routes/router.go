package routes

import (
	"busline/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRouteRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Reading routes is open to any authenticated user
	public := rg.Group("/routes")
	public.Use(middleware.JWTAuth())
	{
		public.GET("", controller.GetRoutes) // GET /api/v1/routes
	}

	// Route management is admin only
	admin := rg.Group("/admin/routes")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateRoute)            // POST /api/v1/admin/routes
		admin.DELETE("/:routeId", controller.DeleteRoute) // DELETE /api/v1/admin/routes/:routeId
	}
}
