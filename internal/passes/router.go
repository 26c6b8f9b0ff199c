package passes

import (
	"github.com/gin-gonic/gin"

	"mobypark/internal/shared/config"
	"mobypark/internal/shared/middleware"
	"mobypark/internal/users"
)

func RegisterRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	passRoutes := rg.Group("/passes")
	passRoutes.Use(middleware.JWTAuthWithConfig(cfg))
	{
		// Operators manage passes on behalf of partner hotels.
		opRoutes := passRoutes.Group("")
		opRoutes.Use(middleware.RequireRoles(string(users.RoleOperator), string(users.RoleAdmin)))
		{
			opRoutes.POST("", controller.CreatePass)
			opRoutes.GET("", controller.GetAllPasses)
			opRoutes.GET("/:id", controller.GetPass)
			opRoutes.PATCH("/:id", controller.UpdatePass)
			opRoutes.DELETE("/:id", controller.DeletePass)
		}
	}
}
