package lots

import (
	"github.com/gin-gonic/gin"

	"mobypark/internal/shared/config"
	"mobypark/internal/shared/middleware"
)

func RegisterRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	lotRoutes := rg.Group("/lots")
	{
		// Public reads so drivers can browse lots without an account.
		lotRoutes.GET("", controller.GetAllLots)
		lotRoutes.GET("/:id", controller.GetLot)

		adminRoutes := lotRoutes.Group("")
		adminRoutes.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
		{
			adminRoutes.POST("", controller.CreateLot)
			adminRoutes.PATCH("/:id", controller.UpdateLot)
			adminRoutes.DELETE("/:id", controller.DeleteLot)
		}
	}
}
