package auth

import (
	"github.com/gin-gonic/gin"

	"mobypark/internal/shared/config"
	"mobypark/internal/shared/middleware"
)

func RegisterRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	authRoutes := rg.Group("/auth")
	{
		// Public routes (no authentication required)
		authRoutes.POST("/register", controller.Register)
		authRoutes.POST("/login", controller.Login)
		authRoutes.POST("/refresh", controller.RefreshToken)
		authRoutes.POST("/logout", controller.Logout)

		// Protected routes (authentication required)
		protected := authRoutes.Group("")
		protected.Use(middleware.JWTAuthWithConfig(cfg))
		{
			protected.PUT("/change-password", controller.ChangePassword)
			protected.GET("/me", controller.GetMe)
		}
	}
}
