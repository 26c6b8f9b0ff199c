package sessions

import (
	"github.com/gin-gonic/gin"

	"mobypark/internal/shared/config"
	"mobypark/internal/shared/middleware"
	"mobypark/internal/users"
)

func RegisterRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	sessionRoutes := rg.Group("/sessions")
	{
		// Entry and exit terminals authenticate as devices, not people.
		sessionRoutes.POST("/start", controller.StartSession)
		sessionRoutes.POST("/stop", controller.StopSession)

		authed := sessionRoutes.Group("")
		authed.Use(middleware.JWTAuthWithConfig(cfg))
		{
			authed.GET("/:id", controller.GetSession)

			opRoutes := authed.Group("")
			opRoutes.Use(middleware.RequireRoles(string(users.RoleOperator), string(users.RoleAdmin)))
			{
				opRoutes.GET("", controller.ListSessions)
				opRoutes.PATCH("/:id", controller.UpdateSession)
			}
		}
	}
}
