package api

import (
	"github.com/gin-gonic/gin"

	"homeworth/server/internal/auth"
)

// SetupRoutes registers the API surface. Reads are public; submissions and
// the operational import endpoints require a resolved identity.
func SetupRoutes(router *gin.Engine, handler *Handler, authService *auth.Service) {
	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.GET("/properties/:id", handler.GetProperty)
		api.GET("/properties/:id/fmv", handler.GetFmv)
		api.GET("/properties/:id/guesses", handler.GetPropertyGuesses)

		authed := api.Group("")
		authed.Use(auth.RequireAuth(authService))
		{
			authed.POST("/properties/:id/guesses", handler.SubmitGuess)
		}

		admin := api.Group("/admin")
		admin.Use(auth.RequireAuth(authService))
		{
			admin.POST("/properties/import", handler.ImportProperties)
			admin.POST("/users/import", handler.ImportUsers)
		}
	}
}
