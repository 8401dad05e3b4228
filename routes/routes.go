package routes

import (
	"net/http"

	"trivianight/handlers"
	"trivianight/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	authHandler *handlers.AuthHandler,
	roundHandler *handlers.RoundHandler,
	gameHandler *handlers.GameHandler,
	dashboardHandler *handlers.DashboardHandler,
	jwtSecret string,
) {
	// API routes
	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Public browsing
		api.GET("/rounds", roundHandler.ListRounds)
		api.GET("/rounds/:id", roundHandler.GetRound)
		api.GET("/games", gameHandler.ListGames)
		api.GET("/games/upcoming", gameHandler.ListUpcomingGames)
		api.GET("/games/archive", gameHandler.ListArchivedGames)
		api.GET("/games/:id", gameHandler.GetGame)

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.GET("/auth/profile", authHandler.GetProfile)
			protected.GET("/dashboard", dashboardHandler.Dashboard)

			// Round authoring
			protected.POST("/rounds", roundHandler.CreateRound)
			protected.PUT("/rounds/:id/questions", roundHandler.ReplaceQuestions)
			protected.DELETE("/rounds/:id", roundHandler.DeactivateRound)
			protected.GET("/my/rounds", roundHandler.ListMyRounds)

			// Game assembly
			protected.POST("/games", gameHandler.CreateGame)
			protected.POST("/games/:id/rounds", gameHandler.AddRound)
			protected.DELETE("/games/:id/rounds/:roundID", gameHandler.RemoveRound)
			protected.DELETE("/games/:id", gameHandler.DeactivateGame)
			protected.GET("/my/games", gameHandler.ListMyGames)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
