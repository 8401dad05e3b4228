package main

import (
	"log"

	"trivianight/config"
	"trivianight/handlers"
	"trivianight/middleware"
	"trivianight/models"
	"trivianight/routes"
	"trivianight/services"
	"trivianight/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatal("Failed to load .env file:", err)
	}
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.User{},
		&models.Round{},
		&models.Question{},
		&models.Game{},
		&models.GameRound{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)
	viewCache := services.NewGameViewCache(redisClient)

	// Initialize attachment storage
	store, err := storage.NewStore(cfg.UploadFolder)
	if err != nil {
		log.Fatal("Failed to initialize upload folder:", err)
	}

	// Initialize services
	authService := services.NewAuthService(db, cfg.JWTSecret)
	roundService := services.NewRoundService(db, viewCache, cfg.RoundsPerPage)
	gameService := services.NewGameService(db, viewCache, cfg.GamesPerPage)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	roundHandler := handlers.NewRoundHandler(roundService, store, cfg.AllowedExtensions)
	gameHandler := handlers.NewGameHandler(gameService)
	dashboardHandler := handlers.NewDashboardHandler(roundService, gameService)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, authHandler, roundHandler, gameHandler, dashboardHandler, cfg.JWTSecret)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
