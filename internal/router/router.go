package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/watchrebel/backend/internal/handlers"
	"github.com/watchrebel/backend/internal/middleware"
	"github.com/watchrebel/backend/internal/models"
	"github.com/watchrebel/backend/internal/repositories"
	"github.com/watchrebel/backend/internal/services"
	"github.com/watchrebel/backend/internal/ws"
	"github.com/watchrebel/backend/pkg/config"
	"github.com/watchrebel/backend/pkg/telegram"
	"github.com/watchrebel/backend/pkg/tmdb"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, firebaseAuthClient *auth.Client) {
	err := db.AutoMigrate(
		&models.User{},
		&models.NotificationSetting{},
		&models.WatchlistItem{},
		&models.CustomList{},
		&models.ListItem{},
		&models.Rating{},
		&models.WallPost{},
		&models.Reaction{},
		&models.Friend{},
		&models.Notification{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("SQLite auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewSQLiteUserRepository(db)
	friendshipRepo := repositories.NewSQLiteFriendshipRepository(db)
	listRepo := repositories.NewSQLiteListRepository(db)
	ratingRepo := repositories.NewSQLiteRatingRepository(db)
	wallRepo := repositories.NewSQLiteWallRepository(db)
	notificationRepo := repositories.NewSQLiteNotificationRepository(db)
	messageRepo := repositories.NewSQLiteMessageRepository(db)

	// --- Outbound clients and the connection hub ---
	hub := ws.NewHub()

	var catalog services.Catalog
	var tmdbClient *tmdb.Client
	if cfg.TMDBAPIKey != "" {
		tmdbClient = tmdb.New(cfg.TMDBAPIKey, cfg.TMDBMinInterval)
		catalog = tmdbClient
	} else {
		log.Println("TMDB_API_KEY not set, catalog lookups disabled.")
	}

	var pusher services.Pusher
	telegramClient := telegram.New(cfg.TelegramBotToken)
	if telegramClient.Enabled() {
		pusher = telegramClient
	} else {
		log.Println("TELEGRAM_BOT_TOKEN not set, Telegram push disabled.")
	}

	// --- Services ---
	fanout := services.NewFanoutNotifier(userRepo, friendshipRepo, notificationRepo, catalog, pusher, hub)
	membership := services.NewMembershipService(listRepo, fanout)
	gate := services.NewWallGate(userRepo, friendshipRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, userRepo))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)

	friendshipHandler := handlers.NewFriendshipHandler(friendshipRepo, userRepo)
	friendshipHandler.RegisterFriendshipRoutes(api)

	watchlistHandler := handlers.NewWatchlistHandler(listRepo, membership)
	watchlistHandler.RegisterWatchlistRoutes(api)

	listHandler := handlers.NewListHandler(listRepo, membership)
	listHandler.RegisterListRoutes(api)

	ratingHandler := handlers.NewRatingHandler(ratingRepo, wallRepo, fanout)
	ratingHandler.RegisterRatingRoutes(api)

	wallHandler := handlers.NewWallHandler(wallRepo, userRepo, gate, fanout, cfg.WallEditWindow)
	wallHandler.RegisterWallRoutes(api)

	reactionHandler := handlers.NewReactionHandler(wallRepo, fanout)
	reactionHandler.RegisterReactionRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	messageHandler := handlers.NewMessageHandler(messageRepo, userRepo, hub)
	messageHandler.RegisterMessageRoutes(api)

	wsHandler := handlers.NewWSHandler(hub)
	wsHandler.RegisterWSRoutes(api)

	if tmdbClient != nil {
		catalogHandler := handlers.NewCatalogHandler(tmdbClient)
		catalogHandler.RegisterCatalogRoutes(api)
	}
	log.Println("User, social and catalog routes configured.")

	// --- Admin routes (require the admin flag on top of JWT auth) ---
	admin := e.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, userRepo), middleware.AdminOnly())
	adminHandler := handlers.NewAdminHandler(userRepo, wallRepo)
	adminHandler.RegisterAdminRoutes(admin)
	log.Println("Admin routes configured.")
}
