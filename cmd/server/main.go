package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/watchrebel/backend/internal/router"
	"github.com/watchrebel/backend/pkg/config"
	"github.com/watchrebel/backend/pkg/firebase"
	"github.com/watchrebel/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Firebase (optional; local auth keeps working without it)
	firebaseApp, err := initFirebase(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	if firebaseApp != nil {
		router.SetupRoutes(e, db.SQLite, cfg, firebaseApp.AuthClient)
	} else {
		router.SetupRoutes(e, db.SQLite, cfg, nil)
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func initFirebase(cfg *config.Config) (*firebase.App, error) {
	if cfg.FirebaseCredentialsPath == "" {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, Firebase login disabled.")
		return nil, nil
	}
	return firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
}
