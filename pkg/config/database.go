package config

import (
	"log"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// DB holds the database connection
type DB struct {
	SQLite *gorm.DB
}

// InitDB initializes and returns the database connection
func InitDB(path string) (*DB, error) {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Multi-statement operations rely on FK cascades being active
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to SQLite!")
	return &DB{SQLite: db}, nil
}

// CloseDB closes the database connection
func (db *DB) CloseDB() {
	if db.SQLite == nil {
		return
	}
	sqlDB, err := db.SQLite.DB()
	if err != nil {
		log.Printf("Error getting SQL DB from GORM: %v\n", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing SQLite connection: %v\n", err)
	} else {
		log.Println("SQLite connection closed.")
	}
}
