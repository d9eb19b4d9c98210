package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port                    string
	Env                     string
	SQLitePath              string
	JWTSecret               string
	FirebaseCredentialsPath string
	TMDBAPIKey              string
	TMDBMinInterval         time.Duration
	TelegramBotToken        string
	WallEditWindow          time.Duration
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		SQLitePath:              getEnv("SQLITE_PATH", "watchrebel.db"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		TMDBAPIKey:              getEnv("TMDB_API_KEY", ""),
		TMDBMinInterval:         time.Duration(getEnvInt("TMDB_MIN_INTERVAL_MS", 250)) * time.Millisecond,
		TelegramBotToken:        getEnv("TELEGRAM_BOT_TOKEN", ""),
		WallEditWindow:          time.Duration(getEnvInt("WALL_EDIT_WINDOW_MIN", 15)) * time.Minute,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
