package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port           string
	StorageDriver  string // file | postgres | memory
	DatabaseURL    string
	DataDir        string
	JWTSecret      string
	SessionTTL     time.Duration
	BackupSchedule string // cron expression
}

// Load reads configuration from a .env file and environment variables.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	sessionHours, err := strconv.Atoi(getenv("SESSION_HOURS", "12"))
	if err != nil || sessionHours <= 0 {
		sessionHours = 12
	}
	return &Config{
		Port:           getenv("APP_PORT", "8080"),
		StorageDriver:  getenv("STORAGE_DRIVER", "file"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DataDir:        getenv("DATA_DIR", "data"),
		JWTSecret:      getenv("JWT_SECRET", "local-kiosk-secret"),
		SessionTTL:     time.Duration(sessionHours) * time.Hour,
		BackupSchedule: getenv("BACKUP_SCHEDULE", "0 2 * * *"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
