package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the application.
type Config struct {
	DatabaseURL     string
	ServerPort      int
	MinSquadSize    int
	CleanupInterval time.Duration
}

// Load reads configuration from environment variables, optionally picking up
// a .env file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	port, err := intFromEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	// Minimum IN responses before a match counts as confirmed.
	minSquadSize, err := intFromEnv("MIN_SQUAD_SIZE", 11)
	if err != nil {
		return nil, err
	}
	if minSquadSize <= 0 {
		return nil, fmt.Errorf("MIN_SQUAD_SIZE must be positive, got %d", minSquadSize)
	}

	cleanupSeconds, err := intFromEnv("CLEANUP_INTERVAL_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	if cleanupSeconds <= 0 {
		return nil, fmt.Errorf("CLEANUP_INTERVAL_SECONDS must be positive, got %d", cleanupSeconds)
	}

	cfg := &Config{
		DatabaseURL:     dbURL,
		ServerPort:      port,
		MinSquadSize:    minSquadSize,
		CleanupInterval: time.Duration(cleanupSeconds) * time.Second,
	}

	return cfg, nil
}

func intFromEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return value, nil
}
