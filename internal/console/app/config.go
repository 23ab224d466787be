package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/harborcrest/userdesk/internal/console/domain"
)

type Config struct {
	APIBaseURL string // Base URL of the backend API (default: http://localhost:5000)

	StateFile   string        // Path to the local SQLite state file (default: ./userdesk.db)
	SessionTTL  time.Duration // How long a persisted login stays valid (default: 7 days)
	HTTPTimeout time.Duration // Per-request timeout against the API (default: 10s)

	SingleRowEdit bool // Keep at most one record in edit mode at a time (default: true)

	Env       string // Environment (dev, staging, prod) (default: dev)
	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	// A .env alongside the binary is convenient for local use; absence is fine.
	_ = godotenv.Load()

	return Config{
		APIBaseURL:    getEnvOrDefault("USERDESK_API_BASE_URL", "http://localhost:5000"),
		StateFile:     getEnvOrDefault("USERDESK_STATE_FILE", "userdesk.db"),
		SessionTTL:    getEnvDurationOrDefault("USERDESK_SESSION_TTL", domain.SessionTTL),
		HTTPTimeout:   getEnvDurationOrDefault("USERDESK_HTTP_TIMEOUT", 10*time.Second),
		SingleRowEdit: getEnvBoolOrDefault("USERDESK_SINGLE_ROW_EDIT", true),
		Env:           getEnvOrDefault("ENV", "dev"),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:     getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer hours
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}

	return defaultValue
}
