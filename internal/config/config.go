// Package config loads runtime settings from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the binary needs from its environment.
type Config struct {
	// APIBaseURL is the back-office service root, without the /api/v1 prefix.
	APIBaseURL string
	// HTTPTimeout bounds every request to the service.
	HTTPTimeout time.Duration
	// LogFile is where the TUI writes its log; stdout would corrupt the screen.
	LogFile  string
	LogLevel string
	// DBPath overrides the default XDG location of the state database.
	DBPath string
}

// Load reads configuration. A missing .env is fine; real environment
// variables win over the file either way.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:  getEnv("BACKOFFICE_API_URL", "http://localhost:8080"),
		HTTPTimeout: 15 * time.Second,
		LogFile:     getEnv("BACKOFFICE_LOG_FILE", "backoffice.log"),
		LogLevel:    getEnv("BACKOFFICE_LOG_LEVEL", "info"),
		DBPath:      os.Getenv("BACKOFFICE_DB_PATH"),
	}

	if raw := os.Getenv("BACKOFFICE_HTTP_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config: invalid BACKOFFICE_HTTP_TIMEOUT %q: %w", raw, err)
		}
		cfg.HTTPTimeout = timeout
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
