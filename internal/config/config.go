package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// Outbound Open-Meteo endpoints. Overridable for tests.
	GeocodingBaseURL string
	ForecastBaseURL  string

	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// CachePath is the sqlite file backing the forecast cache.
	// Empty means cache in memory only.
	CachePath string

	// CacheTTL is how long a cached forecast stays valid.
	CacheTTL time.Duration

	// PruneInterval controls how often expired cache entries are swept.
	PruneInterval time.Duration

	Port     string
	LogLevel string
	Env      string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.GeocodingBaseURL = getenvDefault("GEOCODING_BASE_URL", "https://geocoding-api.open-meteo.com/v1/search")
	cfg.ForecastBaseURL = getenvDefault("FORECAST_BASE_URL", "https://api.open-meteo.com/v1/forecast")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.CachePath = getenvDefault("CACHE_PATH", "advisor-cache.db")

	ttl, err := getenvDuration("CACHE_TTL", "1h")
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl

	prune, err := getenvDuration("PRUNE_INTERVAL", "30m")
	if err != nil {
		return nil, fmt.Errorf("invalid PRUNE_INTERVAL: %w", err)
	}
	cfg.PruneInterval = prune

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.Env = getenvDefault("APP_ENV", "development")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	return time.ParseDuration(getenvDefault(key, def))
}
