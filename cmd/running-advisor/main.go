package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/runweather/running-advisor/internal/advice"
	httpapi "github.com/runweather/running-advisor/internal/api/http"
	"github.com/runweather/running-advisor/internal/cache"
	"github.com/runweather/running-advisor/internal/config"
	"github.com/runweather/running-advisor/internal/forecast"
	"github.com/runweather/running-advisor/internal/geo"
	"github.com/runweather/running-advisor/internal/logger"
	"github.com/runweather/running-advisor/internal/scheduler"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "development").Fatalf("failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.Env)

	// Shared HTTP client for outbound Open-Meteo calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Forecast cache: sqlite when a path is configured, in-memory otherwise.
	var store cache.Store
	if cfg.CachePath != "" {
		sqliteStore, err := cache.NewSQLiteStore(cfg.CachePath, cfg.CacheTTL, log)
		if err != nil {
			log.Warnf("sqlite cache unavailable at %q, using in-memory cache: %v", cfg.CachePath, err)
			store = cache.NewMemoryStore(cfg.CacheTTL)
		} else {
			store = sqliteStore
		}
	} else {
		store = cache.NewMemoryStore(cfg.CacheTTL)
	}
	defer store.Close()

	// Core service orchestrating resolution, fetch, cache, and ranking.
	resolver := geo.NewResolver(httpClient, cfg.GeocodingBaseURL)
	fetcher := forecast.NewClient(httpClient, cfg.ForecastBaseURL)
	service := advice.NewService(resolver, fetcher, store, log)

	// Scheduler that periodically sweeps expired cache entries.
	sched := scheduler.New(store, cfg.PruneInterval, log)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "running-advisor",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "running-advisor",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}
