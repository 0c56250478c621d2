package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/kelvins/geocoder"

	httpapi "github.com/mkhalid12/weather-dashboard/internal/api/http"
	"github.com/mkhalid12/weather-dashboard/internal/config"
	"github.com/mkhalid12/weather-dashboard/internal/scheduler"
	"github.com/mkhalid12/weather-dashboard/internal/store"
	"github.com/mkhalid12/weather-dashboard/internal/weather"
	"github.com/mkhalid12/weather-dashboard/internal/weather/openweather"
)

func main() {
	// Load configuration (godotenv picks up .env in development).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls; the timeout bounds
	// both the current-weather and forecast fetches.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Append-only query log, constructed once and passed by handle.
	history, err := store.Open(cfg.HistoryDBPath)
	if err != nil {
		log.Fatalf("failed to open history store: %v", err)
	}
	defer history.Close()

	client := openweather.New(httpClient, cfg.OpenWeatherAPIKey)

	// Coordinate lookup for the map panel is optional.
	geocodeEnabled := cfg.GeocoderAPIKey != ""
	if geocodeEnabled {
		geocoder.ApiKey = cfg.GeocoderAPIKey
	}

	// Core service orchestrating fetch, normalize, persist and insights.
	service := weather.NewService(client, history, geocodeEnabled)

	// Scheduler that periodically refreshes tracked cities.
	sched := scheduler.New(cfg.TrackedCities, cfg.FetchInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-dashboard",
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
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, history)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
