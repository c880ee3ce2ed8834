package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/i474232898/weather-lookup/internal/api/http"
	"github.com/i474232898/weather-lookup/internal/catalog"
	"github.com/i474232898/weather-lookup/internal/config"
	"github.com/i474232898/weather-lookup/internal/locale"
	"github.com/i474232898/weather-lookup/internal/scheduler"
	"github.com/i474232898/weather-lookup/internal/store"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
	"github.com/i474232898/weather-lookup/internal/widget"
	"github.com/i474232898/weather-lookup/pkg/logger"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.LogLevel)

	// Shared HTTP client for the outbound weather call.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherBaseURL, cfg.OpenWeatherAPIKey)
	recent := store.NewRecentStore(cfg.RecentLimit)
	service := weather.NewService(provider, recent, appLogger)

	cat, err := catalog.Default(cfg.SuggestMinChars)
	if err != nil {
		appLogger.Error("failed to load city catalog", "error", err)
		os.Exit(1)
	}
	w := widget.New(service, cat, recent, locale.Default(), widget.Options{
		MapZoom: cfg.MapZoom,
		Logger:  appLogger,
	})

	// Optional refresh of the displayed city.
	sched := scheduler.New(w, cfg.RefreshInterval, cfg.HTTPTimeout, appLogger)
	if err := sched.Start(); err != nil {
		appLogger.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-lookup",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.HTTPTimeout + 5*time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-lookup",
		})
	})

	httpapi.RegisterRoutes(app, w, cat)

	go func() {
		appLogger.Info("listening", "port", cfg.Port, "cities", cat.Len())
		if err := app.Listen(":" + cfg.Port); err != nil {
			appLogger.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("error during shutdown", "error", err)
	}
}
