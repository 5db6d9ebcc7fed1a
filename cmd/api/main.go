package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/nearby-restaurants/internal/config"
	"github.com/octobees/nearby-restaurants/internal/discovery"
	"github.com/octobees/nearby-restaurants/internal/handler"
	"github.com/octobees/nearby-restaurants/internal/location"
	"github.com/octobees/nearby-restaurants/internal/logging"
	middlewarepkg "github.com/octobees/nearby-restaurants/internal/middleware"
	"github.com/octobees/nearby-restaurants/internal/places"
	"github.com/octobees/nearby-restaurants/internal/presentation"
	"github.com/octobees/nearby-restaurants/internal/router"
	"github.com/octobees/nearby-restaurants/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	placesClient := places.NewClient(httpClient, cfg.PlacesBaseURL, cfg.PlacesAPIKey)
	normalizer := service.NewRestaurantNormalizer(cfg.PlacesBaseURL, cfg.PlacesAPIKey)

	state := presentation.NewListState()
	session := discovery.NewSession(placesClient, normalizer, state, logger)

	handlers := router.Handlers{
		Discover:    handler.NewDiscoverHandler(session, state),
		Restaurants: handler.NewRestaurantsHandler(state, handler.NewPhotoClient(httpClient), logger),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, handlers)

	if cfg.StartupLocation != nil {
		go func() {
			provider := location.Static{Permission: location.PermissionGranted, Fix: cfg.StartupLocation}
			if err := session.Discover(context.Background(), provider); err != nil {
				logger.Warn("Startup discovery did not load restaurants", slog.Any("error", err))
			}
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()
	logger.Info("Listening", slog.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	// Runs still in flight complete into a closed session and are dropped.
	session.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
