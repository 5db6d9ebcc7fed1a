package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octobees/nearby-restaurants/internal/config"
	"github.com/octobees/nearby-restaurants/internal/handler"
	middlewarepkg "github.com/octobees/nearby-restaurants/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Discover    *handler.DiscoverHandler
	Restaurants *handler.RestaurantsHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/discover", handlers.Discover.Discover, middlewarepkg.PathRateLimiter(cfg.RateLimitDiscover, "/discover"))

	e.GET("/restaurants", handlers.Restaurants.List)
	e.POST("/restaurants/:id/toggle", handlers.Restaurants.Toggle)
	e.GET("/restaurants/:id/photo", handlers.Restaurants.Photo)
}
