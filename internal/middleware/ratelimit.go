package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/octobees/nearby-restaurants/internal/config"
)

// PathRateLimiter applies a token bucket limiter to requests routed to path.
// The bucket is shared by all callers.
func PathRateLimiter(cfg config.RateLimitConfig, path string) echo.MiddlewareFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return next(c)
			}
		}
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}

	limiter := rate.NewLimiter(rate.Every(perRequest), cfg.Requests)
	var mu sync.Mutex

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() != path {
				return next(c)
			}

			mu.Lock()
			reservation := limiter.Reserve()
			delay := reservation.Delay()
			if delay > 0 {
				reservation.Cancel()
			}
			mu.Unlock()

			if delay > 0 {
				c.Response().Header().Set("Retry-After", retryAfterSeconds(delay))
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "discovery rate limit exceeded"})
			}

			return next(c)
		}
	}
}

func retryAfterSeconds(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
