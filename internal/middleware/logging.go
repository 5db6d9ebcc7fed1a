package middleware

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
)

// Logging writes a concise structured line for each HTTP request.
func Logging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			rid := RequestIDFromContext(c)
			route := c.Path()
			if route == "" {
				route = "-"
			}
			log.Printf("request_id=%s method=%s path=%s route=%s status=%d latency=%s",
				rid, c.Request().Method, c.Request().URL.Path, route, c.Response().Status, latency)

			return err
		}
	}
}
