package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/octobees/nearby-restaurants/internal/entity"
	"github.com/octobees/nearby-restaurants/internal/places"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values.
type Config struct {
	PlacesAPIKey      string
	PlacesBaseURL     string
	Port              string
	LogLevel          string
	HTTPTimeout       time.Duration
	RateLimitDiscover RateLimitConfig
	// StartupLocation, when set, triggers one discovery run at boot.
	StartupLocation *entity.Coordinate
}

// Load reads configuration from environment variables and applies defaults.
// The places credential has no default.
func Load() (*Config, error) {
	cfg := &Config{
		PlacesAPIKey:  strings.TrimSpace(os.Getenv("PLACES_API_KEY")),
		PlacesBaseURL: getEnv("PLACES_BASE_URL", places.DefaultBaseURL),
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		HTTPTimeout:   parseDuration(getEnv("HTTP_TIMEOUT", "10s"), 10*time.Second),
	}
	if cfg.PlacesAPIKey == "" {
		return nil, errors.New("PLACES_API_KEY is required")
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_DISCOVER", "5/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_DISCOVER value: %w", err)
	}
	cfg.RateLimitDiscover = rl

	loc, err := parseCoordinate(os.Getenv("STARTUP_LATITUDE"), os.Getenv("STARTUP_LONGITUDE"))
	if err != nil {
		return nil, fmt.Errorf("invalid startup location: %w", err)
	}
	cfg.StartupLocation = loc

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

// parseCoordinate returns nil when both parts are empty.
func parseCoordinate(lat, lng string) (*entity.Coordinate, error) {
	lat, lng = strings.TrimSpace(lat), strings.TrimSpace(lng)
	if lat == "" && lng == "" {
		return nil, nil
	}
	if lat == "" || lng == "" {
		return nil, errors.New("STARTUP_LATITUDE and STARTUP_LONGITUDE must be set together")
	}

	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q", lat)
	}
	longitude, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q", lng)
	}

	c := entity.Coordinate{Latitude: latitude, Longitude: longitude}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
