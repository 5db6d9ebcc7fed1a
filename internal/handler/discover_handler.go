package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/nearby-restaurants/internal/discovery"
	"github.com/octobees/nearby-restaurants/internal/dto"
	"github.com/octobees/nearby-restaurants/internal/entity"
	"github.com/octobees/nearby-restaurants/internal/location"
	"github.com/octobees/nearby-restaurants/internal/presentation"
)

// Discoverer runs one discovery against a location provider.
type Discoverer interface {
	Discover(ctx context.Context, provider location.Provider) error
}

// DiscoverHandler triggers discovery runs.
type DiscoverHandler struct {
	discoverer Discoverer
	state      ListStore
}

// NewDiscoverHandler creates a new handler instance.
func NewDiscoverHandler(discoverer Discoverer, state ListStore) *DiscoverHandler {
	return &DiscoverHandler{discoverer: discoverer, state: state}
}

// Discover handles POST /discover requests. Pipeline failures are not HTTP
// errors: the response carries the empty list and says which stage failed.
func (h *DiscoverHandler) Discover(c echo.Context) error {
	var req dto.DiscoverRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	permission, err := location.ParsePermission(req.Permission)
	if err != nil {
		return Error(c, http.StatusBadRequest, "permission must be granted or denied")
	}

	provider := location.Static{Permission: permission}
	if req.Latitude != nil || req.Longitude != nil {
		if req.Latitude == nil || req.Longitude == nil {
			return Error(c, http.StatusBadRequest, "latitude and longitude must be provided together")
		}
		fix := entity.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
		if err := fix.Validate(); err != nil {
			return Error(c, http.StatusBadRequest, err.Error())
		}
		provider.Fix = &fix
	}

	err = h.discoverer.Discover(c.Request().Context(), provider)
	switch {
	case err == nil:
		return Success(c, http.StatusOK, "restaurants discovered", presentList(h.state.Snapshot()))
	case errors.Is(err, discovery.ErrInFlight):
		return Error(c, http.StatusConflict, "discovery already in progress")
	case errors.Is(err, discovery.ErrClosed):
		return Error(c, http.StatusServiceUnavailable, "service is shutting down")
	}

	stage, _ := discovery.StageOf(err)
	return Success(c, http.StatusOK, failureMessage(stage), presentList(h.state.Snapshot()))
}

func failureMessage(stage discovery.Stage) string {
	switch stage {
	case discovery.StagePermission:
		return "location permission denied; no restaurants fetched"
	case discovery.StageLocation:
		return "location unavailable; showing no restaurants"
	case discovery.StageSearch:
		return "restaurant search failed; showing no restaurants"
	default:
		return "discovery failed; showing no restaurants"
	}
}

var _ ListStore = (*presentation.ListState)(nil)
