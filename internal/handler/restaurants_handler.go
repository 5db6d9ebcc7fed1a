package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/nearby-restaurants/internal/entity"
	"github.com/octobees/nearby-restaurants/internal/logging"
	middleware "github.com/octobees/nearby-restaurants/internal/middleware"
	"github.com/octobees/nearby-restaurants/internal/presentation"
)

// ListStore is the state surface the handlers read and toggle.
type ListStore interface {
	Snapshot() presentation.Snapshot
	ToggleIfPresent(id string) (presentation.SelectionState, bool)
	Find(id string) (entity.Restaurant, bool)
}

// RestaurantsHandler exposes the rendered list.
type RestaurantsHandler struct {
	state  ListStore
	photos PhotoFetcher
	logger *slog.Logger
}

// NewRestaurantsHandler creates a new handler instance. A nil logger discards output.
func NewRestaurantsHandler(state ListStore, photos PhotoFetcher, logger *slog.Logger) *RestaurantsHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RestaurantsHandler{state: state, photos: photos, logger: logger}
}

// List handles GET /restaurants requests.
func (h *RestaurantsHandler) List(c echo.Context) error {
	return Success(c, http.StatusOK, "", presentList(h.state.Snapshot()))
}

// Toggle handles POST /restaurants/:id/toggle requests.
func (h *RestaurantsHandler) Toggle(c echo.Context) error {
	if _, ok := h.state.ToggleIfPresent(c.Param("id")); !ok {
		return Error(c, http.StatusNotFound, "restaurant not found")
	}
	return Success(c, http.StatusOK, "", presentList(h.state.Snapshot()))
}

// Photo handles GET /restaurants/:id/photo by proxying the media endpoint.
// A failed photo only affects this request.
func (h *RestaurantsHandler) Photo(c echo.Context) error {
	restaurant, ok := h.state.Find(c.Param("id"))
	if !ok {
		return Error(c, http.StatusNotFound, "restaurant not found")
	}
	if !restaurant.HasPhoto() {
		return Error(c, http.StatusNotFound, "no photo available")
	}

	ctx := c.Request().Context()
	photo, err := h.photos.Fetch(ctx, *restaurant.PhotoURL, middleware.RequestIDFromContext(c))
	if err != nil {
		h.logger.WarnContext(ctx, "Photo loading failed",
			logging.Fields(ctx, slog.String("restaurant_id", restaurant.ID), slog.Any("error", err))...)
		return Error(c, http.StatusBadGateway, "photo unavailable")
	}
	return c.Blob(http.StatusOK, photo.ContentType, photo.Data)
}
