package service

import (
	"fmt"
	"net/url"
	"strings"

	placesapi "google.golang.org/api/places/v1"

	"github.com/octobees/nearby-restaurants/internal/entity"
	"github.com/octobees/nearby-restaurants/internal/places"
)

const (
	// DefaultRestaurantName is used when a place carries no display name.
	DefaultRestaurantName = "Unknown Restaurant"
	// DefaultAddress is used when a place carries no formatted address.
	DefaultAddress = "Address not available"

	photoMaxHeightPx = 400
	photoMaxWidthPx  = 400
)

// RestaurantNormalizer maps raw search results into restaurants.
type RestaurantNormalizer struct {
	mediaBaseURL string
	apiKey       string
}

// NewRestaurantNormalizer creates a normalizer that signs photo URLs with apiKey.
// An empty mediaBaseURL falls back to the Places API root.
func NewRestaurantNormalizer(mediaBaseURL, apiKey string) *RestaurantNormalizer {
	if mediaBaseURL == "" {
		mediaBaseURL = places.DefaultBaseURL
	}
	return &RestaurantNormalizer{
		mediaBaseURL: strings.TrimRight(mediaBaseURL, "/"),
		apiKey:       apiKey,
	}
}

// Normalize converts places in search-rank order. It never fails: absent
// fields are replaced by their defaults.
func (n *RestaurantNormalizer) Normalize(raw []places.RawPlace) []entity.Restaurant {
	restaurants := make([]entity.Restaurant, 0, len(raw))
	for _, place := range raw {
		restaurants = append(restaurants, entity.Restaurant{
			ID:       place.ID,
			Name:     displayName(place.DisplayName),
			Rating:   normalizeRating(place.Rating),
			Address:  fallback(place.FormattedAddress, DefaultAddress),
			PhotoURL: n.photoURL(place.Photos),
		})
	}
	return restaurants
}

// photoURL only looks at the first photo.
func (n *RestaurantNormalizer) photoURL(photos []*placesapi.GoogleMapsPlacesV1Photo) *string {
	if len(photos) == 0 || photos[0] == nil || photos[0].Name == "" {
		return nil
	}
	u := fmt.Sprintf("%s/%s/media?maxHeightPx=%d&maxWidthPx=%d&key=%s",
		n.mediaBaseURL, photos[0].Name, photoMaxHeightPx, photoMaxWidthPx, url.QueryEscape(n.apiKey))
	return &u
}

func displayName(text *placesapi.GoogleTypeLocalizedText) string {
	if text == nil {
		return DefaultRestaurantName
	}
	return fallback(text.Text, DefaultRestaurantName)
}

func normalizeRating(value *float64) entity.Rating {
	if value == nil {
		return entity.Unrated()
	}
	return entity.RatedAs(*value)
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
