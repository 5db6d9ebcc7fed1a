package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	placesapi "google.golang.org/api/places/v1"

	"github.com/octobees/nearby-restaurants/internal/entity"
)

const (
	// DefaultBaseURL is the versioned root of the Places API.
	DefaultBaseURL = "https://places.googleapis.com/v1"

	// FieldMask limits the response to the fields the normalizer reads.
	FieldMask = "places.displayName,places.photos,places.id,places.formattedAddress,places.rating"

	SearchRadiusMeters = 8500.0
	MaxResultCount     = 10
	RankByDistance     = "DISTANCE"
	IncludedType       = "restaurant"

	searchNearbyPath = "/places:searchNearby"
	headerAPIKey     = "X-Goog-Api-Key"
	headerFieldMask  = "X-Goog-FieldMask"
)

// RawPlace is one field-masked entry of a searchNearby response.
type RawPlace struct {
	ID               string                               `json:"id"`
	DisplayName      *placesapi.GoogleTypeLocalizedText   `json:"displayName,omitempty"`
	Rating           *float64                             `json:"rating,omitempty"`
	FormattedAddress string                               `json:"formattedAddress,omitempty"`
	Photos           []*placesapi.GoogleMapsPlacesV1Photo `json:"photos,omitempty"`
}

type searchNearbyResponse struct {
	Places []RawPlace `json:"places"`
}

// Client issues nearby searches against the Places API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient builds a places client. A nil httpClient gets a 10 second timeout
// and an empty baseURL falls back to DefaultBaseURL.
func NewClient(httpClient *http.Client, baseURL, apiKey string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
	}
}

// NewSearchRequest builds the restaurant search body centered on the fix.
func NewSearchRequest(center entity.Coordinate) *placesapi.GoogleMapsPlacesV1SearchNearbyRequest {
	return &placesapi.GoogleMapsPlacesV1SearchNearbyRequest{
		IncludedTypes:  []string{IncludedType},
		MaxResultCount: MaxResultCount,
		RankPreference: RankByDistance,
		LocationRestriction: &placesapi.GoogleMapsPlacesV1SearchNearbyRequestLocationRestriction{
			Circle: &placesapi.GoogleMapsPlacesV1Circle{
				Center: &placesapi.GoogleTypeLatLng{
					Latitude:  center.Latitude,
					Longitude: center.Longitude,
					// equator and prime meridian are valid fixes
					ForceSendFields: []string{"Latitude", "Longitude"},
				},
				Radius: SearchRadiusMeters,
			},
		},
	}
}

// Search runs a single nearby search. Transport failures are returned as
// *NetworkError and rejected requests as *APIError.
func (c *Client) Search(ctx context.Context, center entity.Coordinate) ([]RawPlace, error) {
	body, err := json.Marshal(NewSearchRequest(center))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchNearbyPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerAPIKey, c.apiKey)
	req.Header.Set(headerFieldMask, FieldMask)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return nil, newAPIError(resp.StatusCode, err)
	}

	var payload searchNearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "malformed search response", Err: err}
	}
	return payload.Places, nil
}
