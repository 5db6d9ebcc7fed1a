package entity

import (
	"encoding/json"
	"fmt"
	"math"
)

// Coordinate is a single geolocation fix.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate reports whether the coordinate lies on the globe.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Longitude)
	}
	return nil
}

// Rating is a place rating on a 0-5 scale. The zero value is unrated,
// which is distinct from a present rating of 0.
type Rating struct {
	Value float64
	Rated bool
}

// Unrated returns the rating used when the source carried none.
func Unrated() Rating {
	return Rating{}
}

// RatedAs wraps a numeric rating.
func RatedAs(value float64) Rating {
	return Rating{Value: value, Rated: true}
}

// MarshalJSON encodes an unrated value as null.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Rated {
		return []byte("null"), nil
	}
	return json.Marshal(r.Value)
}

// UnmarshalJSON accepts a number or null.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var value *float64
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decode rating: %w", err)
	}
	if value == nil {
		*r = Unrated()
		return nil
	}
	*r = RatedAs(*value)
	return nil
}

// Restaurant is the display-ready record built from a places search result.
type Restaurant struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Rating   Rating  `json:"rating"`
	Address  string  `json:"address"`
	PhotoURL *string `json:"photo_url,omitempty"`
}

// HasPhoto reports whether a photo URL was synthesized for the restaurant.
func (r Restaurant) HasPhoto() bool {
	return r.PhotoURL != nil
}
