package dto

import "github.com/octobees/nearby-restaurants/internal/entity"

// DiscoverRequest is the payload of POST /discover. It carries the fix and
// permission state reported by the client device.
type DiscoverRequest struct {
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Permission string   `json:"permission"`
}

// RestaurantView is one rendered list item.
type RestaurantView struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Rating    entity.Rating `json:"rating"`
	Stars     string        `json:"stars"`
	Full      int           `json:"full"`
	Half      int           `json:"half"`
	Empty     int           `json:"empty"`
	Address   string        `json:"address"`
	HasPhoto  bool          `json:"has_photo"`
	PhotoPath string        `json:"photo_path,omitempty"`
	Expanded  bool          `json:"expanded"`
}

// ListView is the observable state exposed to the presentation layer.
type ListView struct {
	Loading     bool             `json:"loading"`
	ExpandedID  *string          `json:"expanded_id"`
	Restaurants []RestaurantView `json:"restaurants"`
}
