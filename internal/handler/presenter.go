package handler

import (
	"net/url"

	"github.com/octobees/nearby-restaurants/internal/dto"
	"github.com/octobees/nearby-restaurants/internal/presentation"
	"github.com/octobees/nearby-restaurants/internal/service/rating"
)

// presentList renders a state snapshot. Stars are computed here, at render
// time, rather than stored on the restaurant.
func presentList(snap presentation.Snapshot) dto.ListView {
	view := dto.ListView{
		Loading:     snap.Loading,
		Restaurants: make([]dto.RestaurantView, 0, len(snap.Restaurants)),
	}
	if id, ok := snap.Selection.ExpandedID(); ok {
		view.ExpandedID = &id
	}

	for _, r := range snap.Restaurants {
		stars := rating.Render(r.Rating)
		item := dto.RestaurantView{
			ID:       r.ID,
			Name:     r.Name,
			Rating:   r.Rating,
			Stars:    stars.String(),
			Full:     stars.Full,
			Half:     stars.Half,
			Empty:    stars.Empty,
			Address:  r.Address,
			HasPhoto: r.HasPhoto(),
			Expanded: snap.Selection.IsExpanded(r.ID),
		}
		if item.HasPhoto {
			item.PhotoPath = "/restaurants/" + url.PathEscape(r.ID) + "/photo"
		}
		view.Restaurants = append(view.Restaurants, item)
	}
	return view
}
