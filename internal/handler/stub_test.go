package handler

import (
	"context"

	"github.com/octobees/nearby-restaurants/internal/entity"
	"github.com/octobees/nearby-restaurants/internal/location"
	"github.com/octobees/nearby-restaurants/internal/presentation"
)

type discovererStub struct {
	provider location.Provider
	calls    int
	load     []entity.Restaurant
	state    *presentation.ListState
	err      error
}

func (s *discovererStub) Discover(ctx context.Context, provider location.Provider) error {
	s.calls++
	s.provider = provider
	if s.state != nil {
		s.state.Load(s.load)
	}
	return s.err
}

type photoStub struct {
	url   string
	photo *Photo
	err   error
}

func (s *photoStub) Fetch(ctx context.Context, photoURL string, requestID string) (*Photo, error) {
	s.url = photoURL
	if s.err != nil {
		return nil, s.err
	}
	return s.photo, nil
}

func strPtr(s string) *string {
	return &s
}

func sampleRestaurants() []entity.Restaurant {
	return []entity.Restaurant{
		{ID: "r1", Name: "Trattoria", Rating: entity.RatedAs(4.5), Address: "1 Main St", PhotoURL: strPtr("http://media.test/places/r1/photos/p/media?key=k")},
		{ID: "r2", Name: "Diner", Rating: entity.Unrated(), Address: "Address not available"},
	}
}
