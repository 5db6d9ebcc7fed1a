// Package presentation holds the restaurant list rendered to clients and the
// single-expanded-item selection.
package presentation

import (
	"slices"
	"sync"

	"github.com/octobees/nearby-restaurants/internal/entity"
)

// SelectionState names the one expanded restaurant, if any. The zero value
// has nothing expanded.
type SelectionState struct {
	expandedID string
	expanded   bool
}

// Toggle collapses id when it is expanded and expands it otherwise, which
// collapses any other item.
func (s SelectionState) Toggle(id string) SelectionState {
	if s.expanded && s.expandedID == id {
		return SelectionState{}
	}
	return SelectionState{expandedID: id, expanded: true}
}

// IsExpanded reports whether id is the expanded item.
func (s SelectionState) IsExpanded(id string) bool {
	return s.expanded && s.expandedID == id
}

// ExpandedID returns the expanded id and whether one is set.
func (s SelectionState) ExpandedID() (string, bool) {
	return s.expandedID, s.expanded
}

// Snapshot is a point-in-time copy of the list state.
type Snapshot struct {
	Restaurants []entity.Restaurant
	Loading     bool
	Selection   SelectionState
}

// ListState is the single-writer container for the rendered list.
type ListState struct {
	mu          sync.RWMutex
	restaurants []entity.Restaurant
	selection   SelectionState
	loading     bool
}

// NewListState returns an empty, idle list.
func NewListState() *ListState {
	return &ListState{}
}

// Load replaces the held restaurants and clears the selection.
func (s *ListState) Load(restaurants []entity.Restaurant) {
	next := slices.Clone(restaurants)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.restaurants = next
	s.selection = SelectionState{}
}

// Toggle applies SelectionState.Toggle and returns the resulting selection.
func (s *ListState) Toggle(id string) SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = s.selection.Toggle(id)
	return s.selection
}

// ToggleIfPresent toggles id only when a held restaurant carries it. The
// selection never names an id outside the held list.
func (s *ListState) ToggleIfPresent(id string) (SelectionState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.ContainsFunc(s.restaurants, func(r entity.Restaurant) bool { return r.ID == id }) {
		return s.selection, false
	}
	s.selection = s.selection.Toggle(id)
	return s.selection, true
}

// IsExpanded reports whether id is currently expanded.
func (s *ListState) IsExpanded(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection.IsExpanded(id)
}

// Find looks up a held restaurant by id.
func (s *ListState) Find(id string) (entity.Restaurant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.restaurants {
		if r.ID == id {
			return r, true
		}
	}
	return entity.Restaurant{}, false
}

// SetLoading flips the loading flag.
func (s *ListState) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// Loading reports whether a discovery run is in progress.
func (s *ListState) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Snapshot copies the current state.
func (s *ListState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Restaurants: slices.Clone(s.restaurants),
		Loading:     s.loading,
		Selection:   s.selection,
	}
}
