package discovery

import (
	"errors"
	"fmt"

	"github.com/octobees/nearby-restaurants/internal/location"
	"github.com/octobees/nearby-restaurants/internal/places"
)

// Stage names a step of the discovery pipeline.
type Stage string

const (
	StagePermission Stage = "permission"
	StageLocation   Stage = "location"
	StageSearch     Stage = "search"
)

var (
	// ErrInFlight is returned when a discovery run is already in progress.
	ErrInFlight = errors.New("discovery already in progress")
	// ErrClosed is returned once the session has been torn down.
	ErrClosed = errors.New("discovery session closed")
)

// StageError records which pipeline stage failed.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

// Unwrap exposes the stage failure.
func (e *StageError) Unwrap() error {
	return e.Err
}

// StageOf returns the failed stage of a pipeline error.
func StageOf(err error) (Stage, bool) {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Stage, true
	}
	return "", false
}

const (
	outcomeSuccess          = "success"
	outcomePermissionDenied = "permission_denied"
	outcomeLocationError    = "location_error"
	outcomeNetworkError     = "network_error"
	outcomeAPIError         = "api_error"
	outcomeDiscarded        = "discarded"
	outcomeError            = "error"
)

func outcomeOf(err error) string {
	var (
		locErr *location.Error
		netErr *places.NetworkError
		apiErr *places.APIError
	)
	switch {
	case errors.Is(err, location.ErrPermissionDenied):
		return outcomePermissionDenied
	case errors.As(err, &locErr):
		return outcomeLocationError
	case errors.As(err, &netErr):
		return outcomeNetworkError
	case errors.As(err, &apiErr):
		return outcomeAPIError
	default:
		return outcomeError
	}
}
