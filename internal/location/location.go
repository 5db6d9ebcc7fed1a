// Package location models the device geolocation service consumed by discovery.
package location

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/octobees/nearby-restaurants/internal/entity"
)

// Permission is the outcome of a location permission prompt.
type Permission int

const (
	PermissionDenied Permission = iota
	PermissionGranted
)

// String implements fmt.Stringer.
func (p Permission) String() string {
	if p == PermissionGranted {
		return "granted"
	}
	return "denied"
}

// ErrPermissionDenied is returned when the user refused location access.
var ErrPermissionDenied = errors.New("location permission denied")

// Error indicates that no location fix could be obtained.
type Error struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("location unavailable: %s: %v", e.Reason, e.Err)
	}
	return "location unavailable: " + e.Reason
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Provider supplies a single coordinate fix after a permission check.
type Provider interface {
	RequestPermission(ctx context.Context) (Permission, error)
	CurrentFix(ctx context.Context) (entity.Coordinate, error)
}

// Static is a Provider with a predetermined answer, used for fixes reported
// by the client device and for the configured startup location.
type Static struct {
	Permission Permission
	Fix        *entity.Coordinate
}

// RequestPermission returns the configured permission.
func (s Static) RequestPermission(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return PermissionDenied, err
	}
	return s.Permission, nil
}

// CurrentFix returns the configured fix or an *Error when there is none.
func (s Static) CurrentFix(ctx context.Context) (entity.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return entity.Coordinate{}, &Error{Reason: "fix request aborted", Err: err}
	}
	if s.Fix == nil {
		return entity.Coordinate{}, &Error{Reason: "no fix reported"}
	}
	if err := s.Fix.Validate(); err != nil {
		return entity.Coordinate{}, &Error{Reason: "invalid fix", Err: err}
	}
	return *s.Fix, nil
}

// ParsePermission maps the wire value to a Permission. An empty value is
// treated as granted.
func ParsePermission(value string) (Permission, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "granted":
		return PermissionGranted, nil
	case "denied":
		return PermissionDenied, nil
	default:
		return PermissionDenied, fmt.Errorf("unsupported permission %q", value)
	}
}

var _ Provider = Static{}
