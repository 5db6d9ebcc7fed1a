package places

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// NetworkError wraps a transport-level failure of a places request.
type NetworkError struct {
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("places request failed: %v", e.Err)
}

// Unwrap exposes the transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError reports a request the Places API rejected or answered with an
// unreadable body.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	detail := e.Message
	if detail == "" {
		detail = e.Body
	}
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	return fmt.Sprintf("places api error (status %d): %s", e.StatusCode, detail)
}

// Unwrap exposes the underlying *googleapi.Error or decode error.
func (e *APIError) Unwrap() error {
	return e.Err
}

func newAPIError(status int, err error) *APIError {
	apiErr := &APIError{StatusCode: status, Err: err}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		apiErr.Message = gErr.Message
		apiErr.Body = gErr.Body
	}
	return apiErr
}
