package places

import (
	"errors"
	"fmt"
)

// ErrInvalidPlaceID is returned when the client is handed a place ID that
// fails format validation. The client re-checks even pre-validated input.
var ErrInvalidPlaceID = errors.New("invalid place ID format")

// ErrMalformedResponse is returned when a 2xx response body cannot be
// parsed as a place object.
var ErrMalformedResponse = errors.New("invalid API response")

// TransportError wraps a network-level failure (connection refused,
// timeout) reaching the Places API.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("places API transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response from the Places API. Message is the
// sanitized upstream error message, never the credential.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Google Places API error: %s (code %d)", e.Message, e.Code)
}
