package remote

import (
	"errors"
	"fmt"
)

// Sentinel errors for the remote backend.
var (
	// ErrBlankImage is returned when the service answers with an image
	// that has no ink where ink is required.
	ErrBlankImage = errors.New("remote: blank image")

	// ErrNoServiceID is returned when a backend is created without a
	// service font id.
	ErrNoServiceID = errors.New("remote: missing service font id")
)

// RequestError reports a failed snippet request: a transport failure, a
// non-200 status, or an undecodable body.
type RequestError struct {
	// Text is the snippet that was requested.
	Text string

	// StatusCode is the HTTP status, or 0 if no response was received.
	StatusCode int

	// Err is the underlying failure, if any.
	Err error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("remote: request %q: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("remote: request %q failed with status %d", e.Text, e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
