package backend

import (
	"errors"
	"fmt"
)

// UnknownMessage is shown when the backend did not explain a failure.
const UnknownMessage = "Unknown error"

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string // backend-provided, may be empty
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend %s %s: %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("backend %s %s: %d", e.Method, e.Path, e.Status)
}

// TransportError covers everything that prevented a usable answer:
// dial/read failures and undecodable bodies.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("backend %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MessageOf prefers the backend-supplied message and falls back to
// UnknownMessage for every other kind of failure.
func MessageOf(err error) string {
	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return UnknownMessage
}

// IsUnauthorized reports whether the backend rejected the bearer value.
func IsUnauthorized(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && (ae.Status == 401 || ae.Status == 403)
}
