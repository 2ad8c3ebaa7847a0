package store

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means no credential was available. The request
	// is rejected client-side without a network attempt.
	ErrUnauthenticated = errors.New("authentication token not found")

	// ErrUnauthorized means the backend rejected the credential (401/403)
	ErrUnauthorized = errors.New("credential rejected by server")
)

// StatusError carries a non-2xx response that is not an authorization
// failure.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}
