package workflow

import (
	"errors"
	"fmt"

	"github.com/username/master-calendar/internal/store"
)

// ValidationError is a local form precondition failure. No remote call
// is made when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PropagationError wraps a failure of the holiday propagation trigger.
// The primary mutation is already committed locally when one of these is
// returned; it is a report, not a rollback.
type PropagationError struct {
	Err error
}

func (e *PropagationError) Error() string {
	return fmt.Sprintf("holiday propagation failed: %v", e.Err)
}

func (e *PropagationError) Unwrap() error { return e.Err }

// FailureKind buckets workflow errors for presentation
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureValidation
	FailureUnauthenticated
	FailureUnauthorized
	FailurePropagation
	FailureRemote
)

// ClassifyFailure maps an error from a coordinator operation to its
// presentation bucket.
func ClassifyFailure(err error) FailureKind {
	if err == nil {
		return FailureNone
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return FailureValidation
	}
	var propagationErr *PropagationError
	if errors.As(err, &propagationErr) {
		return FailurePropagation
	}
	if errors.Is(err, store.ErrUnauthenticated) {
		return FailureUnauthenticated
	}
	if errors.Is(err, store.ErrUnauthorized) {
		return FailureUnauthorized
	}
	return FailureRemote
}

// UserMessage renders the user-facing message for each failure bucket.
// The action is a short verb phrase such as "save holiday".
func UserMessage(action string, err error) string {
	switch ClassifyFailure(err) {
	case FailureNone:
		return ""
	case FailureValidation:
		var validationErr *ValidationError
		errors.As(err, &validationErr)
		return validationErr.Message
	case FailureUnauthenticated, FailureUnauthorized:
		return "Authentication error. Please log in again."
	case FailurePropagation:
		return "Saved, but syncing holidays to employees failed. Please sync again."
	default:
		return fmt.Sprintf("Failed to %s. Please try again.", action)
	}
}
