package booking

import (
	"fmt"

	"appointment-booking-api/internal/model"
)

// ValidationError is a business-rule rejection. It is never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func invalid(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictError means another active appointment holds the slot.
type ConflictError struct {
	SlotID string
}

func (e *ConflictError) Error() string { return "slot no longer available" }

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string { return e.Reason }

// InvalidStateError rejects an operation the appointment's current status
// (or time) does not allow.
type InvalidStateError struct {
	Op     string
	Status model.Status
	Reason string
}

func (e *InvalidStateError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s appointment: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("cannot %s appointment in status %s", e.Op, e.Status)
}

// TransientError is returned once the retry budget for storage contention is
// spent. The message stays generic; Err keeps the last cause for logs.
type TransientError struct {
	Attempts int
	Err      error
}

func (e *TransientError) Error() string { return "booking temporarily unavailable, try again" }

func (e *TransientError) Unwrap() error { return e.Err }
