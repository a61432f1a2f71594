package scheduling

import (
	"fmt"

	"clinic-booking-server/internal/models"
)

// ValidationError reports malformed or missing input: bad date/time strings,
// non-numeric ids, status values outside the enumeration. Nothing is written
// when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a reference to an appointment or record that does
// not exist.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ConflictError reports a write that would violate a uniqueness rule, such
// as a second medical record for the same appointment.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// TransitionError reports a status change the lifecycle state machine does
// not permit. It always names both the current and the requested status.
type TransitionError struct {
	From models.AppointmentStatus
	To   models.AppointmentStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change appointment status from %q to %q", e.From, e.To)
}
