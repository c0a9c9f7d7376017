package booking

import (
	"errors"
	"fmt"

	"github.com/pawprintlabs/petcare-portal/models"
)

var (
	ErrUnauthorized     = errors.New("you do not have access to this resource")
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("time slot is already booked")
	ErrInvalidSignature = errors.New("payment signature verification failed")
)

// ErrPaymentProcessed is the replay outcome of the payment reconciler: the
// proof was valid but the target has already been marked paid. It matches
// ErrConflict so callers map it to the same HTTP status.
var ErrPaymentProcessed = fmt.Errorf("payment has already been processed: %w", ErrConflict)

// ValidationError reports malformed input, such as an unparseable date.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidStateError reports a disallowed lifecycle transition. The message
// names the current status so it can be shown to the user as-is.
type InvalidStateError struct {
	Action  string
	Current models.AppointmentStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("Cannot %s a %s appointment", e.Action, e.Current)
}
