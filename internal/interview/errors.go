package interview

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned for unknown session IDs.
var ErrSessionNotFound = errors.New("session not found")

// ErrIncompleteContact is returned when a session is started without
// all three contact fields.
var ErrIncompleteContact = errors.New("name, email and phone are required to start an interview")

// InvalidStateError reports a lifecycle operation attempted from the
// wrong state. It is the only error class the state machine surfaces to
// callers; AI-layer failures are absorbed below it.
type InvalidStateError struct {
	Op     string
	Status Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s: session is %s", e.Op, e.Status)
}
