package alert

import (
	"errors"
	"fmt"
)

// ErrUnknownAlert is returned by Tracker for ids it does not track, usually
// because the alert was already destroyed. Hosts treat it as a no-op.
var ErrUnknownAlert = errors.New("unknown alert")

// ErrNoTransition indicates the event is not allowed in the alert's current state.
type ErrNoTransition struct {
	ID    string
	State State
	Event Event
}

func (e *ErrNoTransition) Error() string {
	return fmt.Sprintf("alert %s: no transition from state '%s' for event '%s'", e.ID, e.State, e.Event)
}

// IsNoTransition reports whether err is an *ErrNoTransition.
func IsNoTransition(err error) bool {
	var e *ErrNoTransition
	return errors.As(err, &e)
}
