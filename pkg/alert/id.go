package alert

import "github.com/google/uuid"

// IDGenerator returns a new alert identity. Identities are used as DOM ids
// and CSS selectors, so they must not start with a digit.
type IDGenerator func() string

// NewID returns "alert-" followed by a random UUID.
func NewID() string {
	return "alert-" + uuid.NewString()
}
