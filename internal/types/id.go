// README: ID generation helpers.
package types

import "github.com/google/uuid"

// ID is an opaque identifier for sessions, itineraries and bookings.
type ID = string

// NewID returns a random UUID string.
func NewID() ID {
	return uuid.NewString()
}
