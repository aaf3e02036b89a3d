// README: Flight search query and offer types.
package flights

import (
	"context"
	"time"

	"voyago/internal/types"
)

// Query describes one round-trip (or one-way) flight search.
type Query struct {
	OriginIATA      string
	DestinationIATA string
	OutboundDate    time.Time
	ReturnDate      *time.Time
	Travelers       int
	Currency        string
}

// Offer is one normalized flight option returned by a search provider.
type Offer struct {
	Carrier   string        `json:"carrier"`
	Price     types.Money   `json:"price"`
	Duration  time.Duration `json:"duration"`
	Stops     int           `json:"stops"`
	Departure time.Time     `json:"departure"`
	Arrival   time.Time     `json:"arrival"`
}

// Searcher is the contract a flight-search provider must satisfy.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]Offer, error)
}
