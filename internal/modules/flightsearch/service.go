// README: Flight search orchestration; builds the query, ranks offers, degrades on outage.
package flightsearch

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"voyago/internal/flights"
	"voyago/internal/modules/airport"
	"voyago/internal/provider"
)

// ErrUnresolvedRoute means one or both endpoints have no usable airport code,
// so no search query can be built.
var ErrUnresolvedRoute = errors.New("route has unresolved airport codes")

// Query is the orchestrator-level search input.
type Query struct {
	Origin       airport.Code
	Destination  airport.Code
	OutboundDate time.Time
	ReturnDate   *time.Time
	Travelers    int
	Currency     string
}

// Result is either a ranked offer list or a degraded indicator explaining why
// live prices are missing. A degraded result is not an error; the rest of the
// planning pipeline proceeds without flight data.
type Result struct {
	Offers   []flights.Offer `json:"offers,omitempty"`
	Degraded bool            `json:"degraded"`
	Reason   string          `json:"reason,omitempty"`
}

// Service wraps a flight-search provider.
type Service struct {
	searcher flights.Searcher
	log      *zap.Logger
}

// NewService creates the orchestrator. searcher may be nil when the provider
// key is not configured; every search then degrades.
func NewService(searcher flights.Searcher, log *zap.Logger) *Service {
	return &Service{searcher: searcher, log: log}
}

// Search runs one flight search. Offers are returned ascending by price with
// ties broken by shortest duration.
func (s *Service) Search(ctx context.Context, q Query) (Result, error) {
	if !q.Origin.Resolved() || !q.Destination.Resolved() {
		return Result{}, ErrUnresolvedRoute
	}
	if q.OutboundDate.IsZero() {
		return Result{}, provider.E(provider.KindInvalidRequest, "flightsearch", errors.New("outbound date is required"))
	}

	if s.searcher == nil {
		return Result{Degraded: true, Reason: "flight search is not configured"}, nil
	}

	travelers := q.Travelers
	if travelers < 1 {
		travelers = 1
	}

	offers, err := s.searcher.Search(ctx, flights.Query{
		OriginIATA:      q.Origin.IATA,
		DestinationIATA: q.Destination.IATA,
		OutboundDate:    q.OutboundDate,
		ReturnDate:      q.ReturnDate,
		Travelers:       travelers,
		Currency:        q.Currency,
	})
	if err != nil {
		switch provider.KindOf(err) {
		case provider.KindUnavailable, provider.KindRateLimited, provider.KindMalformedResponse:
			s.log.Warn("flight search degraded", zap.Error(err))
			return Result{Degraded: true, Reason: "flight search temporarily unavailable"}, nil
		default:
			return Result{}, err
		}
	}

	if len(offers) == 0 {
		return Result{Degraded: true, Reason: "no flights found for the given criteria"}, nil
	}

	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].Price.Amount != offers[j].Price.Amount {
			return offers[i].Price.Amount < offers[j].Price.Amount
		}
		return offers[i].Duration < offers[j].Duration
	})
	return Result{Offers: offers}, nil
}

// Cheapest returns the lowest-priced offer, if any.
func (r Result) Cheapest() (flights.Offer, bool) {
	if len(r.Offers) == 0 {
		return flights.Offer{}, false
	}
	return r.Offers[0], true
}
