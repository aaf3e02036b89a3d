// README: Conversation state aggregate and pipeline stage machine.
package session

import (
	"time"

	"voyago/internal/modules/advisor"
	"voyago/internal/modules/airport"
	"voyago/internal/modules/currency"
	"voyago/internal/modules/flightsearch"
	"voyago/internal/modules/itinerary"
	"voyago/internal/modules/trip"
	"voyago/internal/types"
)

type Stage string

const (
	StageCollecting          Stage = "collecting"
	StageMethodSuggestion    Stage = "method_suggestion"
	StageCodeResolution      Stage = "code_resolution"
	StageFlightSearch        Stage = "flight_search"
	StageItineraryGeneration Stage = "itinerary_generation"
	StageCurrencyAdjustment  Stage = "currency_adjustment"
	StagePresenting          Stage = "presenting"
	StageBookingConfirmation Stage = "booking_confirmation"
	StageDone                Stage = "done"
)

// allowedTransitions represents the forward-only pipeline flow as code.
// Collecting is special: every stage may fall back to it when a required
// field goes missing or the user revises one. Code resolution may jump
// straight to itinerary generation when a route stays unresolved and the
// flight search is skipped.
var allowedTransitions = map[Stage][]Stage{
	StageCollecting:          {StageMethodSuggestion},
	StageMethodSuggestion:    {StageCodeResolution, StageItineraryGeneration},
	StageCodeResolution:      {StageFlightSearch, StageItineraryGeneration},
	StageFlightSearch:        {StageItineraryGeneration},
	StageItineraryGeneration: {StageCurrencyAdjustment},
	StageCurrencyAdjustment:  {StagePresenting},
	StagePresenting:          {StageBookingConfirmation},
	StageBookingConfirmation: {StageDone},
}

// CanTransition reports whether moving from one stage to another is legal.
func CanTransition(from, to Stage) bool {
	if to == StageCollecting {
		return from != StageDone
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// State is everything remembered about one conversation. It lives from the
// first message until booking completes or the session expires, and is only
// touched by the in-flight request for its session.
type State struct {
	ID           types.ID
	Trip         trip.Request
	Stage        Stage
	LastQuestion string

	// Per-session caches and accumulated planning artifacts.
	Codes        *airport.Cache
	Rates        *currency.RateCache
	Suggestions  []advisor.Suggestion
	ChosenMethod string
	Flights      *flightsearch.Result
	Plan         *itinerary.Plan
	ItineraryRef types.ID
	Summary      *currency.BudgetSummary

	// One clarifying prompt each before optional fields are defaulted.
	FoodPrompted  bool
	HotelPrompted bool

	UpdatedAt time.Time
}

func newState(id types.ID) *State {
	return &State{
		ID:        id,
		Stage:     StageCollecting,
		Codes:     airport.NewCache(),
		Rates:     currency.NewRateCache(),
		UpdatedAt: time.Now(),
	}
}

// Advance moves to the next stage if the transition is legal.
func (s *State) Advance(to Stage) bool {
	if !CanTransition(s.Stage, to) {
		return false
	}
	s.Stage = to
	return true
}

// Reset returns the conversation to field collection with the trip request
// cleared, used on abandonment and on field revision.
func (s *State) Reset() {
	s.Trip = trip.Request{}
	s.Stage = StageCollecting
	s.LastQuestion = ""
	s.Suggestions = nil
	s.ChosenMethod = ""
	s.Flights = nil
	s.Plan = nil
	s.ItineraryRef = ""
	s.Summary = nil
	s.FoodPrompted = false
	s.HotelPrompted = false
}

// Replan drops pipeline artifacts but keeps collected fields, used when a
// revision invalidates a previously generated plan.
func (s *State) Replan() {
	s.Stage = StageCollecting
	s.Suggestions = nil
	s.ChosenMethod = ""
	s.Flights = nil
	s.Plan = nil
	s.ItineraryRef = ""
	s.Summary = nil
}

func (s *State) Touch() {
	s.UpdatedAt = time.Now()
}
