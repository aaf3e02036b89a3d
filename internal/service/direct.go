// README: Stateless single-shot planning for the synchronous itinerary endpoint.
package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"voyago/internal/modules/advisor"
	"voyago/internal/modules/airport"
	"voyago/internal/modules/currency"
	"voyago/internal/modules/flightsearch"
	"voyago/internal/modules/itinerary"
	"voyago/internal/modules/trip"
	"voyago/internal/provider"
	"voyago/internal/types"
)

// PlanResult is the synchronous endpoint's payload.
type PlanResult struct {
	Method  string                  `json:"travel_method"`
	Plan    *itinerary.Plan         `json:"itinerary"`
	Flights *flightsearch.Result    `json:"flights"`
	Summary *currency.BudgetSummary `json:"budget_summary,omitempty"`
}

// GeneratePlan runs the whole pipeline for a fully specified request without
// any conversation state. Temporary caches scope provider lookups to the one
// run.
func (p *Planner) GeneratePlan(ctx context.Context, req trip.Request) (*PlanResult, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return nil, provider.E(provider.KindInvalidRequest, "planner.generate",
			missingFieldsError(missing))
	}
	if err := req.Validate(); err != nil {
		return nil, provider.E(provider.KindInvalidRequest, "planner.generate", err)
	}
	req.ApplyDefaults()

	codes := airport.NewCache()
	rates := currency.NewRateCache()

	suggestions, err := p.advisor.Suggest(ctx, req.Origin, req.Destination)
	if err != nil {
		return nil, provider.E(provider.KindInvalidRequest, "planner.generate", err)
	}
	method := suggestions[0].Method

	result := flightsearch.Result{Degraded: true, Reason: "not a flight-based trip"}
	if advisor.IsFlight(method) {
		result = p.searchFlights(ctx, codes, req)
	}

	rateNote := ""
	if p.adjuster != nil {
		rateNote = p.adjuster.RateNote(ctx, rates, req.Budget.Currency, req.HomeCurrency)
	}
	plan, err := p.generator.Generate(ctx, req, method, result.Offers, rateNote)
	if err != nil {
		return nil, err
	}

	out := &PlanResult{Method: method, Plan: plan, Flights: &result}
	if p.adjuster != nil {
		total := plan.EstimatedTotal()
		if offer, ok := result.Cheapest(); ok {
			total += offer.Price.Amount * float64(req.Travelers)
		}
		summary, err := p.adjuster.Summarize(ctx, rates,
			types.Money{Amount: total, Currency: req.Budget.Currency}, req.HomeCurrency)
		if err != nil {
			p.log.Warn("budget summary degraded", zap.Error(err))
		} else {
			out.Summary = &summary
		}
	}
	return out, nil
}

// searchFlights is the stateless variant of the flight stages: concurrent
// code resolution, then one search, degrading instead of failing.
func (p *Planner) searchFlights(ctx context.Context, codes *airport.Cache, req trip.Request) flightsearch.Result {
	var origin, destination airport.Code
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		origin, _ = p.airports.Resolve(ctx, codes, req.Origin)
	}()
	go func() {
		defer wg.Done()
		destination, _ = p.airports.Resolve(ctx, codes, req.Destination)
	}()
	wg.Wait()

	if !origin.Resolved() || !destination.Resolved() {
		return flightsearch.Result{Degraded: true, Reason: "airport codes could not be resolved"}
	}

	ret := req.EndDate()
	result, err := p.flights.Search(ctx, flightsearch.Query{
		Origin:       origin,
		Destination:  destination,
		OutboundDate: req.StartDate,
		ReturnDate:   &ret,
		Travelers:    req.Travelers,
		Currency:     req.Budget.Currency,
	})
	if err != nil {
		p.log.Warn("flight search failed", zap.Error(err))
		return flightsearch.Result{Degraded: true, Reason: "flight search temporarily unavailable"}
	}
	return result
}
