// README: Conversation orchestrator; drives the planning pipeline per user turn.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"voyago/internal/ai"
	"voyago/internal/modules/advisor"
	"voyago/internal/modules/airport"
	"voyago/internal/modules/booking"
	"voyago/internal/modules/currency"
	"voyago/internal/modules/flightsearch"
	"voyago/internal/modules/itinerary"
	"voyago/internal/modules/trip"
	"voyago/internal/provider"
	"voyago/internal/session"
	"voyago/internal/types"
)

var errNoLLM = errors.New("language model is not configured")

// Planner sequences the planning components based on conversational turns.
type Planner struct {
	llm       ai.LLMProvider
	advisor   *advisor.Service
	airports  *airport.Resolver
	flights   *flightsearch.Service
	generator *itinerary.Generator
	adjuster  *currency.Adjuster
	booking   *booking.Service
	sessions  *session.Manager
	log       *zap.Logger
}

// Deps wires the planner. Any provider-backed dependency may be nil; the
// dependent step then degrades.
type Deps struct {
	LLM       ai.LLMProvider
	Advisor   *advisor.Service
	Airports  *airport.Resolver
	Flights   *flightsearch.Service
	Generator *itinerary.Generator
	Adjuster  *currency.Adjuster
	Booking   *booking.Service
	Sessions  *session.Manager
	Log       *zap.Logger
}

func NewPlanner(deps Deps) *Planner {
	return &Planner{
		llm:       deps.LLM,
		advisor:   deps.Advisor,
		airports:  deps.Airports,
		flights:   deps.Flights,
		generator: deps.Generator,
		adjuster:  deps.Adjuster,
		booking:   deps.Booking,
		sessions:  deps.Sessions,
		log:       deps.Log,
	}
}

// Reply is one orchestrator turn: the next message for the user plus the
// pipeline stage and whatever artifacts exist so far.
type Reply struct {
	SessionID types.ID                `json:"session_id"`
	Message   string                  `json:"message"`
	Stage     session.Stage           `json:"stage"`
	Plan      *itinerary.Plan         `json:"itinerary,omitempty"`
	Flights   *flightsearch.Result    `json:"flights,omitempty"`
	Summary   *currency.BudgetSummary `json:"budget_summary,omitempty"`
	Booking   *booking.Confirmation   `json:"booking,omitempty"`
}

// Chat processes one user utterance for the given session.
func (p *Planner) Chat(ctx context.Context, sessionID types.ID, message string) (Reply, error) {
	sess, release := p.sessions.Acquire(sessionID)
	defer release()

	if sess.Stage == session.StageBookingConfirmation {
		return p.handleBookingTurn(ctx, sess, message)
	}

	ext, err := p.extract(ctx, sess.Trip, sess.LastQuestion, message)
	if err != nil {
		p.log.Warn("field extraction degraded", zap.Error(err))
		return p.scriptedTurn(sess, message), nil
	}

	if ext.Abandon {
		sess.Reset()
		return p.reply(sess, "No problem, I've cleared the plan. Tell me about your next trip whenever you're ready."), nil
	}

	if revised := mergeExtraction(&sess.Trip, ext, sess.Codes); revised && sess.Plan != nil {
		// A revision invalidates generated artifacts; re-run the pipeline.
		sess.Replan()
	}

	if missing := sess.Trip.MissingFields(); len(missing) > 0 {
		sess.Stage = session.StageCollecting
		q := ext.Reply
		if strings.TrimSpace(q) == "" {
			q = questionFor(missing[0])
		}
		sess.LastQuestion = q
		return p.reply(sess, q), nil
	}

	if err := sess.Trip.Validate(); err != nil {
		sess.Stage = session.StageCollecting
		q := correctionFor(err)
		sess.LastQuestion = q
		return p.reply(sess, q), nil
	}

	if q, ok := p.optionalPrompt(sess, ext); ok {
		sess.LastQuestion = q
		return p.reply(sess, q), nil
	}
	sess.Trip.ApplyDefaults()

	return p.runPipeline(ctx, sess)
}

// handleBookingTurn resolves the confirm / decline / revise branch while a
// plan is awaiting confirmation.
func (p *Planner) handleBookingTurn(ctx context.Context, sess *session.State, message string) (Reply, error) {
	confirmed := looksLikeConfirmation(message)
	abandoned := looksLikeAbandonment(message)
	if !confirmed && !abandoned {
		if ext, err := p.extract(ctx, sess.Trip, sess.LastQuestion, message); err == nil {
			confirmed = ext.ConfirmBooking
			abandoned = ext.Abandon
			if !confirmed && !abandoned && mergeExtraction(&sess.Trip, ext, sess.Codes) {
				sess.Replan()
				return p.runPipeline(ctx, sess)
			}
		}
	}

	switch {
	case confirmed:
		conf, err := p.booking.Confirm(sess.ItineraryRef)
		if err != nil {
			return Reply{}, err
		}
		p.advance(sess, session.StageDone)
		r := p.reply(sess, fmt.Sprintf("Your trip is booked! Confirmation code: %s. Have a wonderful journey.", conf.Code))
		r.Booking = &conf
		p.sessions.Release(sess.ID)
		return r, nil
	case abandoned:
		sess.Reset()
		return p.reply(sess, "No problem, I've cleared the plan. Tell me about your next trip whenever you're ready."), nil
	default:
		q := "Would you like me to book this itinerary? Say 'confirm' to book it, or tell me what to change."
		sess.LastQuestion = q
		return p.reply(sess, q), nil
	}
}

// scriptedTurn keeps the conversation useful when the language model is
// unavailable: no extraction, just a concrete next action for the user.
func (p *Planner) scriptedTurn(sess *session.State, message string) Reply {
	if looksLikeAbandonment(message) {
		sess.Reset()
		return p.reply(sess, "No problem, I've cleared the plan. Tell me about your next trip whenever you're ready.")
	}
	if missing := sess.Trip.MissingFields(); len(missing) > 0 {
		q := "I'm having trouble understanding free-form messages right now. " + questionFor(missing[0])
		sess.LastQuestion = q
		return p.reply(sess, q)
	}
	return p.reply(sess, "I'm having trouble reaching the planning service right now; please try again in a moment.")
}

// optionalPrompt asks once for each optional preference before defaulting.
func (p *Planner) optionalPrompt(sess *session.State, ext *extraction) (string, bool) {
	if sess.Trip.Food == "" {
		if !sess.FoodPrompted {
			sess.FoodPrompted = true
			return "Any food preference I should plan around — vegetarian, vegan, or anything goes?", true
		}
		sess.Trip.Food = trip.FoodAny
	}
	if sess.Trip.Hotel == "" {
		if !sess.HotelPrompted {
			sess.HotelPrompted = true
			return "And for hotels: budget, standard, or luxury?", true
		}
		sess.Trip.Hotel = trip.HotelStandard
	}
	_ = ext
	return "", false
}

// runPipeline executes the planning stages for a fully collected request.
// The request is frozen (copied) for the run; session state is only mutated
// after each step returns.
func (p *Planner) runPipeline(ctx context.Context, sess *session.State) (Reply, error) {
	req := sess.Trip

	p.advance(sess, session.StageMethodSuggestion)
	suggestions, err := p.advisor.Suggest(ctx, req.Origin, req.Destination)
	if err != nil {
		q := "I still need to know where you're traveling from and to."
		sess.Stage = session.StageCollecting
		sess.LastQuestion = q
		return p.reply(sess, q), nil
	}
	sess.Suggestions = suggestions
	sess.ChosenMethod = suggestions[0].Method

	var result flightsearch.Result
	if advisor.IsFlight(sess.ChosenMethod) {
		result = p.flightStages(ctx, sess, req)
	} else {
		result = flightsearch.Result{Degraded: true, Reason: fmt.Sprintf("traveling by %s; no flight search needed", sess.ChosenMethod)}
	}
	sess.Flights = &result

	p.advance(sess, session.StageItineraryGeneration)
	rateNote := ""
	if p.adjuster != nil {
		rateNote = p.adjuster.RateNote(ctx, sess.Rates, req.Budget.Currency, req.HomeCurrency)
	}
	plan, err := p.generator.Generate(ctx, req, sess.ChosenMethod, result.Offers, rateNote)
	if err != nil {
		p.log.Error("itinerary generation failed", zap.Error(err))
		sess.Replan()
		msg := "I couldn't put together a complete itinerary just now — please try again in a moment."
		if provider.Is(err, provider.KindInvalidRequest) {
			msg = "Some trip details look off; please double-check the duration and traveler count."
		}
		return p.reply(sess, msg), nil
	}
	sess.Plan = plan
	sess.ItineraryRef = types.NewID()

	p.advance(sess, session.StageCurrencyAdjustment)
	summary := p.summarize(ctx, sess, req, plan, result)

	p.advance(sess, session.StagePresenting)
	msg := presentPlan(req, sess.ChosenMethod, plan, &result, summary)

	p.advance(sess, session.StageBookingConfirmation)
	sess.LastQuestion = "Would you like me to book this itinerary?"

	r := p.reply(sess, msg)
	r.Plan = plan
	r.Flights = &result
	r.Summary = summary
	return r, nil
}

// flightStages resolves airport codes (both endpoints concurrently) and runs
// the flight search. Failures degrade; they never abort the pipeline.
func (p *Planner) flightStages(ctx context.Context, sess *session.State, req trip.Request) flightsearch.Result {
	p.advance(sess, session.StageCodeResolution)

	var origin, destination airport.Code
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		origin, _ = p.airports.Resolve(ctx, sess.Codes, req.Origin)
	}()
	go func() {
		defer wg.Done()
		destination, _ = p.airports.Resolve(ctx, sess.Codes, req.Destination)
	}()
	wg.Wait()

	if !origin.Resolved() || !destination.Resolved() {
		city := origin.City
		if origin.Resolved() {
			city = destination.City
		}
		return flightsearch.Result{
			Degraded: true,
			Reason: fmt.Sprintf("I couldn't identify an airport for %s — tell me its 3-letter code (e.g. \"use CDG for %s\") and I'll search flights.",
				city, city),
		}
	}

	p.advance(sess, session.StageFlightSearch)
	outbound := req.StartDate
	ret := req.EndDate()
	result, err := p.flights.Search(ctx, flightsearch.Query{
		Origin:       origin,
		Destination:  destination,
		OutboundDate: outbound,
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

// summarize computes the budget summary; a rate outage degrades to nil.
func (p *Planner) summarize(ctx context.Context, sess *session.State, req trip.Request, plan *itinerary.Plan, result flightsearch.Result) *currency.BudgetSummary {
	total := plan.EstimatedTotal()
	if offer, ok := result.Cheapest(); ok {
		total += offer.Price.Amount * float64(req.Travelers)
	}
	tripTotal := types.Money{Amount: total, Currency: req.Budget.Currency}

	if p.adjuster == nil {
		return nil
	}
	summary, err := p.adjuster.Summarize(ctx, sess.Rates, tripTotal, req.HomeCurrency)
	if err != nil {
		p.log.Warn("budget summary degraded", zap.Error(err))
		return nil
	}
	sess.Summary = &summary
	return &summary
}

// advance moves the session forward and logs any refused transition; a
// refusal means the stage machine and the pipeline flow have drifted apart.
func (p *Planner) advance(sess *session.State, to session.Stage) {
	if !sess.Advance(to) {
		p.log.Warn("stage transition refused",
			zap.String("from", string(sess.Stage)), zap.String("to", string(to)))
	}
}

func (p *Planner) reply(sess *session.State, msg string) Reply {
	sess.Touch()
	return Reply{SessionID: sess.ID, Message: msg, Stage: sess.Stage}
}

// mergeExtraction folds newly stated fields into the request. It reports
// whether any already-set field was revised.
func mergeExtraction(req *trip.Request, ext *extraction, codes *airport.Cache) bool {
	revised := false
	set := func(dst *string, v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if *dst != "" && !strings.EqualFold(*dst, v) {
			revised = true
		}
		*dst = v
	}

	set(&req.Origin, ext.Origin)
	set(&req.Destination, ext.Destination)

	if ext.StartDate != "" {
		if t, err := parseDate(ext.StartDate); err == nil {
			if !req.StartDate.IsZero() && !req.StartDate.Equal(t) {
				revised = true
			}
			req.StartDate = t
		}
	}
	if ext.DurationDays > 0 {
		if req.DurationDays != 0 && req.DurationDays != ext.DurationDays {
			revised = true
		}
		req.DurationDays = ext.DurationDays
	}
	if ext.Travelers > 0 {
		if req.Travelers != 0 && req.Travelers != ext.Travelers {
			revised = true
		}
		req.Travelers = ext.Travelers
	}
	if ext.BudgetAmount > 0 {
		if req.Budget.Amount != 0 && req.Budget.Amount != ext.BudgetAmount {
			revised = true
		}
		req.Budget.Amount = ext.BudgetAmount
	}
	if ext.BudgetCurrency != "" {
		req.Budget.Currency = types.NormalizeCurrency(ext.BudgetCurrency)
	}
	if ext.HomeCurrency != "" {
		req.HomeCurrency = types.NormalizeCurrency(ext.HomeCurrency)
	}
	if ext.FoodPreference != "" {
		req.Food = trip.ParseFood(ext.FoodPreference)
	}
	if ext.HotelPreference != "" {
		req.Hotel = trip.ParseHotel(ext.HotelPreference)
	}

	// Manual airport codes bypass resolution entirely.
	if codes != nil {
		if ext.OriginIATA != "" && req.Origin != "" {
			codes.Put(req.Origin, ext.OriginIATA)
			revised = true
		}
		if ext.DestinationIATA != "" && req.Destination != "" {
			codes.Put(req.Destination, ext.DestinationIATA)
			revised = true
		}
	}
	return revised
}
