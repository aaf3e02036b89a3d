// README: Itinerary generator; decodes, validates and repairs model output.
package itinerary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"voyago/internal/ai"
	"voyago/internal/flights"
	"voyago/internal/modules/trip"
	"voyago/internal/provider"
)

var ErrNotConfigured = errors.New("itinerary generation is not configured")

// Generator produces day-by-day plans from a fully collected trip request.
type Generator struct {
	llm            ai.LLMProvider
	repairAttempts int
	log            *zap.Logger
}

// NewGenerator creates a Generator. repairAttempts bounds how many
// continuation calls may be spent fixing a short day list.
func NewGenerator(llm ai.LLMProvider, repairAttempts int, log *zap.Logger) *Generator {
	if repairAttempts < 0 {
		repairAttempts = 0
	}
	return &Generator{llm: llm, repairAttempts: repairAttempts, log: log}
}

// Generate builds the structured prompt, calls the model, and enforces the
// day-count invariant: the returned plan always has exactly
// req.DurationDays days, or the call fails with a malformed-response error.
func (g *Generator) Generate(ctx context.Context, req trip.Request, method string, offers []flights.Offer, rateNote string) (*Plan, error) {
	if g.llm == nil {
		return nil, ErrNotConfigured
	}
	if err := req.Validate(); err != nil {
		return nil, provider.E(provider.KindInvalidRequest, "itinerary.generate", err)
	}

	raw, err := g.llm.GenerateJSON(ctx, buildPrompt(req, method, offers, rateNote))
	if err != nil {
		return nil, err
	}

	plan, err := decodePlan(raw)
	if err != nil {
		return nil, provider.E(provider.KindMalformedResponse, "itinerary.generate", err)
	}

	want := req.DurationDays
	switch {
	case len(plan.Days) > want:
		plan.Warnings = append(plan.Warnings,
			fmt.Sprintf("model produced %d days for a %d-day trip; extra days were dropped", len(plan.Days), want))
		plan.Days = plan.Days[:want]
	case len(plan.Days) < want:
		if err := g.repairShortPlan(ctx, req, plan); err != nil {
			return nil, err
		}
	}

	renumber(plan.Days)
	cleanPlan(plan)
	return plan, nil
}

// repairShortPlan requests the missing tail, bounded by the configured
// attempt count. A still-short plan is an error, never silently returned.
func (g *Generator) repairShortPlan(ctx context.Context, req trip.Request, plan *Plan) error {
	want := req.DurationDays
	for attempt := 0; attempt < g.repairAttempts && len(plan.Days) < want; attempt++ {
		g.log.Warn("itinerary short, requesting continuation",
			zap.Int("have", len(plan.Days)), zap.Int("want", want))

		raw, err := g.llm.GenerateJSON(ctx, buildContinuationPrompt(req, len(plan.Days), want))
		if err != nil {
			return err
		}
		tail, err := decodePlan(raw)
		if err != nil {
			return provider.E(provider.KindMalformedResponse, "itinerary.continue", err)
		}

		have := len(plan.Days)
		plan.Days = append(plan.Days, tail.Days...)
		if len(plan.Days) > want {
			plan.Days = plan.Days[:want]
		}
		if len(plan.Days) > have {
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("days %d onward were generated in a continuation pass", have+1))
		}
	}

	if len(plan.Days) != want {
		return provider.E(provider.KindMalformedResponse, "itinerary.generate",
			fmt.Errorf("plan has %d days, expected %d after repair", len(plan.Days), want))
	}
	return nil
}

// wire structures tolerate sloppy model output; estimated_cost in particular
// may arrive as a number, a string, or garbage.
type wirePlan struct {
	GeneralInfo GeneralInfo `json:"general_info"`
	Days        []wireDay   `json:"days"`
}

type wireDay struct {
	DayNumber     json.Number    `json:"day_number"`
	Title         string         `json:"title"`
	Activities    []wireActivity `json:"activities"`
	Accommodation string         `json:"accommodation"`
	Food          string         `json:"food"`
	Meals         []string       `json:"meals"`
}

type wireActivity struct {
	TimeSlot      string `json:"time_slot"`
	Description   string `json:"description"`
	EstimatedCost any    `json:"estimated_cost"`
}

func decodePlan(raw []byte) (*Plan, error) {
	var wire wirePlan
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to parse plan JSON: %w", err)
	}
	if len(wire.Days) == 0 {
		return nil, errors.New("plan has no days")
	}

	plan := &Plan{GeneralInfo: wire.GeneralInfo}
	for i, wd := range wire.Days {
		day := Day{
			Index:   i + 1,
			Title:   wd.Title,
			Lodging: wd.Accommodation,
			Meals:   wd.Meals,
		}
		// Older prompt shape carried a single 'food' string; keep it as a
		// meal suggestion when the meals array is absent.
		if len(day.Meals) == 0 && wd.Food != "" {
			day.Meals = []string{wd.Food}
		}
		for _, wa := range wd.Activities {
			cost, warn := coerceCost(wa.EstimatedCost)
			if warn != "" {
				plan.Warnings = append(plan.Warnings, fmt.Sprintf("day %d: %s", i+1, warn))
			}
			day.Activities = append(day.Activities, Activity{
				Slot:          wa.TimeSlot,
				Description:   wa.Description,
				EstimatedCost: cost,
			})
		}
		plan.Days = append(plan.Days, day)
	}
	return plan, nil
}

// coerceCost turns whatever the model put in estimated_cost into a
// non-negative number. Unusable values become 0 with a warning instead of
// failing the plan.
func coerceCost(v any) (float64, string) {
	switch val := v.(type) {
	case nil:
		return 0, ""
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, fmt.Sprintf("non-numeric cost %q treated as 0", val.String())
		}
		if f < 0 {
			return 0, fmt.Sprintf("negative cost %v treated as 0", f)
		}
		return f, ""
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil || f < 0 {
			return 0, fmt.Sprintf("non-numeric cost %q treated as 0", val)
		}
		return f, ""
	default:
		return 0, fmt.Sprintf("non-numeric cost %v treated as 0", v)
	}
}

func renumber(days []Day) {
	for i := range days {
		days[i].Index = i + 1
	}
}
