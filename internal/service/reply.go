// README: Reply assembly and clarifying question text.
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"voyago/internal/modules/currency"
	"voyago/internal/modules/flightsearch"
	"voyago/internal/modules/itinerary"
	"voyago/internal/modules/trip"
)

func parseDate(v string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(v))
}

// questionFor pairs every missing required field with a concrete next action.
func questionFor(field string) string {
	switch field {
	case trip.FieldOrigin:
		return "Where will you be traveling from?"
	case trip.FieldDestination:
		return "Where would you like to go?"
	case trip.FieldStartDate:
		return "When does the trip start? A date like 2026-09-12 works best."
	case trip.FieldDuration:
		return "How many days will the trip last?"
	case trip.FieldTravelers:
		return "How many people are traveling?"
	case trip.FieldBudget:
		return "What's the overall budget, including the currency (e.g. 2000 USD)?"
	default:
		return "Could you tell me more about the trip?"
	}
}

func correctionFor(err error) string {
	switch {
	case errors.Is(err, trip.ErrInvalidDuration):
		return "The trip needs to last at least one day — how many days should I plan for?"
	case errors.Is(err, trip.ErrInvalidTravelers):
		return "I need at least one traveler — how many people are going?"
	default:
		return "Some trip details look off; could you restate them?"
	}
}

// presentPlan renders the consolidated plan as conversational text. Degraded
// contributions are named explicitly so the user knows what's missing.
func presentPlan(req trip.Request, method string, plan *itinerary.Plan, result *flightsearch.Result, summary *currency.BudgetSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Here's your %d-day plan for %s, traveling by %s:\n\n", req.DurationDays, req.Destination, method)

	for _, day := range plan.Days {
		fmt.Fprintf(&b, "Day %d: %s\n", day.Index, day.Title)
		for _, act := range day.Activities {
			if act.EstimatedCost > 0 {
				fmt.Fprintf(&b, "  - %s: %s (~%.0f %s)\n", act.Slot, act.Description, act.EstimatedCost, req.Budget.Currency)
			} else {
				fmt.Fprintf(&b, "  - %s: %s\n", act.Slot, act.Description)
			}
		}
		if day.Lodging != "" {
			fmt.Fprintf(&b, "  Stay: %s\n", day.Lodging)
		}
		if len(day.Meals) > 0 {
			fmt.Fprintf(&b, "  Meals: %s\n", strings.Join(day.Meals, "; "))
		}
		b.WriteString("\n")
	}

	switch {
	case result != nil && len(result.Offers) > 0:
		best := result.Offers[0]
		fmt.Fprintf(&b, "Best flight found: %s, %s per person, %d stop(s), %s in the air.\n",
			best.Carrier, best.Price.String(), best.Stops, best.Duration)
	case result != nil && result.Degraded:
		fmt.Fprintf(&b, "Note: %s\n", result.Reason)
	}

	if summary != nil {
		fmt.Fprintf(&b, "Estimated total: %s", summary.TripTotal.Round2().String())
		if summary.Rate != 1 {
			fmt.Fprintf(&b, " (about %s at a rate of %.3f)", summary.HomeTotal.Round2().String(), summary.Rate)
		}
		b.WriteString(".\n")
	} else {
		b.WriteString("Live currency conversion is unavailable right now; totals are in your budget currency.\n")
	}

	if info := plan.GeneralInfo.OtherTips; info != "" {
		fmt.Fprintf(&b, "Tips: %s\n", info)
	}

	b.WriteString("\nWould you like me to book this itinerary?")
	return b.String()
}
