// README: Structured prompt construction for itinerary generation.
package itinerary

import (
	"fmt"
	"strings"

	"voyago/internal/flights"
	"voyago/internal/modules/trip"
)

const outputSchema = `
Structure the output as a JSON object with a 'general_info' object and a 'days' array.
The 'general_info' object should contain 'currency_conversion', 'travel_insurance_tips', 'approx_taxi_costs', and 'other_tips' (e.g., local customs, safety, best time to visit).
The 'days' array should contain objects, each with 'day_number' (integer), 'title' (e.g., 'Arrival in Bali & Kuta Exploration'), 'activities' (array of objects with 'time_slot', 'description', and 'estimated_cost' as a number), 'accommodation' (string), 'food' (string), and 'meals' (array of strings, one suggestion per meal of the day).
Ensure all string values within the JSON are plain text, without markdown characters.`

// buildPrompt enumerates every known constraint for the model.
func buildPrompt(req trip.Request, method string, offers []flights.Offer, rateNote string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a comprehensive and engaging travel plan for a trip from %s to %s.", req.Origin, req.Destination)
	fmt.Fprintf(&b, " The trip is planned from %s to %s, lasting exactly %d days.",
		req.StartDate.Format("2006-01-02"), req.EndDate().Format("2006-01-02"), req.DurationDays)
	fmt.Fprintf(&b, " The approximate budget for the entire trip is %s.", req.Budget.String())
	fmt.Fprintf(&b, " There will be %d adult travelers.", req.Travelers)

	if req.Children > 0 {
		fmt.Fprintf(&b, " And %d children, with ages: %s.", req.Children, req.ChildrenAges)
		b.WriteString(" Please ensure all suggestions are kid-friendly.")
	} else {
		b.WriteString(" No children are included in this trip.")
	}

	if len(req.CitiesToVisit) > 0 {
		fmt.Fprintf(&b, " The cities/areas to visit within the destination include: %s.", strings.Join(req.CitiesToVisit, ", "))
	}
	if req.Food != "" && req.Food != trip.FoodAny {
		fmt.Fprintf(&b, " The travelers prefer food options like: %s. Every day's meal suggestions must be compatible with this preference.", req.Food)
	}
	if req.Hotel != "" {
		fmt.Fprintf(&b, " For accommodation, suggest hotels that are %s.", req.Hotel)
	}

	if method != "" {
		fmt.Fprintf(&b, " The preferred method of travel is %s.", method)
		switch {
		case strings.EqualFold(method, "flight") && req.FlightClass != "":
			fmt.Fprintf(&b, " Preferred flight class: %s.", req.FlightClass)
		case strings.EqualFold(method, "cruise") && req.CruiseDetails != "":
			fmt.Fprintf(&b, " With cruise details: %s.", req.CruiseDetails)
		}
	}

	if len(offers) > 0 {
		best := offers[0]
		fmt.Fprintf(&b, " A flight option already found costs %s with %s airline; factor it into the budget but do not re-plan it.",
			best.Price.String(), best.Carrier)
	}

	if len(req.AdditionalServices) > 0 {
		fmt.Fprintf(&b, " Additionally, please include information or suggestions regarding: %s.",
			strings.Join(req.AdditionalServices, ", "))
	}

	if rateNote != "" {
		fmt.Fprintf(&b, " For currency conversion tips, use this exact rate: '%s'."+
			" Do NOT add any 'as of' dates or specific dates to the currency conversion tip, just state the rate as provided.", rateNote)
	}

	b.WriteString(" The plan should cover daily activities, recommended hotels close to tourist places," +
		" specific food recommendations (including restaurants if possible), approximate local taxi costs," +
		" currency conversion tips, and any other relevant factors like local customs, safety advice," +
		" or best travel tips for the specified dates.")
	fmt.Fprintf(&b, " The 'days' array must contain exactly %d entries, one per day.", req.DurationDays)
	b.WriteString(outputSchema)

	return b.String()
}

// buildContinuationPrompt asks for the missing tail of a short plan.
func buildContinuationPrompt(req trip.Request, have, want int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The travel plan for the trip from %s to %s is incomplete: days 1 through %d are already planned, but the trip lasts %d days.",
		req.Origin, req.Destination, have, want)
	fmt.Fprintf(&b, " Produce ONLY the missing days %d through %d, consistent with a %s trip for %d travelers with a budget of %s.",
		have+1, want, req.Destination, req.Travelers, req.Budget.String())
	if req.Food != "" && req.Food != trip.FoodAny {
		fmt.Fprintf(&b, " Meal suggestions must be %s-compatible.", req.Food)
	}
	b.WriteString(outputSchema)
	fmt.Fprintf(&b, "\nThe 'days' array must contain exactly %d entries, numbered %d to %d. 'general_info' may be empty.",
		want-have, have+1, want)
	return b.String()
}
