// README: Itinerary plan types.
package itinerary

// Activity is one scheduled item within a day.
type Activity struct {
	Slot          string  `json:"time_slot"`
	Description   string  `json:"description"`
	EstimatedCost float64 `json:"estimated_cost"`
}

// Day is one day of the plan. Index runs 1..duration.
type Day struct {
	Index      int        `json:"day_number"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
	Lodging    string     `json:"accommodation"`
	Meals      []string   `json:"meals"`
}

// GeneralInfo carries trip-wide advice alongside the day plan.
type GeneralInfo struct {
	CurrencyConversion  string `json:"currency_conversion,omitempty"`
	TravelInsuranceTips string `json:"travel_insurance_tips,omitempty"`
	ApproxTaxiCosts     string `json:"approx_taxi_costs,omitempty"`
	OtherTips           string `json:"other_tips,omitempty"`
}

// Plan is a complete generated itinerary. len(Days) always equals the
// requested duration; the generator repairs or rejects anything else.
type Plan struct {
	Days        []Day       `json:"days"`
	GeneralInfo GeneralInfo `json:"general_info"`
	Warnings    []string    `json:"warnings,omitempty"`
}

// EstimatedTotal sums every per-activity cost estimate.
func (p *Plan) EstimatedTotal() float64 {
	var total float64
	for _, d := range p.Days {
		for _, a := range d.Activities {
			total += a.EstimatedCost
		}
	}
	return total
}
