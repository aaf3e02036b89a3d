// README: Trip request aggregate and preference enums.
package trip

import (
	"errors"
	"strings"
	"time"

	"voyago/internal/types"
)

type FoodPreference string

const (
	FoodAny        FoodPreference = "any"
	FoodVegetarian FoodPreference = "vegetarian"
	FoodVegan      FoodPreference = "vegan"
	FoodOther      FoodPreference = "other"
)

type HotelPreference string

const (
	HotelBudget   HotelPreference = "budget"
	HotelStandard HotelPreference = "standard"
	HotelLuxury   HotelPreference = "luxury"
)

// Required field names, used to drive clarifying questions.
const (
	FieldOrigin      = "origin"
	FieldDestination = "destination"
	FieldStartDate   = "start_date"
	FieldDuration    = "duration"
	FieldTravelers   = "travelers"
	FieldBudget      = "budget"
)

var (
	ErrInvalidDuration  = errors.New("trip duration must be at least one day")
	ErrInvalidTravelers = errors.New("traveler count must be at least one")
)

// Request accumulates everything known about the trip being planned. It is
// mutated incrementally while the conversation collects fields and copied by
// value once a planning run starts.
type Request struct {
	Origin       string          `json:"origin"`
	Destination  string          `json:"destination"`
	StartDate    time.Time       `json:"start_date"`
	DurationDays int             `json:"duration_days"`
	Travelers    int             `json:"travelers"`
	Budget       types.Money     `json:"budget"`
	HomeCurrency string          `json:"home_currency,omitempty"`
	Food         FoodPreference  `json:"food_preference,omitempty"`
	Hotel        HotelPreference `json:"hotel_preference,omitempty"`

	// Optional enrichment fields; never required.
	CitiesToVisit      []string `json:"cities_to_visit,omitempty"`
	Children           int      `json:"children,omitempty"`
	ChildrenAges       string   `json:"children_ages,omitempty"`
	FlightClass        string   `json:"flight_class,omitempty"`
	CruiseDetails      string   `json:"cruise_details,omitempty"`
	AdditionalServices []string `json:"additional_services,omitempty"`
}

// MissingFields lists the required fields that are still unset.
func (r Request) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(r.Origin) == "" {
		missing = append(missing, FieldOrigin)
	}
	if strings.TrimSpace(r.Destination) == "" {
		missing = append(missing, FieldDestination)
	}
	if r.StartDate.IsZero() {
		missing = append(missing, FieldStartDate)
	}
	if r.DurationDays == 0 {
		missing = append(missing, FieldDuration)
	}
	if r.Travelers == 0 {
		missing = append(missing, FieldTravelers)
	}
	if r.Budget.Amount == 0 {
		missing = append(missing, FieldBudget)
	}
	return missing
}

// Validate enforces the lower bounds on fields that are present.
func (r Request) Validate() error {
	if r.DurationDays < 1 {
		return ErrInvalidDuration
	}
	if r.Travelers < 1 {
		return ErrInvalidTravelers
	}
	return nil
}

// ApplyDefaults fills optional preferences that the user declined to state.
func (r *Request) ApplyDefaults() {
	if r.Food == "" {
		r.Food = FoodAny
	}
	if r.Hotel == "" {
		r.Hotel = HotelStandard
	}
	if r.HomeCurrency == "" {
		r.HomeCurrency = r.Budget.Currency
	}
}

// EndDate is the last day of the trip.
func (r Request) EndDate() time.Time {
	if r.StartDate.IsZero() || r.DurationDays < 1 {
		return r.StartDate
	}
	return r.StartDate.AddDate(0, 0, r.DurationDays-1)
}

// ParseFood maps free text to a food preference, defaulting unknown input to
// FoodOther so the preference is still carried into the prompt.
func ParseFood(v string) FoodPreference {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "any", "anything", "no preference":
		return FoodAny
	case "vegetarian", "veggie":
		return FoodVegetarian
	case "vegan":
		return FoodVegan
	default:
		return FoodOther
	}
}

// ParseHotel maps free text to a hotel preference.
func ParseHotel(v string) HotelPreference {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "budget", "cheap", "hostel":
		return HotelBudget
	case "luxury", "five star", "5 star", "premium":
		return HotelLuxury
	default:
		return HotelStandard
	}
}
