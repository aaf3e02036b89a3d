package trip

import (
	"reflect"
	"testing"
	"time"

	"voyago/internal/types"
)

func fullRequest() Request {
	return Request{
		Origin:       "Taipei",
		Destination:  "Paris",
		StartDate:    time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		DurationDays: 3,
		Travelers:    2,
		Budget:       types.Money{Amount: 3000, Currency: "EUR"},
	}
}

func TestMissingFields(t *testing.T) {
	var empty Request
	want := []string{FieldOrigin, FieldDestination, FieldStartDate, FieldDuration, FieldTravelers, FieldBudget}
	if got := empty.MissingFields(); !reflect.DeepEqual(got, want) {
		t.Errorf("MissingFields() = %v, want %v", got, want)
	}

	r := fullRequest()
	if got := r.MissingFields(); len(got) != 0 {
		t.Errorf("MissingFields() = %v, want none", got)
	}

	r.Destination = "   "
	if got := r.MissingFields(); !reflect.DeepEqual(got, []string{FieldDestination}) {
		t.Errorf("MissingFields() = %v", got)
	}
}

func TestValidate(t *testing.T) {
	r := fullRequest()
	if err := r.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	r.DurationDays = 0
	if err := r.Validate(); err != ErrInvalidDuration {
		t.Errorf("want ErrInvalidDuration, got %v", err)
	}

	r = fullRequest()
	r.Travelers = -1
	if err := r.Validate(); err != ErrInvalidTravelers {
		t.Errorf("want ErrInvalidTravelers, got %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	r := fullRequest()
	r.ApplyDefaults()
	if r.Food != FoodAny {
		t.Errorf("Food = %q", r.Food)
	}
	if r.Hotel != HotelStandard {
		t.Errorf("Hotel = %q", r.Hotel)
	}
	if r.HomeCurrency != "EUR" {
		t.Errorf("HomeCurrency = %q, want budget currency", r.HomeCurrency)
	}

	r = fullRequest()
	r.Food = FoodVegan
	r.HomeCurrency = "TWD"
	r.ApplyDefaults()
	if r.Food != FoodVegan || r.HomeCurrency != "TWD" {
		t.Error("ApplyDefaults must not overwrite stated preferences")
	}
}

func TestEndDate(t *testing.T) {
	r := fullRequest()
	want := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	if got := r.EndDate(); !got.Equal(want) {
		t.Errorf("EndDate() = %v, want %v", got, want)
	}

	r.DurationDays = 1
	if got := r.EndDate(); !got.Equal(r.StartDate) {
		t.Errorf("single-day EndDate() = %v", got)
	}
}

func TestParseFood(t *testing.T) {
	tests := []struct {
		in   string
		want FoodPreference
	}{
		{"", FoodAny},
		{"anything", FoodAny},
		{"No Preference", FoodAny},
		{"Vegetarian", FoodVegetarian},
		{"veggie", FoodVegetarian},
		{"vegan", FoodVegan},
		{"halal", FoodOther},
	}
	for _, tt := range tests {
		if got := ParseFood(tt.in); got != tt.want {
			t.Errorf("ParseFood(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseHotel(t *testing.T) {
	tests := []struct {
		in   string
		want HotelPreference
	}{
		{"budget", HotelBudget},
		{"Hostel", HotelBudget},
		{"luxury", HotelLuxury},
		{"5 star", HotelLuxury},
		{"", HotelStandard},
		{"whatever", HotelStandard},
	}
	for _, tt := range tests {
		if got := ParseHotel(tt.in); got != tt.want {
			t.Errorf("ParseHotel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
