// README: Trip field extraction from free-form user messages.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"voyago/internal/modules/trip"
)

// extraction captures the structured output of one extraction call. Only
// fields the user actually stated are populated; everything else stays zero.
type extraction struct {
	Abandon         bool    `json:"abandon"`
	ConfirmBooking  bool    `json:"confirm_booking"`
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	StartDate       string  `json:"start_date"`
	DurationDays    int     `json:"duration_days"`
	Travelers       int     `json:"travelers"`
	BudgetAmount    float64 `json:"budget_amount"`
	BudgetCurrency  string  `json:"budget_currency"`
	HomeCurrency    string  `json:"home_currency"`
	FoodPreference  string  `json:"food_preference"`
	HotelPreference string  `json:"hotel_preference"`
	OriginIATA      string  `json:"origin_iata"`
	DestinationIATA string  `json:"destination_iata"`
	Reply           string  `json:"reply"`
}

// buildExtractionPrompt constructs the instructions for the AI.
func buildExtractionPrompt(known trip.Request, lastQuestion, userMessage string) string {
	knownJSON, _ := json.Marshal(known)
	today := time.Now().Format("2006-01-02")

	return fmt.Sprintf(`Role: You are the intake assistant for "Voyago", a conversational trip planner.
Context:
- Current Date: %s
- Fields already collected (JSON): %s
- Last question asked to the user: %q

RULES:
1. Extract ONLY details the user explicitly states in this message. Never invent or guess values.
2. PRESERVE CONTEXT: leave any field the user did not mention as its zero value ("" or 0). Do NOT repeat already-collected fields.
3. Dates: resolve relative dates ("next Friday", "in two weeks") against the Current Date and output YYYY-MM-DD.
4. Duration: "a week" -> 7, "long weekend" -> 3. A date range implies both start_date and duration_days.
5. Budget: split "2000 USD" into budget_amount 2000 and budget_currency "USD". Accept symbols ($ -> USD, EUR sign -> EUR).
6. food_preference: one of "any", "vegetarian", "vegan", "other". hotel_preference: one of "budget", "standard", "luxury".
7. If the user gives a manual 3-letter airport code (e.g. "use CDG for Paris"), set origin_iata or destination_iata accordingly.
8. ABANDONMENT: set "abandon": true only when the user clearly wants to stop or start over ("cancel", "forget it", "start again").
9. CONFIRMATION: set "confirm_booking": true only when the user agrees to book the presented plan ("yes, book it", "confirm").
10. "reply": one short, natural sentence that acknowledges what was understood and asks for the single most important missing detail. No markdown.

Output JSON Schema:
{
  "abandon": boolean,
  "confirm_booking": boolean,
  "origin": "string",
  "destination": "string",
  "start_date": "YYYY-MM-DD or empty",
  "duration_days": integer,
  "travelers": integer,
  "budget_amount": number,
  "budget_currency": "ISO 4217 code or empty",
  "home_currency": "ISO 4217 code or empty",
  "food_preference": "string",
  "hotel_preference": "string",
  "origin_iata": "string",
  "destination_iata": "string",
  "reply": "string"
}

User Message: %s`, today, knownJSON, lastQuestion, userMessage)
}

// extract runs the extraction call and decodes the result.
func (p *Planner) extract(ctx context.Context, known trip.Request, lastQuestion, message string) (*extraction, error) {
	if p.llm == nil {
		return nil, errNoLLM
	}
	raw, err := p.llm.GenerateJSON(ctx, buildExtractionPrompt(known, lastQuestion, message))
	if err != nil {
		return nil, err
	}
	var ext extraction
	if err := json.Unmarshal(raw, &ext); err != nil {
		return nil, fmt.Errorf("failed to parse extraction: %w", err)
	}
	return &ext, nil
}

// looksLikeConfirmation is the scripted fallback when the model is down.
func looksLikeConfirmation(message string) bool {
	m := strings.ToLower(strings.TrimSpace(message))
	for _, kw := range []string{"yes", "confirm", "book it", "book", "go ahead", "sounds good"} {
		if m == kw || strings.HasPrefix(m, kw+" ") || strings.HasPrefix(m, kw+",") {
			return true
		}
	}
	return false
}

// looksLikeAbandonment is the scripted fallback for cancellation.
func looksLikeAbandonment(message string) bool {
	m := strings.ToLower(strings.TrimSpace(message))
	for _, kw := range []string{"cancel", "forget it", "never mind", "nevermind", "start over", "stop"} {
		if strings.Contains(m, kw) {
			return true
		}
	}
	return false
}
