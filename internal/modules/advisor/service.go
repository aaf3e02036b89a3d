// README: Travel method advisor; AI classification with a geographic fallback.
package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"voyago/internal/ai"
	"voyago/internal/geo"
)

var ErrEmptyRoute = errors.New("origin and destination are required")

// sameCountryTrainCutoffKm is the distance under which rail or road beats
// flying for a domestic trip.
const sameCountryTrainCutoffKm = 700

// Service asks the language model to rank feasible travel methods and falls
// back to a geographic heuristic when the model cannot be used.
type Service struct {
	llm     ai.LLMProvider
	locator *geo.Locator
	log     *zap.Logger
}

// NewService creates the advisor. Both llm and locator may be nil; the
// service degrades to the static heuristic.
func NewService(llm ai.LLMProvider, locator *geo.Locator, log *zap.Logger) *Service {
	return &Service{llm: llm, locator: locator, log: log}
}

// Suggest returns a ranked, never-empty list of travel methods.
func (s *Service) Suggest(ctx context.Context, origin, destination string) ([]Suggestion, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return nil, ErrEmptyRoute
	}

	if s.llm != nil {
		if out, err := s.classify(ctx, origin, destination, false); err == nil {
			return out, nil
		} else {
			s.log.Warn("travel method classification failed, retrying strict",
				zap.String("origin", origin), zap.String("destination", destination), zap.Error(err))
		}
		// One stricter retry before giving up on the model.
		if out, err := s.classify(ctx, origin, destination, true); err == nil {
			return out, nil
		} else {
			s.log.Warn("strict travel method classification failed, using heuristic", zap.Error(err))
		}
	}

	return s.heuristic(ctx, origin, destination), nil
}

func (s *Service) classify(ctx context.Context, origin, destination string, strict bool) ([]Suggestion, error) {
	prompt := buildMethodPrompt(origin, destination, strict)

	raw, err := s.llm.GenerateJSON(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Methods []Suggestion `json:"methods"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse method list: %w", err)
	}

	var out []Suggestion
	for _, m := range payload.Methods {
		if strings.TrimSpace(m.Method) == "" {
			continue
		}
		m.Method = strings.ToLower(strings.TrimSpace(m.Method))
		out = append(out, m)
	}
	if len(out) == 0 {
		return nil, errors.New("model returned no usable methods")
	}
	return out, nil
}

func buildMethodPrompt(origin, destination string, strict bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Given a trip from %s to %s, what are the most common and logical methods of travel?", origin, destination)
	b.WriteString(" Consider if it's international, domestic, or coastal.")
	b.WriteString(" Rank the methods from most to least recommended.")
	b.WriteString(`
Output JSON Schema:
{
  "methods": [
    {
      "method": "flight" | "train" | "car" | "cruise" | "bus",
      "rationale": "string (one sentence)",
      "relative_cost": "low" | "medium" | "high",
      "relative_time": "short" | "medium" | "long"
    }
  ]
}`)
	if strict {
		b.WriteString("\nRespond with ONLY the JSON object above. Do not add prose, markdown, or any field not listed.")
	}
	return b.String()
}

// heuristic ranks methods without the model. With a maps client it compares
// countries and great-circle distance; without one it falls back to a
// flight-first default.
func (s *Service) heuristic(ctx context.Context, origin, destination string) []Suggestion {
	var from, to geo.PlaceInfo
	located := false
	if s.locator != nil {
		var wg sync.WaitGroup
		var errFrom, errTo error
		wg.Add(2)
		go func() {
			defer wg.Done()
			from, errFrom = s.locator.Locate(ctx, origin)
		}()
		go func() {
			defer wg.Done()
			to, errTo = s.locator.Locate(ctx, destination)
		}()
		wg.Wait()
		located = errFrom == nil && errTo == nil
	}

	if located && from.Country != "" && from.Country == to.Country {
		dist := geo.HaversineKm(from.Lat, from.Lng, to.Lat, to.Lng)
		if dist <= sameCountryTrainCutoffKm {
			return []Suggestion{
				{Method: "train", Rationale: "short domestic route", RelativeCost: "low", RelativeTime: "medium"},
				{Method: "car", Rationale: "flexible for short distances", RelativeCost: "low", RelativeTime: "medium"},
				{Method: "flight", Rationale: "fastest but usually overkill here", RelativeCost: "medium", RelativeTime: "short"},
			}
		}
		return []Suggestion{
			{Method: "flight", Rationale: "long domestic route", RelativeCost: "medium", RelativeTime: "short"},
			{Method: "train", Rationale: "slower but scenic", RelativeCost: "low", RelativeTime: "long"},
		}
	}

	return []Suggestion{
		{Method: "flight", Rationale: "international or unknown route", RelativeCost: "high", RelativeTime: "short"},
		{Method: "train", Rationale: "possible for neighboring regions", RelativeCost: "medium", RelativeTime: "long"},
	}
}
