// README: IATA code resolver with session-scoped caching and strict validation.
package airport

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"voyago/internal/ai"
	"voyago/internal/provider"
)

// Unresolved marks a city the model could not map to a real airport code.
// Callers must treat it as "ask the user", never as a searchable code.
const Unresolved = "unresolved"

var iataPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidIATA reports whether v is a well-formed 3-uppercase-letter code.
func ValidIATA(v string) bool {
	return iataPattern.MatchString(v)
}

// Code is one resolution result.
type Code struct {
	City string `json:"city"`
	IATA string `json:"iata"`
	Note string `json:"note,omitempty"`
}

// Resolved reports whether the code can be used in a flight search.
func (c Code) Resolved() bool {
	return c.IATA != Unresolved && c.IATA != ""
}

// Cache memoizes resolutions for one session so the same city is resolved at
// most once.
type Cache struct {
	mu    sync.Mutex
	codes map[string]Code
}

func NewCache() *Cache {
	return &Cache{codes: make(map[string]Code)}
}

func (c *Cache) get(city string) (Code, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	code, ok := c.codes[city]
	return code, ok
}

func (c *Cache) put(city string, code Code) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codes[city] = code
}

// Put primes the cache, used when the user supplies a code manually.
func (c *Cache) Put(city, iata string) {
	iata = strings.ToUpper(strings.TrimSpace(iata))
	if !iataPattern.MatchString(iata) {
		return
	}
	c.put(cacheKey(city), Code{City: city, IATA: iata, Note: "provided by user"})
}

func cacheKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// Resolver asks the language model for IATA codes.
type Resolver struct {
	llm ai.LLMProvider
}

func NewResolver(llm ai.LLMProvider) *Resolver {
	return &Resolver{llm: llm}
}

// Resolve returns the IATA code for a city, consulting the session cache
// first. Invalid or uncertain model output degrades to the Unresolved
// sentinel; it never guesses.
func (r *Resolver) Resolve(ctx context.Context, cache *Cache, city string) (Code, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Code{}, provider.E(provider.KindInvalidRequest, "airport.resolve",
			fmt.Errorf("city name is required"))
	}

	key := cacheKey(city)
	if cache != nil {
		if code, ok := cache.get(key); ok {
			return code, nil
		}
	}

	code := r.lookup(ctx, city)
	if cache != nil {
		cache.put(key, code)
	}
	return code, nil
}

func (r *Resolver) lookup(ctx context.Context, city string) Code {
	if r.llm == nil {
		return Code{City: city, IATA: Unresolved, Note: "code lookup not configured"}
	}

	prompt := fmt.Sprintf("What is the 3-letter IATA airport code for '%s'?"+
		" Respond with only the 3-letter code (e.g., 'BOM', 'LAX', 'DPS')."+
		" If no specific airport code is commonly associated, respond with 'N/A'.\n"+
		`Output JSON Schema: {"iata_code": "string"}`, city)

	raw, err := r.llm.GenerateJSON(ctx, prompt)
	if err != nil {
		return Code{City: city, IATA: Unresolved, Note: "lookup failed"}
	}

	var payload struct {
		IATACode string `json:"iata_code"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Code{City: city, IATA: Unresolved, Note: "unparseable lookup response"}
	}

	candidate := strings.ToUpper(strings.TrimSpace(payload.IATACode))
	if candidate == "" || candidate == "N/A" || !iataPattern.MatchString(candidate) {
		return Code{City: city, IATA: Unresolved, Note: "no airport code associated"}
	}
	return Code{City: city, IATA: candidate}
}
