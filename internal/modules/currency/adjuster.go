// README: Currency adjustment; budget summaries and conversions with a session rate cache.
package currency

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"voyago/internal/exchange"
	"voyago/internal/provider"
	"voyago/internal/types"
)

var ErrNotConfigured = errors.New("currency rates are not configured")

// BudgetSummary reports the trip's estimated total in both currencies.
// HomeTotal is exactly TripTotal multiplied by Rate.
type BudgetSummary struct {
	TripTotal     types.Money `json:"trip_total"`
	HomeTotal     types.Money `json:"home_total"`
	Rate          float64     `json:"rate"`
	RateTimestamp time.Time   `json:"rate_timestamp"`
}

// ConversionResult answers one ad-hoc conversion request.
type ConversionResult struct {
	Converted types.Money `json:"converted"`
	Rate      float64     `json:"rate"`
	FetchedAt time.Time   `json:"rate_timestamp"`
	Message   string      `json:"message"`
}

// RateCache memoizes rate lookups for one session with a bounded lifetime,
// so repeated summaries do not hammer the provider but never reuse a stale
// rate indefinitely.
type RateCache struct {
	mu      sync.Mutex
	entries map[string]cachedRates
}

// cachedRates keeps the local insertion instant separately: the provider's
// FetchedAt is its own publication time (often hours old) and only serves
// rate reporting, never expiry.
type cachedRates struct {
	rates    exchange.Rates
	cachedAt time.Time
}

func NewRateCache() *RateCache {
	return &RateCache{entries: make(map[string]cachedRates)}
}

func (c *RateCache) get(base string, ttl time.Duration) (exchange.Rates, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[base]
	if !ok || time.Since(e.cachedAt) > ttl {
		return exchange.Rates{}, false
	}
	return e.rates, true
}

func (c *RateCache) put(base string, r exchange.Rates) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[base] = cachedRates{rates: r, cachedAt: time.Now()}
}

// Adjuster converts cost estimates into the traveler's home currency.
type Adjuster struct {
	rates exchange.RateProvider
	ttl   time.Duration
}

// NewAdjuster creates the adjuster. rates may be nil when the provider key is
// absent; conversion calls then fail with ErrNotConfigured and callers omit
// the converted figures.
func NewAdjuster(rates exchange.RateProvider, ttl time.Duration) *Adjuster {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Adjuster{rates: rates, ttl: ttl}
}

func (a *Adjuster) lookup(ctx context.Context, cache *RateCache, base string) (exchange.Rates, error) {
	base = types.NormalizeCurrency(base)
	if cache != nil {
		if r, ok := cache.get(base, a.ttl); ok {
			return r, nil
		}
	}
	if a.rates == nil {
		return exchange.Rates{}, ErrNotConfigured
	}
	r, err := a.rates.Latest(ctx, base)
	if err != nil {
		return exchange.Rates{}, err
	}
	if cache != nil {
		cache.put(base, r)
	}
	return r, nil
}

// Summarize computes the budget summary for a trip total in the home
// currency. Same-currency summaries use rate 1 without a provider call.
func (a *Adjuster) Summarize(ctx context.Context, cache *RateCache, tripTotal types.Money, homeCurrency string) (BudgetSummary, error) {
	homeCurrency = types.NormalizeCurrency(homeCurrency)
	tripCurrency := types.NormalizeCurrency(tripTotal.Currency)

	if homeCurrency == "" || homeCurrency == tripCurrency {
		return BudgetSummary{
			TripTotal:     tripTotal,
			HomeTotal:     tripTotal,
			Rate:          1,
			RateTimestamp: time.Now(),
		}, nil
	}

	rates, err := a.lookup(ctx, cache, tripCurrency)
	if err != nil {
		return BudgetSummary{}, err
	}
	rate, ok := rates.Rate(homeCurrency)
	if !ok {
		return BudgetSummary{}, provider.E(provider.KindInvalidRequest, "currency.summarize",
			fmt.Errorf("no conversion rate for %s", homeCurrency))
	}

	return BudgetSummary{
		TripTotal:     tripTotal,
		HomeTotal:     types.Money{Amount: tripTotal.Amount * rate, Currency: homeCurrency},
		Rate:          rate,
		RateTimestamp: rates.FetchedAt,
	}, nil
}

// Convert answers the standalone conversion endpoint. The message format
// matches what the itinerary prompt expects as a rate note.
func (a *Adjuster) Convert(ctx context.Context, amount float64, from, to string) (ConversionResult, error) {
	from = types.NormalizeCurrency(from)
	to = types.NormalizeCurrency(to)
	if from == "" || to == "" {
		return ConversionResult{}, provider.E(provider.KindInvalidRequest, "currency.convert",
			errors.New("both currency codes are required"))
	}

	rates, err := a.lookup(ctx, nil, from)
	if err != nil {
		return ConversionResult{}, err
	}
	rate, ok := rates.Rate(to)
	if !ok {
		return ConversionResult{}, provider.E(provider.KindInvalidRequest, "currency.convert",
			fmt.Errorf("no conversion rate for %s", to))
	}

	return ConversionResult{
		Converted: types.Money{Amount: amount * rate, Currency: to},
		Rate:      rate,
		FetchedAt: rates.FetchedAt,
		Message:   fmt.Sprintf("1 %s is approximately %.3f %s.", from, rate, to),
	}, nil
}

// RateNote builds the currency tip sentence for the itinerary prompt, or ""
// when rates are unavailable.
func (a *Adjuster) RateNote(ctx context.Context, cache *RateCache, from, to string) string {
	from = types.NormalizeCurrency(from)
	to = types.NormalizeCurrency(to)
	if from == "" || to == "" || from == to {
		return ""
	}
	rates, err := a.lookup(ctx, cache, from)
	if err != nil {
		return ""
	}
	rate, ok := rates.Rate(to)
	if !ok {
		return ""
	}
	return fmt.Sprintf("1 %s is approximately %.3f %s.", from, rate, to)
}
