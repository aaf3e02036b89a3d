package currency

import (
	"context"
	"errors"
	"testing"
	"time"

	"voyago/internal/exchange"
	"voyago/internal/provider"
	"voyago/internal/types"
)

// stubRates is a test double for exchange.RateProvider.
type stubRates struct {
	rates exchange.Rates
	err   error
	calls int
}

func (s *stubRates) Latest(_ context.Context, base string) (exchange.Rates, error) {
	s.calls++
	if s.err != nil {
		return exchange.Rates{}, s.err
	}
	r := s.rates
	r.Base = base
	return r, nil
}

func eurRates() exchange.Rates {
	return exchange.Rates{
		Quotes:    map[string]float64{"EUR": 1, "USD": 1.0876, "TWD": 34.5},
		FetchedAt: time.Now(),
	}
}

func TestSummarize_ExactMultiplication(t *testing.T) {
	a := NewAdjuster(&stubRates{rates: eurRates()}, time.Minute)
	trip := types.Money{Amount: 2480.55, Currency: "EUR"}

	sum, err := a.Summarize(context.Background(), NewRateCache(), trip, "TWD")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if sum.Rate != 34.5 {
		t.Errorf("Rate = %v, want 34.5", sum.Rate)
	}
	// The home total must be exactly trip total times the reported rate.
	if sum.HomeTotal.Amount != trip.Amount*sum.Rate {
		t.Errorf("HomeTotal = %v, want %v", sum.HomeTotal.Amount, trip.Amount*sum.Rate)
	}
	if sum.HomeTotal.Currency != "TWD" {
		t.Errorf("HomeTotal.Currency = %q", sum.HomeTotal.Currency)
	}
	if sum.RateTimestamp.IsZero() {
		t.Error("summary must carry the rate timestamp")
	}
}

func TestSummarize_SameCurrencySkipsProvider(t *testing.T) {
	stub := &stubRates{rates: eurRates()}
	a := NewAdjuster(stub, time.Minute)

	sum, err := a.Summarize(context.Background(), NewRateCache(), types.Money{Amount: 100, Currency: "eur"}, "EUR")
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if sum.Rate != 1 {
		t.Errorf("Rate = %v, want 1", sum.Rate)
	}
	if sum.HomeTotal.Amount != 100 {
		t.Errorf("HomeTotal = %v", sum.HomeTotal.Amount)
	}
	if stub.calls != 0 {
		t.Errorf("provider calls = %d, want 0", stub.calls)
	}
}

func TestSummarize_CacheWithinTTL(t *testing.T) {
	stub := &stubRates{rates: eurRates()}
	a := NewAdjuster(stub, time.Minute)
	cache := NewRateCache()
	trip := types.Money{Amount: 100, Currency: "EUR"}

	for i := 0; i < 3; i++ {
		if _, err := a.Summarize(context.Background(), cache, trip, "USD"); err != nil {
			t.Fatalf("Summarize() error = %v", err)
		}
	}
	if stub.calls != 1 {
		t.Errorf("provider calls = %d, want 1", stub.calls)
	}
}

func TestSummarize_ExpiredCacheRefetches(t *testing.T) {
	stub := &stubRates{rates: eurRates()}
	a := NewAdjuster(stub, time.Minute)

	cache := NewRateCache()
	cache.entries["EUR"] = cachedRates{
		rates:    exchange.Rates{Base: "EUR", Quotes: eurRates().Quotes, FetchedAt: time.Now()},
		cachedAt: time.Now().Add(-time.Hour),
	}

	if _, err := a.Summarize(context.Background(), cache, types.Money{Amount: 100, Currency: "EUR"}, "USD"); err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if stub.calls != 1 {
		t.Errorf("provider calls = %d, want 1 (stale entry must be refetched)", stub.calls)
	}
}

func TestSummarize_CacheIgnoresProviderTimestamp(t *testing.T) {
	// ExchangeRate-API publishes daily, so a fresh fetch still carries a
	// FetchedAt hours in the past. Expiry must go by when we cached it.
	old := eurRates()
	old.FetchedAt = time.Now().Add(-6 * time.Hour)
	stub := &stubRates{rates: old}
	a := NewAdjuster(stub, 15*time.Minute)
	cache := NewRateCache()
	trip := types.Money{Amount: 100, Currency: "EUR"}

	for i := 0; i < 2; i++ {
		sum, err := a.Summarize(context.Background(), cache, trip, "USD")
		if err != nil {
			t.Fatalf("Summarize() error = %v", err)
		}
		if !sum.RateTimestamp.Equal(old.FetchedAt) {
			t.Errorf("RateTimestamp = %v, want the provider's %v", sum.RateTimestamp, old.FetchedAt)
		}
	}
	if stub.calls != 1 {
		t.Errorf("provider calls = %d, want 1", stub.calls)
	}
}

func TestSummarize_UnknownQuote(t *testing.T) {
	a := NewAdjuster(&stubRates{rates: eurRates()}, time.Minute)
	_, err := a.Summarize(context.Background(), NewRateCache(), types.Money{Amount: 100, Currency: "EUR"}, "XXX")
	if !provider.Is(err, provider.KindInvalidRequest) {
		t.Errorf("want invalid request, got %v", err)
	}
}

func TestSummarize_NotConfigured(t *testing.T) {
	a := NewAdjuster(nil, time.Minute)
	_, err := a.Summarize(context.Background(), NewRateCache(), types.Money{Amount: 100, Currency: "EUR"}, "USD")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("want ErrNotConfigured, got %v", err)
	}
}

func TestConvert_Message(t *testing.T) {
	a := NewAdjuster(&stubRates{rates: eurRates()}, time.Minute)
	res, err := a.Convert(context.Background(), 50, "eur", "usd")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.Converted.Amount != 50*1.0876 {
		t.Errorf("Converted = %v", res.Converted.Amount)
	}
	if res.Converted.Currency != "USD" {
		t.Errorf("Currency = %q", res.Converted.Currency)
	}
	if res.Message != "1 EUR is approximately 1.088 USD." {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestConvert_MissingCodes(t *testing.T) {
	a := NewAdjuster(&stubRates{rates: eurRates()}, time.Minute)
	_, err := a.Convert(context.Background(), 50, "", "USD")
	if !provider.Is(err, provider.KindInvalidRequest) {
		t.Errorf("want invalid request, got %v", err)
	}
}

func TestRateNote(t *testing.T) {
	a := NewAdjuster(&stubRates{rates: eurRates()}, time.Minute)
	if note := a.RateNote(context.Background(), NewRateCache(), "EUR", "TWD"); note != "1 EUR is approximately 34.500 TWD." {
		t.Errorf("RateNote = %q", note)
	}
	// Same currency and provider failures produce an empty note.
	if note := a.RateNote(context.Background(), NewRateCache(), "EUR", "EUR"); note != "" {
		t.Errorf("same-currency note = %q", note)
	}
	broken := NewAdjuster(&stubRates{err: provider.E(provider.KindUnavailable, "exchange.latest", nil)}, time.Minute)
	if note := broken.RateNote(context.Background(), NewRateCache(), "EUR", "USD"); note != "" {
		t.Errorf("failed-lookup note = %q", note)
	}
}
