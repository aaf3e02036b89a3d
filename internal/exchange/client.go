// README: ExchangeRate-API client for live currency rates.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"voyago/internal/provider"
	"voyago/internal/types"
)

const defaultBaseURL = "https://v6.exchangerate-api.com"

// Rates is one snapshot of conversion rates for a base currency.
type Rates struct {
	Base      string
	Quotes    map[string]float64
	FetchedAt time.Time
}

// Rate returns the conversion rate for the quote currency.
func (r Rates) Rate(quote string) (float64, bool) {
	v, ok := r.Quotes[types.NormalizeCurrency(quote)]
	return v, ok
}

// RateProvider is the contract a currency-rate provider must satisfy.
type RateProvider interface {
	Latest(ctx context.Context, base string) (Rates, error)
}

// Client talks to exchangerate-api.com's v6 REST surface.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	retry      provider.RetryPolicy
}

func NewClient(apiKey string, timeout time.Duration, retry provider.RetryPolicy) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
		retry:      retry,
	}
}

// NewClientWithBaseURL is used by tests to point at a fake server.
func NewClientWithBaseURL(apiKey, baseURL string, timeout time.Duration, retry provider.RetryPolicy) *Client {
	c := NewClient(apiKey, timeout, retry)
	c.baseURL = baseURL
	return c
}

type latestResponse struct {
	Result             string             `json:"result"`
	ErrorType          string             `json:"error-type"`
	BaseCode           string             `json:"base_code"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
	ConversionRates    map[string]float64 `json:"conversion_rates"`
}

// Latest fetches the current rate table for base.
func (c *Client) Latest(ctx context.Context, base string) (Rates, error) {
	base = types.NormalizeCurrency(base)
	if base == "" {
		return Rates{}, provider.E(provider.KindInvalidRequest, "exchange.latest",
			errors.New("base currency is required"))
	}

	endpoint := fmt.Sprintf("%s/v6/%s/latest/%s", c.baseURL, c.apiKey, base)

	var payload latestResponse
	err := provider.Do(ctx, c.retry, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return provider.E(provider.KindInvalidRequest, "exchange.latest", err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return provider.E(provider.KindUnavailable, "exchange.latest", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return provider.E(provider.KindRateLimited, "exchange.latest",
				fmt.Errorf("status %d", resp.StatusCode))
		case resp.StatusCode >= 500:
			return provider.E(provider.KindUnavailable, "exchange.latest",
				fmt.Errorf("status %d", resp.StatusCode))
		}

		payload = latestResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return provider.E(provider.KindMalformedResponse, "exchange.latest", err)
		}
		if payload.Result != "success" {
			return classifyAPIError(payload.ErrorType)
		}
		return nil
	})
	if err != nil {
		return Rates{}, err
	}

	if len(payload.ConversionRates) == 0 {
		return Rates{}, provider.E(provider.KindMalformedResponse, "exchange.latest",
			errors.New("empty conversion_rates"))
	}

	fetched := time.Now()
	if payload.TimeLastUpdateUnix > 0 {
		fetched = time.Unix(payload.TimeLastUpdateUnix, 0)
	}
	return Rates{Base: base, Quotes: payload.ConversionRates, FetchedAt: fetched}, nil
}

// classifyAPIError maps exchangerate-api error-type strings to the taxonomy.
func classifyAPIError(errorType string) error {
	err := fmt.Errorf("currency api error: %s", errorType)
	switch errorType {
	case "unsupported-code", "malformed-request", "invalid-key", "inactive-account":
		return provider.E(provider.KindInvalidRequest, "exchange.latest", err)
	case "quota-reached":
		return provider.E(provider.KindRateLimited, "exchange.latest", err)
	default:
		return provider.E(provider.KindUnavailable, "exchange.latest", err)
	}
}
