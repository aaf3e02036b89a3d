// README: SerpAPI Google Flights client implementing the Searcher contract.
package flights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"voyago/internal/provider"
	"voyago/internal/types"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// SerpAPIClient talks to SerpAPI's google_flights engine.
type SerpAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	retry      provider.RetryPolicy
}

// NewSerpAPIClient builds a client with its own request timeout.
func NewSerpAPIClient(apiKey string, timeout time.Duration, retry provider.RetryPolicy) *SerpAPIClient {
	return &SerpAPIClient{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: timeout},
		retry:      retry,
	}
}

// NewSerpAPIClientWithBaseURL is used by tests to point at a fake server.
func NewSerpAPIClientWithBaseURL(apiKey, baseURL string, timeout time.Duration, retry provider.RetryPolicy) *SerpAPIClient {
	c := NewSerpAPIClient(apiKey, timeout, retry)
	c.baseURL = baseURL
	return c
}

// serpFlightsResponse mirrors the subset of the google_flights payload we use.
type serpFlightsResponse struct {
	BestFlights  []serpOffer `json:"best_flights"`
	OtherFlights []serpOffer `json:"other_flights"`
	Error        string      `json:"error"`
}

type serpOffer struct {
	Price         float64   `json:"price"`
	TotalDuration int       `json:"total_duration"` // minutes
	Extensions    []string  `json:"extensions"`
	Flights       []serpLeg `json:"flights"`
}

type serpLeg struct {
	Airline          string       `json:"airline"`
	DepartureAirport serpEndpoint `json:"departure_airport"`
	ArrivalAirport   serpEndpoint `json:"arrival_airport"`
}

type serpEndpoint struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	Time string `json:"time"` // "2006-01-02 15:04"
}

// Search performs one google_flights query and normalizes the result.
func (c *SerpAPIClient) Search(ctx context.Context, q Query) ([]Offer, error) {
	if q.OriginIATA == "" || q.DestinationIATA == "" || q.OutboundDate.IsZero() {
		return nil, provider.E(provider.KindInvalidRequest, "serpapi.search",
			errors.New("origin, destination and outbound date are required"))
	}

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", q.OriginIATA)
	params.Set("arrival_id", q.DestinationIATA)
	params.Set("outbound_date", q.OutboundDate.Format("2006-01-02"))
	if q.ReturnDate != nil {
		params.Set("return_date", q.ReturnDate.Format("2006-01-02"))
	} else {
		// One-way searches need the flight type flag.
		params.Set("type", "2")
	}
	if q.Currency != "" {
		params.Set("currency", types.NormalizeCurrency(q.Currency))
	}
	if q.Travelers > 0 {
		params.Set("adults", strconv.Itoa(q.Travelers))
	}
	params.Set("hl", "en")
	params.Set("api_key", c.apiKey)

	var payload serpFlightsResponse
	err := provider.Do(ctx, c.retry, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
		if err != nil {
			return provider.E(provider.KindInvalidRequest, "serpapi.search", err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return provider.E(provider.KindUnavailable, "serpapi.search", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return provider.E(provider.KindRateLimited, "serpapi.search",
				fmt.Errorf("status %d", resp.StatusCode))
		case resp.StatusCode >= 500:
			return provider.E(provider.KindUnavailable, "serpapi.search",
				fmt.Errorf("status %d", resp.StatusCode))
		case resp.StatusCode >= 400:
			return provider.E(provider.KindInvalidRequest, "serpapi.search",
				fmt.Errorf("status %d", resp.StatusCode))
		}

		payload = serpFlightsResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return provider.E(provider.KindMalformedResponse, "serpapi.search", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if payload.Error != "" {
		return nil, provider.E(provider.KindInvalidRequest, "serpapi.search", errors.New(payload.Error))
	}

	currency := types.NormalizeCurrency(q.Currency)
	if currency == "" {
		currency = "USD"
	}

	offers := make([]Offer, 0, len(payload.BestFlights)+len(payload.OtherFlights))
	for _, raw := range append(payload.BestFlights, payload.OtherFlights...) {
		offers = append(offers, normalizeOffer(raw, currency))
	}
	if len(offers) == 0 {
		return nil, nil
	}

	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].Price.Amount != offers[j].Price.Amount {
			return offers[i].Price.Amount < offers[j].Price.Amount
		}
		return offers[i].Duration < offers[j].Duration
	})
	return offers, nil
}

func normalizeOffer(raw serpOffer, currency string) Offer {
	o := Offer{
		Price:    types.Money{Amount: raw.Price, Currency: currency},
		Duration: time.Duration(raw.TotalDuration) * time.Minute,
		Stops:    stopsFromExtensions(raw.Extensions),
	}
	if len(raw.Flights) > 0 {
		first := raw.Flights[0]
		last := raw.Flights[len(raw.Flights)-1]
		o.Carrier = first.Airline
		o.Departure = parseSerpTime(first.DepartureAirport.Time)
		o.Arrival = parseSerpTime(last.ArrivalAirport.Time)
		// Multi-leg itineraries imply at least legs-1 stops even when the
		// extensions are silent about it.
		if o.Stops == 0 && len(raw.Flights) > 1 {
			o.Stops = len(raw.Flights) - 1
		}
	}
	return o
}

// stopsFromExtensions scans extension strings like "1 stop" or "Nonstop".
func stopsFromExtensions(extensions []string) int {
	for _, ext := range extensions {
		lower := strings.ToLower(ext)
		if strings.Contains(lower, "nonstop") {
			return 0
		}
		if strings.Contains(lower, "stop") {
			fields := strings.Fields(lower)
			if len(fields) > 0 {
				if n, err := strconv.Atoi(fields[0]); err == nil {
					return n
				}
			}
		}
	}
	return 0
}

func parseSerpTime(v string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", v)
	if err != nil {
		return time.Time{}
	}
	return t
}
