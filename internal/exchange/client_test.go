package exchange

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"voyago/internal/provider"
)

func TestLatest_ParsesRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/v6/testkey/latest/EUR") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `{
			"result": "success",
			"base_code": "EUR",
			"time_last_update_unix": 1756377600,
			"conversion_rates": {"EUR": 1, "USD": 1.0876, "TWD": 34.5}
		}`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("testkey", srv.URL, time.Second, provider.RetryPolicy{MaxAttempts: 1})
	rates, err := c.Latest(context.Background(), "eur")
	if err != nil {
		t.Fatalf("Latest() error = %v", err)
	}
	if rates.Base != "EUR" {
		t.Errorf("Base = %q, want EUR", rates.Base)
	}
	if v, ok := rates.Rate("twd"); !ok || v != 34.5 {
		t.Errorf("Rate(twd) = %v, %v", v, ok)
	}
	if rates.FetchedAt.Unix() != 1756377600 {
		t.Errorf("FetchedAt = %v", rates.FetchedAt)
	}
	if _, ok := rates.Rate("XXX"); ok {
		t.Error("unknown quote should not resolve")
	}
}

func TestLatest_ErrorTypeMapping(t *testing.T) {
	tests := []struct {
		errorType string
		want      provider.Kind
	}{
		{"unsupported-code", provider.KindInvalidRequest},
		{"malformed-request", provider.KindInvalidRequest},
		{"invalid-key", provider.KindInvalidRequest},
		{"inactive-account", provider.KindInvalidRequest},
		{"quota-reached", provider.KindRateLimited},
		{"something-new", provider.KindUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.errorType, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `{"result":"error","error-type":%q}`, tt.errorType)
			}))
			defer srv.Close()

			c := NewClientWithBaseURL("k", srv.URL, time.Second, provider.RetryPolicy{MaxAttempts: 1})
			_, err := c.Latest(context.Background(), "USD")
			if !provider.Is(err, tt.want) {
				t.Errorf("want %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLatest_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("k", srv.URL, time.Second, provider.RetryPolicy{MaxAttempts: 1})
	_, err := c.Latest(context.Background(), "USD")
	if !provider.Is(err, provider.KindUnavailable) {
		t.Errorf("want unavailable, got %v", err)
	}
}

func TestLatest_EmptyBaseRejected(t *testing.T) {
	c := NewClient("k", time.Second, provider.RetryPolicy{MaxAttempts: 1})
	_, err := c.Latest(context.Background(), "  ")
	if !provider.Is(err, provider.KindInvalidRequest) {
		t.Errorf("want invalid request, got %v", err)
	}
}

func TestLatest_EmptyRatesIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":"success","base_code":"USD","conversion_rates":{}}`)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("k", srv.URL, time.Second, provider.RetryPolicy{MaxAttempts: 1})
	_, err := c.Latest(context.Background(), "USD")
	if !provider.Is(err, provider.KindMalformedResponse) {
		t.Errorf("want malformed response, got %v", err)
	}
}
