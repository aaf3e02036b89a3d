package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q", cfg.HTTP.Addr)
	}
	if cfg.AI.Timeout != 20*time.Second {
		t.Errorf("AI.Timeout = %v", cfg.AI.Timeout)
	}
	if cfg.Currency.RateTTL != 15*time.Minute {
		t.Errorf("Currency.RateTTL = %v", cfg.Currency.RateTTL)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("Retry.MaxAttempts = %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Itinerary.RepairAttempts != 1 {
		t.Errorf("Itinerary.RepairAttempts = %d", cfg.Itinerary.RepairAttempts)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("Session.TTL = %v", cfg.Session.TTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("VOYAGO_HTTP_ADDR", ":9999")
	t.Setenv("VOYAGO_AI_TIMEOUT", "45s")
	t.Setenv("VOYAGO_RETRY_ATTEMPTS", "5")
	t.Setenv("VOYAGO_ITINERARY_REPAIR_ATTEMPTS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTP.Addr != ":9999" {
		t.Errorf("HTTP.Addr = %q", cfg.HTTP.Addr)
	}
	if cfg.AI.Timeout != 45*time.Second {
		t.Errorf("AI.Timeout = %v", cfg.AI.Timeout)
	}
	if cfg.Retry.MaxAttempts != 5 {
		t.Errorf("Retry.MaxAttempts = %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Itinerary.RepairAttempts != 2 {
		t.Errorf("Itinerary.RepairAttempts = %d", cfg.Itinerary.RepairAttempts)
	}
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("VOYAGO_AI_TIMEOUT", "not-a-duration")
	t.Setenv("VOYAGO_RETRY_ATTEMPTS", "many")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AI.Timeout != 20*time.Second {
		t.Errorf("AI.Timeout = %v, want the default", cfg.AI.Timeout)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("Retry.MaxAttempts = %d, want the default", cfg.Retry.MaxAttempts)
	}
}
