// README: Config loader with env defaults for HTTP, providers, retries, and sessions.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

type Config struct {
	Env  string
	HTTP struct {
		Addr string
	}
	AI struct {
		GeminiKey string
		Timeout   time.Duration
	}
	Flights struct {
		SerpAPIKey string
		Timeout    time.Duration
	}
	Currency struct {
		ExchangeRateKey string
		Timeout         time.Duration
		RateTTL         time.Duration
	}
	Maps struct {
		APIKey string
	}
	Retry     RetryConfig
	Itinerary struct {
		RepairAttempts int
	}
	Session struct {
		TTL           time.Duration
		SweepInterval time.Duration
	}
}

// Load reads configuration from the environment. A .env file is honored when
// present. The three provider keys are all optional: a missing key disables
// only the dependent component.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	cfg.Env = envOrDefault("VOYAGO_ENV", "development")
	cfg.HTTP.Addr = envOrDefault("VOYAGO_HTTP_ADDR", ":8080")

	cfg.AI.GeminiKey = os.Getenv("GEMINI_API_KEY")
	cfg.AI.Timeout = envOrDefaultDuration("VOYAGO_AI_TIMEOUT", 20*time.Second)

	cfg.Flights.SerpAPIKey = os.Getenv("SERPAPI_API_KEY")
	cfg.Flights.Timeout = envOrDefaultDuration("VOYAGO_FLIGHTS_TIMEOUT", 15*time.Second)

	cfg.Currency.ExchangeRateKey = os.Getenv("EXCHANGERATE_API_KEY")
	cfg.Currency.Timeout = envOrDefaultDuration("VOYAGO_CURRENCY_TIMEOUT", 10*time.Second)
	cfg.Currency.RateTTL = envOrDefaultDuration("VOYAGO_RATE_TTL", 15*time.Minute)

	cfg.Maps.APIKey = os.Getenv("MAPS_API_KEY")

	cfg.Retry.MaxAttempts = envOrDefaultInt("VOYAGO_RETRY_ATTEMPTS", 3)
	cfg.Retry.BaseDelay = envOrDefaultDuration("VOYAGO_RETRY_BASE_DELAY", 300*time.Millisecond)
	cfg.Retry.MaxDelay = envOrDefaultDuration("VOYAGO_RETRY_MAX_DELAY", 5*time.Second)

	cfg.Itinerary.RepairAttempts = envOrDefaultInt("VOYAGO_ITINERARY_REPAIR_ATTEMPTS", 1)

	cfg.Session.TTL = envOrDefaultDuration("VOYAGO_SESSION_TTL", 30*time.Minute)
	cfg.Session.SweepInterval = envOrDefaultDuration("VOYAGO_SESSION_SWEEP", 5*time.Minute)

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
