// README: Entry point; loads config, wires providers and module services, starts HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"voyago/internal/ai"
	"voyago/internal/config"
	"voyago/internal/exchange"
	"voyago/internal/flights"
	"voyago/internal/geo"
	httptransport "voyago/internal/http"
	"voyago/internal/logging"
	"voyago/internal/modules/advisor"
	"voyago/internal/modules/airport"
	"voyago/internal/modules/booking"
	"voyago/internal/modules/currency"
	"voyago/internal/modules/flightsearch"
	"voyago/internal/modules/itinerary"
	"voyago/internal/provider"
	"voyago/internal/service"
	"voyago/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	logging.Init(cfg.Env)
	log := logging.L()
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	retry := provider.RetryPolicy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay,
		MaxDelay:    cfg.Retry.MaxDelay,
	}

	// Provider keys are all optional. A missing key disables only the
	// dependent capability; the planner degrades around it.
	var llm ai.LLMProvider
	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.Timeout, retry)
		if err != nil {
			log.Fatal("gemini init", zap.Error(err))
		}
		defer gemini.Close()
		llm = gemini
	} else {
		log.Warn("GEMINI_API_KEY not set; itinerary generation and extraction disabled")
	}

	var searcher flights.Searcher
	if cfg.Flights.SerpAPIKey != "" {
		searcher = flights.NewSerpAPIClient(cfg.Flights.SerpAPIKey, cfg.Flights.Timeout, retry)
	} else {
		log.Warn("SERPAPI_API_KEY not set; flight search will degrade")
	}

	var rates exchange.RateProvider
	if cfg.Currency.ExchangeRateKey != "" {
		rates = exchange.NewClient(cfg.Currency.ExchangeRateKey, cfg.Currency.Timeout, retry)
	} else {
		log.Warn("EXCHANGERATE_API_KEY not set; currency conversion disabled")
	}

	var locator *geo.Locator
	if cfg.Maps.APIKey != "" {
		locator, err = geo.NewLocator(cfg.Maps.APIKey)
		if err != nil {
			log.Fatal("maps init", zap.Error(err))
		}
	} else {
		log.Warn("MAPS_API_KEY not set; travel method fallback uses flight-first heuristic")
	}

	sessions := session.NewManager(cfg.Session.TTL)
	go sessions.RunSweeper(ctx, cfg.Session.SweepInterval)

	advisorSvc := advisor.NewService(llm, locator, log)
	flightSvc := flightsearch.NewService(searcher, log)
	generator := itinerary.NewGenerator(llm, cfg.Itinerary.RepairAttempts, log)
	adjuster := currency.NewAdjuster(rates, cfg.Currency.RateTTL)
	bookingSvc := booking.NewService()

	planner := service.NewPlanner(service.Deps{
		LLM:       llm,
		Advisor:   advisorSvc,
		Airports:  airport.NewResolver(llm),
		Flights:   flightSvc,
		Generator: generator,
		Adjuster:  adjuster,
		Booking:   bookingSvc,
		Sessions:  sessions,
		Log:       log,
	})

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Planner:  planner,
		Flights:  flightSvc,
		Adjuster: adjuster,
		Booking:  bookingSvc,
		Log:      log,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler.Routes()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown", zap.Error(err))
		}
	}()

	log.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server", zap.Error(err))
	}
}
