package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"voyago/internal/ai"
	"voyago/internal/modules/advisor"
	"voyago/internal/modules/airport"
	"voyago/internal/modules/booking"
	"voyago/internal/modules/currency"
	"voyago/internal/modules/flightsearch"
	"voyago/internal/modules/itinerary"
	"voyago/internal/provider"
	"voyago/internal/service"
	"voyago/internal/session"
	"voyago/internal/types"
)

// Interactive console chat against the planner. Flight search and currency
// conversion run without providers here, so those steps degrade gracefully.
func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	llm, err := ai.NewGeminiProvider(ctx, apiKey, 30*time.Second, provider.DefaultRetry)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer llm.Close()

	logger := zap.NewNop()
	planner := service.NewPlanner(service.Deps{
		LLM:       llm,
		Advisor:   advisor.NewService(llm, nil, logger),
		Airports:  airport.NewResolver(llm),
		Flights:   flightsearch.NewService(nil, logger),
		Generator: itinerary.NewGenerator(llm, 1, logger),
		Adjuster:  currency.NewAdjuster(nil, 15*time.Minute),
		Booking:   booking.NewService(),
		Sessions:  session.NewManager(time.Hour),
		Log:       logger,
	})

	sessionID := types.NewID()
	fmt.Println("Trip planner demo. Describe the trip you want; type 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := scanner.Text()
		if message == "quit" || message == "exit" {
			break
		}
		if message == "" {
			continue
		}

		reply, err := planner.Chat(ctx, sessionID, message)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Printf("[%s] %s\n", reply.Stage, reply.Message)
	}
}
