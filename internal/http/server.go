// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"voyago/internal/http/handlers"
	"voyago/internal/http/middleware"
	"voyago/internal/modules/booking"
	"voyago/internal/modules/currency"
	"voyago/internal/modules/flightsearch"
	"voyago/internal/service"
)

type ServerDeps struct {
	Planner  *service.Planner
	Flights  *flightsearch.Service
	Adjuster *currency.Adjuster
	Booking  *booking.Service
	Log      *zap.Logger
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	return &Server{deps: deps}
}

// Routes builds the gin engine with middleware and all endpoints.
func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(s.deps.Log))
	r.Use(middleware.Logging(s.deps.Log))
	r.Use(middleware.RateLimit())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	chatHandler := handlers.NewChatHandler(s.deps.Planner)
	r.POST("/api/chat", chatHandler.Chat)

	itineraryHandler := handlers.NewItineraryHandler(s.deps.Planner)
	r.POST("/api/itinerary", itineraryHandler.Generate)

	flightHandler := handlers.NewFlightHandler(s.deps.Flights)
	r.POST("/api/flights/search", flightHandler.Search)

	currencyHandler := handlers.NewCurrencyHandler(s.deps.Adjuster)
	r.POST("/api/currency/convert", currencyHandler.Convert)

	bookingHandler := handlers.NewBookingHandler(s.deps.Booking)
	r.POST("/api/bookings/confirm", bookingHandler.Confirm)

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	return r
}
