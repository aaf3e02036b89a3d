// README: Flight search endpoint handler.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voyago/internal/modules/airport"
	"voyago/internal/modules/flightsearch"
)

// FlightSearcher lets tests stub the flight orchestrator.
type FlightSearcher interface {
	Search(ctx context.Context, q flightsearch.Query) (flightsearch.Result, error)
}

type FlightHandler struct {
	flights FlightSearcher
}

func NewFlightHandler(flights FlightSearcher) *FlightHandler {
	return &FlightHandler{flights: flights}
}

type flightSearchReq struct {
	OriginIATA      string `json:"origin_iata"`
	DestinationIATA string `json:"destination_iata"`
	OutboundDate    string `json:"outbound_date"`
	ReturnDate      string `json:"return_date"`
	Travelers       int    `json:"travelers"`
	Currency        string `json:"currency"`
}

// Search handles POST /api/flights/search.
func (h *FlightHandler) Search(c *gin.Context) {
	var req flightSearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	if !airport.ValidIATA(req.OriginIATA) || !airport.ValidIATA(req.DestinationIATA) {
		writeError(c, http.StatusBadRequest, "origin_iata and destination_iata must be 3-letter IATA codes")
		return
	}

	outbound, err := time.Parse("2006-01-02", req.OutboundDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "outbound_date must be YYYY-MM-DD")
		return
	}
	var returnDate *time.Time
	if req.ReturnDate != "" {
		t, err := time.Parse("2006-01-02", req.ReturnDate)
		if err != nil {
			writeError(c, http.StatusBadRequest, "return_date must be YYYY-MM-DD")
			return
		}
		returnDate = &t
	}

	query := flightsearch.Query{
		Origin:       airport.Code{City: req.OriginIATA, IATA: req.OriginIATA},
		Destination:  airport.Code{City: req.DestinationIATA, IATA: req.DestinationIATA},
		OutboundDate: outbound,
		ReturnDate:   returnDate,
		Travelers:    req.Travelers,
		Currency:     req.Currency,
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result, err := h.flights.Search(ctx, query)
	if err != nil {
		if errors.Is(err, flightsearch.ErrUnresolvedRoute) {
			writeError(c, http.StatusBadRequest, "origin_iata and destination_iata must be 3-letter IATA codes")
			return
		}
		writeProviderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, result)
}
