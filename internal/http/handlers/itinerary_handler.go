// README: Synchronous itinerary endpoint handler.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voyago/internal/modules/trip"
	"voyago/internal/service"
	"voyago/internal/types"
)

// PlanGenerator lets tests stub the planner behind the itinerary endpoint.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, req trip.Request) (*service.PlanResult, error)
}

type ItineraryHandler struct {
	planner PlanGenerator
}

func NewItineraryHandler(planner PlanGenerator) *ItineraryHandler {
	return &ItineraryHandler{planner: planner}
}

type itineraryReq struct {
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	StartDate     string   `json:"start_date"`
	DurationDays  int      `json:"duration_days"`
	Travelers     int      `json:"travelers"`
	BudgetAmount  float64  `json:"budget_amount"`
	BudgetCode    string   `json:"budget_currency"`
	HomeCurrency  string   `json:"home_currency"`
	Food          string   `json:"food_preference"`
	Hotel         string   `json:"hotel_preference"`
	CitiesToVisit []string `json:"cities_to_visit"`
	Children      int      `json:"children"`
	ChildrenAges  string   `json:"children_ages"`
	FlightClass   string   `json:"flight_class"`
	CruiseDetails string   `json:"cruise_details"`
	Services      []string `json:"additional_services"`
}

// Generate handles POST /api/itinerary.
func (h *ItineraryHandler) Generate(c *gin.Context) {
	var req itineraryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		writeError(c, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}

	tr := trip.Request{
		Origin:             req.Origin,
		Destination:        req.Destination,
		StartDate:          startDate,
		DurationDays:       req.DurationDays,
		Travelers:          req.Travelers,
		Budget:             types.Money{Amount: req.BudgetAmount, Currency: types.NormalizeCurrency(req.BudgetCode)},
		HomeCurrency:       types.NormalizeCurrency(req.HomeCurrency),
		CitiesToVisit:      req.CitiesToVisit,
		Children:           req.Children,
		ChildrenAges:       req.ChildrenAges,
		FlightClass:        req.FlightClass,
		CruiseDetails:      req.CruiseDetails,
		AdditionalServices: req.Services,
	}
	if req.Food != "" {
		tr.Food = trip.ParseFood(req.Food)
	}
	if req.Hotel != "" {
		tr.Hotel = trip.ParseHotel(req.Hotel)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 120*time.Second)
	defer cancel()

	result, err := h.planner.GeneratePlan(ctx, tr)
	if err != nil {
		writeProviderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, result)
}
