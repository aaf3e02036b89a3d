// README: Simulated booking confirmation endpoint handler.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"voyago/internal/modules/booking"
)

type BookingHandler struct {
	booking *booking.Service
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{booking: svc}
}

type confirmReq struct {
	ItineraryRef string `json:"itinerary_ref"`
}

// Confirm handles POST /api/bookings/confirm.
func (h *BookingHandler) Confirm(c *gin.Context) {
	var req confirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	conf, err := h.booking.Confirm(req.ItineraryRef)
	if err != nil {
		if errors.Is(err, booking.ErrEmptyReference) {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, conf)
}
