// README: Currency conversion endpoint handler.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voyago/internal/modules/currency"
)

// Converter lets tests stub the currency adjuster.
type Converter interface {
	Convert(ctx context.Context, amount float64, from, to string) (currency.ConversionResult, error)
}

type CurrencyHandler struct {
	adjuster Converter
}

func NewCurrencyHandler(adjuster Converter) *CurrencyHandler {
	return &CurrencyHandler{adjuster: adjuster}
}

type convertReq struct {
	Amount float64 `json:"amount"`
	From   string  `json:"from"`
	To     string  `json:"to"`
}

// Convert handles POST /api/currency/convert.
func (h *CurrencyHandler) Convert(c *gin.Context) {
	var req convertReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.From == "" || req.To == "" {
		writeError(c, http.StatusBadRequest, "missing from or to currency code")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	result, err := h.adjuster.Convert(ctx, req.Amount, req.From, req.To)
	if err != nil {
		if errors.Is(err, currency.ErrNotConfigured) {
			writeError(c, http.StatusServiceUnavailable, "currency rates are not configured")
			return
		}
		writeProviderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, result)
}
