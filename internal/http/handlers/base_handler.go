// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyago/internal/provider"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeProviderError maps the shared failure taxonomy onto HTTP statuses.
func writeProviderError(c *gin.Context, err error) {
	switch provider.KindOf(err) {
	case provider.KindInvalidRequest:
		writeError(c, http.StatusBadRequest, err.Error())
	case provider.KindRateLimited:
		writeError(c, http.StatusTooManyRequests, "provider rate limit reached, try again shortly")
	case provider.KindMalformedResponse:
		writeError(c, http.StatusBadGateway, "provider returned an unusable response")
	case provider.KindUnavailable:
		writeError(c, http.StatusServiceUnavailable, "provider temporarily unavailable")
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
