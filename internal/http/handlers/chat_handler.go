// README: Conversational endpoint handler.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"voyago/internal/service"
	"voyago/internal/types"
)

// Chatter lets tests stub the planner behind the conversational endpoint.
type Chatter interface {
	Chat(ctx context.Context, sessionID types.ID, message string) (service.Reply, error)
}

type ChatHandler struct {
	planner Chatter
}

func NewChatHandler(planner Chatter) *ChatHandler {
	return &ChatHandler{planner: planner}
}

type chatReq struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		writeError(c, http.StatusBadRequest, "missing message")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 90*time.Second)
	defer cancel()

	reply, err := h.planner.Chat(ctx, req.SessionID, req.Message)
	if err != nil {
		writeProviderError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, reply)
}
