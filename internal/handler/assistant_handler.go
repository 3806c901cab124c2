package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lobus/superapp-ledger/internal/assistant"
)

// Assistant is the per-session conversation with the AI helper.
type Assistant interface {
	History(sessionID, name string) []assistant.Entry
	Ask(ctx context.Context, sessionID, name, userContext, prompt string) (assistant.Entry, error)
}

type AssistantHandler struct {
	assistant Assistant
}

type AskRequest struct {
	Prompt string `json:"prompt" validate:"max=2000"`
}

func NewAssistantHandler(a Assistant) *AssistantHandler {
	return &AssistantHandler{assistant: a}
}

func (h *AssistantHandler) History(c *gin.Context) {
	sess := CurrentSession(c)
	c.JSON(http.StatusOK, gin.H{"messages": h.assistant.History(sess.ID, sess.Name)})
}

// Ask always answers 200 with a reply; model failures come back as a
// fallback text.
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req AskRequest
	if !bind(c, &req) {
		return
	}
	sess := CurrentSession(c)
	userContext := assistant.ContextLine(sess.Name, sess.Rank, sess.Ledger.Balance())

	reply, err := h.assistant.Ask(c.Request.Context(), sess.ID, sess.Name, userContext, req.Prompt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}
