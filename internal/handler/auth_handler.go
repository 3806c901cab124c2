package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lobus/superapp-ledger/internal/models"
	"github.com/lobus/superapp-ledger/internal/session"
)

// SessionService opens, resolves and closes sessions.
type SessionService interface {
	Login(ctx context.Context, handle, password string) (*session.Session, error)
	Logout(ctx context.Context, token string) error
	Lookup(token string) (*session.Session, error)
}

type AuthHandler struct {
	sessions SessionService
}

type LoginRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  models.SessionUser `json:"user"`
}

type MeResponse struct {
	User   models.SessionUser `json:"user"`
	Unread int                `json:"unread"`
}

func NewAuthHandler(sessions SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	// the form rules live in the session manager so both surfaces share messages
	sess, err := h.sessions.Login(c.Request.Context(), req.Handle, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, LoginResponse{Token: sess.ID, User: sess.Ledger.Snapshot()})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess := CurrentSession(c)
	if err := h.sessions.Logout(c.Request.Context(), sess.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Me(c *gin.Context) {
	sess := CurrentSession(c)
	c.JSON(http.StatusOK, MeResponse{User: sess.Ledger.Snapshot(), Unread: sess.Ledger.UnreadCount()})
}

func (h *AuthHandler) Transactions(c *gin.Context) {
	sess := CurrentSession(c)
	c.JSON(http.StatusOK, gin.H{
		"balance":      sess.Ledger.Balance(),
		"transactions": sess.Ledger.Transactions(),
	})
}
