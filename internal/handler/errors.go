package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lobus/superapp-ledger/internal/features"
	"github.com/lobus/superapp-ledger/internal/ledger"
	"github.com/lobus/superapp-ledger/internal/session"
)

// respondError maps domain errors to a status code. Validation errors carry
// their own user-facing message.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *ledger.ValidationError
	message := "Error interno"
	if errors.As(err, &verr) {
		message = verr.Message
	}

	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds), errors.Is(err, features.ErrAlreadyClaimed):
		RespondWithError(c, http.StatusConflict, message)
	case errors.Is(err, ledger.ErrValidation):
		RespondWithError(c, http.StatusBadRequest, message)
	case errors.Is(err, session.ErrInvalidCredentials):
		RespondWithError(c, http.StatusUnauthorized, session.ErrInvalidCredentials.Error())
	case errors.Is(err, ledger.ErrNoActiveSession), errors.Is(err, session.ErrSessionNotFound):
		RespondWithError(c, http.StatusUnauthorized, "Sesión no válida o expirada")
	case errors.Is(err, features.ErrRouteNotFound),
		errors.Is(err, features.ErrUnknownSymbol),
		errors.Is(err, features.ErrBillNotFound),
		errors.Is(err, features.ErrServiceNotFound),
		errors.Is(err, ledger.ErrMessageNotFound):
		RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		RespondWithError(c, http.StatusServiceUnavailable, "La operación sigue en curso")
	default:
		RespondWithError(c, http.StatusInternalServerError, message)
	}
}
