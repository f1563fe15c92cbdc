package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge/todo-service/internal/domain"
)

const (
	errInternalServer     = "Internal server error"
	errTodoNotFound       = "Todo not found"
	errForbidden          = "You do not have permission to modify this todo"
	errInvalidCredentials = "Invalid email or password"
	errEmailTaken         = "Email is already registered"
)

// writeError is the single boundary translator from the domain error
// taxonomy to HTTP statuses. Codes come from error kinds, never from
// message text.
func writeError(ctx *gin.Context, logger *slog.Logger, op string, err error) {
	var verr *domain.ValidationError

	switch {
	case errors.As(err, &verr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, domain.ErrEmailTaken):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errEmailTaken})
	case errors.Is(err, domain.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
	case errors.Is(err, domain.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": errForbidden})
	case errors.Is(err, domain.ErrTodoNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
	default:
		logger.ErrorContext(ctx.Request.Context(), op, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
