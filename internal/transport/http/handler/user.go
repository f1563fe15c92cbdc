package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskforge/todo-service/internal/usecase"
)

// userUsecaser is the subset of UserUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type userUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (string, error)
	Login(ctx context.Context, input usecase.LoginInput) (string, error)
}

type UserHandler struct {
	uc     userUsecaser
	logger *slog.Logger
}

func NewUserHandler(uc userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger.With("component", "user_handler")}
}

// Field presence is checked by the validate package, not binding tags, so
// the responses carry the exact "Please provide a ..." messages.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/user/register
func (h *UserHandler) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	signed, err := h.uc.Register(ctx.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(ctx, h.logger, "register user", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User registered successfully",
		"token":   signed,
	})
}

// POST /api/user/login
func (h *UserHandler) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	signed, err := h.uc.Login(ctx.Request.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(ctx, h.logger, "login user", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User logged in successfully",
		"token":   signed,
	})
}
