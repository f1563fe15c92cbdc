package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/taskforge/todo-service/internal/domain"
	"github.com/taskforge/todo-service/internal/transport/http/middleware"
	"github.com/taskforge/todo-service/internal/usecase"
)

type todoUsecaser interface {
	CreateTodo(ctx context.Context, input usecase.CreateTodoInput) (*domain.Todo, error)
	ListTodos(ctx context.Context, input usecase.ListTodosInput) (*usecase.ListTodosResult, error)
	UpdateTodo(ctx context.Context, input usecase.UpdateTodoInput) (*domain.Todo, error)
	DeleteTodo(ctx context.Context, id, userID int64) error
}

type TodoHandler struct {
	uc     todoUsecaser
	logger *slog.Logger
}

func NewTodoHandler(uc todoUsecaser, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{uc: uc, logger: logger.With("component", "todo_handler")}
}

type todoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type todoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func toTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{ID: t.ID, Title: t.Title, Description: t.Description}
}

// POST /api/todos
func (h *TodoHandler) Create(ctx *gin.Context) {
	var req todoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.uc.CreateTodo(ctx.Request.Context(), usecase.CreateTodoInput{
		UserID:      ctx.GetInt64(middleware.UserIDKey),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeError(ctx, h.logger, "create todo", err)
		return
	}

	ctx.JSON(http.StatusOK, toTodoResponse(todo))
}

// GET /api/todos?page&limit
func (h *TodoHandler) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.Query("page"))
	limit, _ := strconv.Atoi(ctx.Query("limit"))

	result, err := h.uc.ListTodos(ctx.Request.Context(), usecase.ListTodosInput{
		UserID: ctx.GetInt64(middleware.UserIDKey),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		writeError(ctx, h.logger, "list todos", err)
		return
	}

	items := make([]todoResponse, len(result.Todos))
	for i, t := range result.Todos {
		items[i] = toTodoResponse(t)
	}
	ctx.JSON(http.StatusOK, gin.H{
		"data":  items,
		"page":  result.Page,
		"limit": result.Limit,
		"total": result.Total,
	})
}

// PUT /api/todos/:id
func (h *TodoHandler) Update(ctx *gin.Context) {
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
		return
	}

	var req todoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.uc.UpdateTodo(ctx.Request.Context(), usecase.UpdateTodoInput{
		ID:          id,
		UserID:      ctx.GetInt64(middleware.UserIDKey),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeError(ctx, h.logger, "update todo", err)
		return
	}

	ctx.JSON(http.StatusOK, toTodoResponse(todo))
}

// DELETE /api/todos/:id
func (h *TodoHandler) Delete(ctx *gin.Context) {
	id, err := parseID(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": errTodoNotFound})
		return
	}

	if err := h.uc.DeleteTodo(ctx.Request.Context(), id, ctx.GetInt64(middleware.UserIDKey)); err != nil {
		writeError(ctx, h.logger, "delete todo", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// parseID treats a non-numeric path id the same as a nonexistent one.
func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
