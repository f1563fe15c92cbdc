package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskforge/todo-service/internal/domain"
	"github.com/taskforge/todo-service/internal/metrics"
	"github.com/taskforge/todo-service/internal/repository"
	"github.com/taskforge/todo-service/internal/validate"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type TodoUsecase struct {
	repo repository.TodoRepository
}

func NewTodoUsecase(repo repository.TodoRepository) *TodoUsecase {
	return &TodoUsecase{repo: repo}
}

type CreateTodoInput struct {
	UserID      int64
	Title       string
	Description string
}

// CreateTodo inserts a todo owned by the caller. The owner always comes from
// the verified identity, never from the request body.
func (u *TodoUsecase) CreateTodo(ctx context.Context, input CreateTodoInput) (*domain.Todo, error) {
	if err := validate.RequireFields(
		validate.Field{Name: "title", Value: input.Title},
		validate.Field{Name: "description", Value: input.Description},
	); err != nil {
		return nil, err
	}
	if err := validate.Todo(input.Title, input.Description); err != nil {
		return nil, err
	}

	created, err := u.repo.Create(ctx, &domain.Todo{
		Title:       input.Title,
		Description: input.Description,
		UserID:      input.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	metrics.TodosCreatedTotal.Inc()
	return created, nil
}

type ListTodosInput struct {
	UserID int64
	Page   int
	Limit  int
}

type ListTodosResult struct {
	Todos []*domain.Todo
	Page  int
	Limit int
	Total int64
}

// ListTodos returns one page of the caller's todos plus the caller's total
// count. Page and limit are clamped, never rejected: a list read always
// succeeds against a valid identity.
func (u *TodoUsecase) ListTodos(ctx context.Context, input ListTodosInput) (*ListTodosResult, error) {
	page := input.Page
	if page < 1 {
		page = defaultPage
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	total, err := u.repo.CountByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("count todos: %w", err)
	}

	todos, err := u.repo.List(ctx, repository.ListTodosInput{
		UserID: input.UserID,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return &ListTodosResult{Todos: todos, Page: page, Limit: limit, Total: total}, nil
}

type UpdateTodoInput struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
}

// UpdateTodo rewrites title/description of a todo the caller owns. The write
// is a single conditional statement filtered by id and owner; when it matches
// nothing, one existence probe distinguishes not-found from forbidden.
func (u *TodoUsecase) UpdateTodo(ctx context.Context, input UpdateTodoInput) (*domain.Todo, error) {
	if err := validate.RequireFields(
		validate.Field{Name: "title", Value: input.Title},
		validate.Field{Name: "description", Value: input.Description},
	); err != nil {
		return nil, err
	}
	if err := validate.Todo(input.Title, input.Description); err != nil {
		return nil, err
	}

	updated, err := u.repo.UpdateOwned(ctx, input.ID, input.UserID, input.Title, input.Description)
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			return nil, u.classifyMiss(ctx, input.ID)
		}
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return updated, nil
}

// DeleteTodo removes a todo the caller owns.
func (u *TodoUsecase) DeleteTodo(ctx context.Context, id, userID int64) error {
	err := u.repo.DeleteOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			return u.classifyMiss(ctx, id)
		}
		return fmt.Errorf("delete todo: %w", err)
	}

	metrics.TodosDeletedTotal.Inc()
	return nil
}

// classifyMiss decides why a conditional mutation matched no row: the todo is
// either gone (not found) or owned by someone else (forbidden). Missing is
// checked first, so an absent id reports 404 rather than 403.
func (u *TodoUsecase) classifyMiss(ctx context.Context, id int64) error {
	_, err := u.repo.FindByID(ctx, id)
	switch {
	case errors.Is(err, domain.ErrTodoNotFound):
		return domain.ErrTodoNotFound
	case err != nil:
		return fmt.Errorf("check todo existence: %w", err)
	default:
		return domain.ErrForbidden
	}
}
