package repository

import (
	"context"

	"github.com/taskforge/todo-service/internal/domain"
)

type ListTodosInput struct {
	UserID int64
	Limit  int
	Offset int
}

// Usecases depend on this interface, not the pgx implementation, so the DB
// can be swapped and tests can inject fakes.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	FindByID(ctx context.Context, id int64) (*domain.Todo, error)
	List(ctx context.Context, input ListTodosInput) ([]*domain.Todo, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)

	// UpdateOwned and DeleteOwned mutate only when both id and owner match,
	// reporting via affected-row count. This makes the ownership check and
	// the mutation a single atomic statement.
	UpdateOwned(ctx context.Context, id, userID int64, title, description string) (*domain.Todo, error)
	DeleteOwned(ctx context.Context, id, userID int64) error

	// DigestCounts returns, per user with at least one todo, the user id and
	// open todo count. Used by the reminder digest.
	DigestCounts(ctx context.Context) (map[int64]int64, error)
}
