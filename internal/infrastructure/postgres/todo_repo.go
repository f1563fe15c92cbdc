package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskforge/todo-service/internal/domain"
	"github.com/taskforge/todo-service/internal/repository"
)

type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	query := `
		INSERT INTO todos (title, description, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, title, description, user_id, created_at`

	row := r.pool.QueryRow(ctx, query, todo.Title, todo.Description, todo.UserID)
	created, err := scanTodo(row)
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return created, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id int64) (*domain.Todo, error) {
	query := `SELECT id, title, description, user_id, created_at FROM todos WHERE id = $1`

	return scanTodo(r.pool.QueryRow(ctx, query, id))
}

func (r *TodoRepository) List(ctx context.Context, input repository.ListTodosInput) ([]*domain.Todo, error) {
	// ORDER BY id gives stable insertion order across pages.
	query := `
		SELECT id, title, description, user_id, created_at
		FROM todos
		WHERE user_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, input.UserID, input.Limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []*domain.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM todos WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return total, nil
}

// UpdateOwned mutates title/description only when both id and owner match,
// so the ownership check and the write are one atomic statement.
// Returns domain.ErrTodoNotFound when no row matched; the caller decides
// whether that means missing or foreign-owned.
func (r *TodoRepository) UpdateOwned(ctx context.Context, id, userID int64, title, description string) (*domain.Todo, error) {
	query := `
		UPDATE todos
		SET    title = $3, description = $4
		WHERE  id = $1 AND user_id = $2
		RETURNING id, title, description, user_id, created_at`

	return scanTodo(r.pool.QueryRow(ctx, query, id, userID, title, description))
}

// DeleteOwned removes the row only when both id and owner match.
func (r *TodoRepository) DeleteOwned(ctx context.Context, id, userID int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) DigestCounts(ctx context.Context) (map[int64]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, COUNT(*) FROM todos GROUP BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("digest counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int64)
	for rows.Next() {
		var userID, n int64
		if err := rows.Scan(&userID, &n); err != nil {
			return nil, fmt.Errorf("scan digest count: %w", err)
		}
		counts[userID] = n
	}
	return counts, rows.Err()
}

func scanTodo(row pgx.Row) (*domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.UserID, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	return &t, nil
}
