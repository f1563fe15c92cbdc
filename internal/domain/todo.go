package domain

import (
	"errors"
	"time"
)

var (
	ErrTodoNotFound = errors.New("todo not found")
	// ErrForbidden means the todo exists but belongs to another user.
	ErrForbidden = errors.New("forbidden")
)

type Todo struct {
	ID          int64
	Title       string
	Description string
	UserID      int64
	CreatedAt   time.Time
}
