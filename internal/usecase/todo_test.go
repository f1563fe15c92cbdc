package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/todo-service/internal/domain"
	"github.com/taskforge/todo-service/internal/repository"
	"github.com/taskforge/todo-service/internal/usecase"
)

type fakeTodoRepo struct {
	create       func(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	findByID     func(ctx context.Context, id int64) (*domain.Todo, error)
	list         func(ctx context.Context, input repository.ListTodosInput) ([]*domain.Todo, error)
	countByUser  func(ctx context.Context, userID int64) (int64, error)
	updateOwned  func(ctx context.Context, id, userID int64, title, description string) (*domain.Todo, error)
	deleteOwned  func(ctx context.Context, id, userID int64) error
	digestCounts func(ctx context.Context) (map[int64]int64, error)
}

func (r *fakeTodoRepo) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	return r.create(ctx, todo)
}

func (r *fakeTodoRepo) FindByID(ctx context.Context, id int64) (*domain.Todo, error) {
	return r.findByID(ctx, id)
}

func (r *fakeTodoRepo) List(ctx context.Context, input repository.ListTodosInput) ([]*domain.Todo, error) {
	return r.list(ctx, input)
}

func (r *fakeTodoRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return r.countByUser(ctx, userID)
}

func (r *fakeTodoRepo) UpdateOwned(ctx context.Context, id, userID int64, title, description string) (*domain.Todo, error) {
	return r.updateOwned(ctx, id, userID, title, description)
}

func (r *fakeTodoRepo) DeleteOwned(ctx context.Context, id, userID int64) error {
	return r.deleteOwned(ctx, id, userID)
}

func (r *fakeTodoRepo) DigestCounts(ctx context.Context) (map[int64]int64, error) {
	return r.digestCounts(ctx)
}

// ---- CreateTodo ----

func TestCreateTodo_OwnerComesFromCaller(t *testing.T) {
	var inserted *domain.Todo
	repo := &fakeTodoRepo{
		create: func(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
			inserted = todo
			created := *todo
			created.ID = 1
			return &created, nil
		},
	}

	created, err := usecase.NewTodoUsecase(repo).CreateTodo(context.Background(), usecase.CreateTodoInput{
		UserID:      42,
		Title:       "Buy milk",
		Description: "2%",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), inserted.UserID)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.Equal(t, "2%", created.Description)
}

func TestCreateTodo_MissingFields(t *testing.T) {
	repo := &fakeTodoRepo{
		create: func(_ context.Context, _ *domain.Todo) (*domain.Todo, error) {
			t.Fatal("store must not be touched on invalid input")
			return nil, nil
		},
	}
	uc := usecase.NewTodoUsecase(repo)

	_, err := uc.CreateTodo(context.Background(), usecase.CreateTodoInput{UserID: 1, Description: "2%"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please provide a title", verr.Message)

	_, err = uc.CreateTodo(context.Background(), usecase.CreateTodoInput{UserID: 1, Title: "Buy milk"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please provide a description", verr.Message)
}

// ---- ListTodos ----

func TestListTodos_DefaultsAndOffset(t *testing.T) {
	var captured repository.ListTodosInput
	repo := &fakeTodoRepo{
		countByUser: func(_ context.Context, _ int64) (int64, error) { return 25, nil },
		list: func(_ context.Context, input repository.ListTodosInput) ([]*domain.Todo, error) {
			captured = input
			return []*domain.Todo{{ID: 1, UserID: 42}}, nil
		},
	}
	uc := usecase.NewTodoUsecase(repo)

	result, err := uc.ListTodos(context.Background(), usecase.ListTodosInput{UserID: 42})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.Limit)
	assert.Equal(t, int64(25), result.Total)
	assert.Equal(t, repository.ListTodosInput{UserID: 42, Limit: 10, Offset: 0}, captured)

	_, err = uc.ListTodos(context.Background(), usecase.ListTodosInput{UserID: 42, Page: 3, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, repository.ListTodosInput{UserID: 42, Limit: 5, Offset: 10}, captured)
}

func TestListTodos_ClampsPageAndLimit(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{"negative page", -1, 10, 1, 10},
		{"zero limit", 1, 0, 1, 10},
		{"negative limit", 1, -5, 1, 10},
		{"oversized limit", 1, 1000, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeTodoRepo{
				countByUser: func(_ context.Context, _ int64) (int64, error) { return 0, nil },
				list: func(_ context.Context, input repository.ListTodosInput) ([]*domain.Todo, error) {
					return nil, nil
				},
			}

			result, err := usecase.NewTodoUsecase(repo).ListTodos(context.Background(),
				usecase.ListTodosInput{UserID: 42, Page: tt.page, Limit: tt.limit})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, result.Page)
			assert.Equal(t, tt.wantLimit, result.Limit)
		})
	}
}

// ---- UpdateTodo ----

func TestUpdateTodo_Owned_Succeeds(t *testing.T) {
	repo := &fakeTodoRepo{
		updateOwned: func(_ context.Context, id, userID int64, title, description string) (*domain.Todo, error) {
			return &domain.Todo{ID: id, UserID: userID, Title: title, Description: description}, nil
		},
	}

	updated, err := usecase.NewTodoUsecase(repo).UpdateTodo(context.Background(), usecase.UpdateTodoInput{
		ID: 1, UserID: 42, Title: "Buy milk", Description: "whole",
	})
	require.NoError(t, err)
	assert.Equal(t, "whole", updated.Description)
	assert.Equal(t, int64(42), updated.UserID)
}

func TestUpdateTodo_ForeignOwner_Forbidden(t *testing.T) {
	repo := &fakeTodoRepo{
		updateOwned: func(_ context.Context, _, _ int64, _, _ string) (*domain.Todo, error) {
			return nil, domain.ErrTodoNotFound
		},
		findByID: func(_ context.Context, id int64) (*domain.Todo, error) {
			// The row exists, it just belongs to someone else.
			return &domain.Todo{ID: id, UserID: 99}, nil
		},
	}

	_, err := usecase.NewTodoUsecase(repo).UpdateTodo(context.Background(), usecase.UpdateTodoInput{
		ID: 1, UserID: 42, Title: "Buy milk", Description: "2%",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateTodo_Missing_NotFound(t *testing.T) {
	repo := &fakeTodoRepo{
		updateOwned: func(_ context.Context, _, _ int64, _, _ string) (*domain.Todo, error) {
			return nil, domain.ErrTodoNotFound
		},
		findByID: func(_ context.Context, _ int64) (*domain.Todo, error) {
			return nil, domain.ErrTodoNotFound
		},
	}

	_, err := usecase.NewTodoUsecase(repo).UpdateTodo(context.Background(), usecase.UpdateTodoInput{
		ID: 1, UserID: 42, Title: "Buy milk", Description: "2%",
	})
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
	assert.NotErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateTodo_InvalidInput_NeverTouchesStore(t *testing.T) {
	repo := &fakeTodoRepo{
		updateOwned: func(_ context.Context, _, _ int64, _, _ string) (*domain.Todo, error) {
			t.Fatal("store must not be touched on invalid input")
			return nil, nil
		},
	}

	_, err := usecase.NewTodoUsecase(repo).UpdateTodo(context.Background(), usecase.UpdateTodoInput{
		ID: 1, UserID: 42, Title: "", Description: "2%",
	})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

// ---- DeleteTodo ----

func TestDeleteTodo_Owned_Succeeds(t *testing.T) {
	repo := &fakeTodoRepo{
		deleteOwned: func(_ context.Context, id, userID int64) error {
			assert.Equal(t, int64(1), id)
			assert.Equal(t, int64(42), userID)
			return nil
		},
	}

	err := usecase.NewTodoUsecase(repo).DeleteTodo(context.Background(), 1, 42)
	assert.NoError(t, err)
}

func TestDeleteTodo_ForeignOwner_Forbidden(t *testing.T) {
	repo := &fakeTodoRepo{
		deleteOwned: func(_ context.Context, _, _ int64) error {
			return domain.ErrTodoNotFound
		},
		findByID: func(_ context.Context, id int64) (*domain.Todo, error) {
			return &domain.Todo{ID: id, UserID: 99}, nil
		},
	}

	err := usecase.NewTodoUsecase(repo).DeleteTodo(context.Background(), 1, 42)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteTodo_AlreadyDeleted_NotFound(t *testing.T) {
	repo := &fakeTodoRepo{
		deleteOwned: func(_ context.Context, _, _ int64) error {
			return domain.ErrTodoNotFound
		},
		findByID: func(_ context.Context, _ int64) (*domain.Todo, error) {
			return nil, domain.ErrTodoNotFound
		},
	}

	err := usecase.NewTodoUsecase(repo).DeleteTodo(context.Background(), 1, 42)
	assert.ErrorIs(t, err, domain.ErrTodoNotFound)
}

func TestDeleteTodo_StoreError_Propagates(t *testing.T) {
	storeErr := errors.New("db down")
	repo := &fakeTodoRepo{
		deleteOwned: func(_ context.Context, _, _ int64) error { return storeErr },
	}

	err := usecase.NewTodoUsecase(repo).DeleteTodo(context.Background(), 1, 42)
	assert.ErrorIs(t, err, storeErr)
}
