package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/taskforge/todo-service/internal/domain"
	"github.com/taskforge/todo-service/internal/email"
	"github.com/taskforge/todo-service/internal/metrics"
	"github.com/taskforge/todo-service/internal/repository"
	"github.com/taskforge/todo-service/internal/validate"
	"golang.org/x/crypto/bcrypt"
)

// tokenIssuer is the slice of token.Service the usecase needs.
type tokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

type UserUsecase struct {
	users      repository.UserRepository
	tokens     tokenIssuer
	email      email.Sender
	bcryptCost int
	logger     *slog.Logger
}

func NewUserUsecase(users repository.UserRepository, tokens tokenIssuer, emailSender email.Sender, bcryptCost int, logger *slog.Logger) *UserUsecase {
	return &UserUsecase{
		users:      users,
		tokens:     tokens,
		email:      emailSender,
		bcryptCost: bcryptCost,
		logger:     logger.With("component", "user_usecase"),
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register validates the input, hashes the password and creates the user,
// returning a signed token for the new identity. The welcome email is
// best-effort: a send failure is logged, never surfaced.
func (u *UserUsecase) Register(ctx context.Context, input RegisterInput) (string, error) {
	if err := validate.RequireFields(
		validate.Field{Name: "name", Value: input.Name},
		validate.Field{Name: "email", Value: input.Email},
		validate.Field{Name: "password", Value: input.Password},
	); err != nil {
		return "", err
	}
	if err := validate.Registration(input.Name, input.Email, input.Password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), u.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, input.Name, input.Email, string(hash))
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return "", domain.ErrEmailTaken
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	signed, err := u.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	if err := u.email.Send(ctx, user.Email, "Welcome to Taskforge",
		fmt.Sprintf("<p>Hi %s, your account is ready.</p>", user.Name)); err != nil {
		u.logger.ErrorContext(ctx, "send welcome email", "user_id", user.ID, "error", err)
	}

	metrics.RegistrationsTotal.Inc()
	return signed, nil
}

type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns a signed token. An unknown email
// and a wrong password both yield ErrInvalidCredentials so the response
// never reveals whether an account exists.
func (u *UserUsecase) Login(ctx context.Context, input LoginInput) (string, error) {
	if err := validate.RequireFields(
		validate.Field{Name: "email", Value: input.Email},
		validate.Field{Name: "password", Value: input.Password},
	); err != nil {
		return "", err
	}

	user, err := u.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	signed, err := u.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginsTotal.Inc()
	return signed, nil
}
