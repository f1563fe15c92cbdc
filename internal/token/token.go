// Package token issues and verifies the signed identity tokens that
// authenticate every request past login.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskforge/todo-service/internal/domain"
)

// Claims is the identity embedded in a token. UserID is the only field the
// service relies on; name and email ride along for clients.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret []byte, ttl time.Duration) *Service {
	return &Service{secret: secret, ttl: ttl}
}

// Issue signs an HS256 token for the user, valid for the configured TTL.
func (s *Service) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Name:  user.Name,
		Email: user.Email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify parses and validates a raw token. Any failure — absent, malformed,
// bad signature, expired — collapses to domain.ErrTokenInvalid.
func (s *Service) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, domain.ErrTokenInvalid
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	if _, err := claims.UserID(); err != nil {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// UserID returns the subject claim as the user's store id.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrTokenInvalid
	}
	return id, nil
}
