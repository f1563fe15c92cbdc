package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/todo-service/internal/domain"
	"github.com/taskforge/todo-service/internal/token"
)

const testSecret = "token-test-secret-at-least-32-chars!!"

var testUser = &domain.User{ID: 42, Name: "Jane Doe", Email: "jane@x.com"}

func TestIssueThenVerify_RoundTripsClaims(t *testing.T) {
	svc := token.NewService([]byte(testSecret), time.Hour)

	signed, err := svc.Issue(testUser)
	require.NoError(t, err)

	claims, err := svc.Verify(signed)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, testUser.ID, id)
	assert.Equal(t, testUser.Name, claims.Name)
	assert.Equal(t, testUser.Email, claims.Email)
}

func TestVerify_EmptyToken(t *testing.T) {
	svc := token.NewService([]byte(testSecret), time.Hour)

	_, err := svc.Verify("")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerify_Malformed(t *testing.T) {
	svc := token.NewService([]byte(testSecret), time.Hour)

	_, err := svc.Verify("not.a.jwt")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := token.NewService([]byte(testSecret), time.Hour)
	verifier := token.NewService([]byte("another-secret-also-32-chars-long!!!"), time.Hour)

	signed, err := issuer.Issue(testUser)
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerify_Expired(t *testing.T) {
	svc := token.NewService([]byte(testSecret), -time.Minute)

	signed, err := svc.Issue(testUser)
	require.NoError(t, err)

	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
