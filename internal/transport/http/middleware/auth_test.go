package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskforge/todo-service/internal/domain"
	"github.com/taskforge/todo-service/internal/token"
	"github.com/taskforge/todo-service/internal/transport/http/middleware"
)

const testSecret = "middleware-test-secret-32-chars!!!!"

func init() {
	gin.SetMode(gin.TestMode)
}

// newEngine builds a minimal gin engine with the Auth middleware protecting
// GET /protected. The handler echoes the userID from context so we can
// assert it was set.
func newEngine(tokens *token.Service) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.Auth(tokens), func(c *gin.Context) {
		userID, _ := c.Get(middleware.UserIDKey)
		c.String(http.StatusOK, "%v", userID)
	})
	return r
}

func issueToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	signed, err := token.NewService([]byte(testSecret), ttl).Issue(
		&domain.User{ID: 42, Name: "Jane Doe", Email: "jane@x.com"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return signed
}

func serve(t *testing.T, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	newEngine(token.NewService([]byte(testSecret), time.Hour)).ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader_Returns401NoToken(t *testing.T) {
	w := serve(t, "")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No token provided") {
		t.Errorf("body = %q, want No token provided", w.Body.String())
	}
}

func TestAuth_MalformedToken_Returns401Unauthorized(t *testing.T) {
	w := serve(t, "not.a.jwt")

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Unauthorized") {
		t.Errorf("body = %q, want Unauthorized", w.Body.String())
	}
}

func TestAuth_ExpiredToken_Returns401(t *testing.T) {
	w := serve(t, issueToken(t, -time.Hour))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_WrongSigningKey_Returns401(t *testing.T) {
	foreign, err := token.NewService([]byte("different-key-that-is-32-chars!!!!"), time.Hour).Issue(
		&domain.User{ID: 42})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	w := serve(t, foreign)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_VerbatimToken_PassesAndSetsUserID(t *testing.T) {
	w := serve(t, issueToken(t, time.Hour))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != "42" {
		t.Errorf("body = %q, want %q", got, "42")
	}
}

func TestAuth_BearerPrefix_IsTolerated(t *testing.T) {
	w := serve(t, "Bearer "+issueToken(t, time.Hour))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
