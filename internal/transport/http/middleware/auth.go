package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskforge/todo-service/internal/token"
)

const (
	errNoToken      = "No token provided"
	errUnauthorized = "Unauthorized"

	// UserIDKey is the gin context key holding the authenticated user's id.
	UserIDKey = "userID"
)

type tokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// Auth validates the identity token from the Authorization header and sets
// the caller's user id in the gin context. The header carries the token
// verbatim; an optional "Bearer " prefix is tolerated.
func Auth(tokens tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errNoToken})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")

		claims, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}
