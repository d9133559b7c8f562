package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-api/internal/shared/response"
	"library-api/pkg/jwt"
)

// ContextAuthorID is the gin context key carrying the resolved identity
const ContextAuthorID = "authorID"

// RequireAuth rejects the request before any handler runs unless a valid,
// unexpired bearer token is present. A missing header and a bad token get
// distinct error codes so clients can tell "log in" from "log in again".
func RequireAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			response.ErrorResponse(c, 401, "MISSING_TOKEN", "missing authorization header")
			c.Abort()
			return
		}

		authorID, err := manager.Validate(token)
		if err != nil {
			response.ErrorResponse(c, 401, "INVALID_TOKEN", "invalid or expired token")
			c.Abort()
			return
		}

		// Identity lives on the per-request context, never on shared state
		c.Set(ContextAuthorID, authorID)
		c.Next()
	}
}

// OptionalAuth resolves the identity when a valid token is present and
// leaves the context anonymous otherwise. Public operations (signup,
// login, isAuthenticated) go through here.
func OptionalAuth(manager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if authorID, err := manager.Validate(token); err == nil {
				c.Set(ContextAuthorID, authorID)
			}
		}
		c.Next()
	}
}

// AuthorIDFromContext extracts the resolved identity set by the middleware
func AuthorIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextAuthorID)
	if !exists {
		return uuid.Nil, false
	}

	authorID, ok := value.(uuid.UUID)
	return authorID, ok
}

// bearerToken extracts the token from "Authorization: Bearer <token>"
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}
