package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-api/pkg/jwt"
)

func newAuthRouter(t *testing.T, manager *jwt.Manager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/private", RequireAuth(manager), func(c *gin.Context) {
		authorID, ok := AuthorIDFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"author_id": authorID.String()})
	})

	router.GET("/public", OptionalAuth(manager), func(c *gin.Context) {
		_, ok := AuthorIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})

	return router
}

func TestRequireAuthMissingHeader(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	router := newAuthRouter(t, manager)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_TOKEN")
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	router := newAuthRouter(t, manager)

	// No "Bearer" scheme counts as missing, not invalid
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "some-raw-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_TOKEN")
}

func TestRequireAuthInvalidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	router := newAuthRouter(t, manager)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestRequireAuthExpiredToken(t *testing.T) {
	expired := jwt.NewManager("test-secret", -time.Minute)
	router := newAuthRouter(t, expired)

	token, err := expired.Generate(uuid.New())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestRequireAuthValidToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	router := newAuthRouter(t, manager)

	authorID := uuid.New()
	token, err := manager.Generate(authorID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), authorID.String())
}

func TestOptionalAuthAnonymous(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	router := newAuthRouter(t, manager)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestOptionalAuthWithToken(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	router := newAuthRouter(t, manager)

	token, err := manager.Generate(uuid.New())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
}

func TestOptionalAuthBadTokenStaysAnonymous(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)
	router := newAuthRouter(t, manager)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)

	// A bad token on an optional route is ignored, not rejected
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}
