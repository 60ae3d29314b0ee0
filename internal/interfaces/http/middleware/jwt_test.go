package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJWTTestRouter(svc *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTAuthMiddleware(svc))
	router.GET("/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  GetJWTUserID(c),
			"store_id": GetJWTStoreID(c),
			"admin":    IsAdmin(c),
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func newTestJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "middleware-test-secret-at-least-32ch",
		AccessTokenExpiration: 10 * time.Minute,
		Issuer:                "marketplace-backend-test",
	})
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc := newTestJWTService(t)
	router := newJWTTestRouter(svc)

	t.Run("accepts valid bearer token", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(auth.GenerateTokenInput{
			StoreID: uuid.New(),
			UserID:  uuid.New(),
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token.Token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNAUTHORIZED")
	})

	t.Run("rejects non-bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set(AuthHeaderKey, "Basic abc123")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects tampered token", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(auth.GenerateTokenInput{
			StoreID: uuid.New(),
			UserID:  uuid.New(),
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set(AuthHeaderKey, BearerPrefix+token.Token+"x")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_INVALID")
	})

	t.Run("skips configured paths", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
