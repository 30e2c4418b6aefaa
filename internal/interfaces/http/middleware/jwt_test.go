package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoicemgr/backend/internal/infrastructure/auth"
	"github.com/invoicemgr/backend/internal/infrastructure/config"
)

func newTestJWTService(t *testing.T) *auth.JWTService {
	t.Helper()
	return auth.NewJWTService(config.AuthConfig{
		JWTSecret:         "middleware-test-secret-0123456789",
		AccessExpiration:  15 * time.Minute,
		RefreshExpiration: 24 * time.Hour,
		Issuer:            "invoice-backend-test",
		MaxRefreshCount:   3,
	})
}

func setupJWTTestRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddlewareWithConfig(cfg))
	r.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetJWTUserID(c), "role": GetJWTRole(c)})
	})
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	svc := newTestJWTService(t)
	r := setupJWTTestRouter(DefaultJWTConfig(svc))

	userID := uuid.New()
	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   userID,
		Username: "budi",
		Role:     "admin",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	r := setupJWTTestRouter(DefaultJWTConfig(newTestJWTService(t)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}

func TestJWTAuthMiddleware_MalformedToken(t *testing.T) {
	r := setupJWTTestRouter(DefaultJWTConfig(newTestJWTService(t)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	svc := newTestJWTService(t)
	r := setupJWTTestRouter(DefaultJWTConfig(svc))

	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{UserID: uuid.New(), Username: "budi"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_SkipPaths(t *testing.T) {
	r := setupJWTTestRouter(DefaultJWTConfig(newTestJWTService(t)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_BlacklistedToken(t *testing.T) {
	svc := newTestJWTService(t)
	blacklist := auth.NewInMemoryTokenBlacklist()
	cfg := DefaultJWTConfig(svc)
	cfg.TokenBlacklist = blacklist
	r := setupJWTTestRouter(cfg)

	pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{UserID: uuid.New(), Username: "budi"})
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
}

func TestRequireAdmin(t *testing.T) {
	svc := newTestJWTService(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuthMiddleware(svc))
	r.GET("/admin-only", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	adminPair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: uuid.New(), Username: "budi", Role: "admin",
	})
	require.NoError(t, err)
	viewerPair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
		UserID: uuid.New(), Username: "sari", Role: "viewer",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminPair.AccessToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+viewerPair.AccessToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
