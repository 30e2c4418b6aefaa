package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	appidentity "github.com/invoicemgr/backend/internal/application/identity"
	"github.com/invoicemgr/backend/internal/domain/identity"
	"github.com/invoicemgr/backend/internal/infrastructure/auth"
	"github.com/invoicemgr/backend/internal/infrastructure/config"
	"github.com/invoicemgr/backend/internal/infrastructure/persistence"
	"github.com/invoicemgr/backend/internal/interfaces/http/dto"
	"github.com/invoicemgr/backend/internal/interfaces/http/middleware"
)

type authTestEnv struct {
	router     *gin.Engine
	jwtService *auth.JWTService
}

func setupAuthTest(t *testing.T) *authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&identity.User{}))

	userRepo := persistence.NewGormUserRepository(db)
	authService := appidentity.NewAuthService(userRepo, nil)
	jwtService := auth.NewJWTService(config.AuthConfig{
		JWTSecret:         "auth-handler-test-secret-0123456789",
		AccessExpiration:  15 * time.Minute,
		RefreshExpiration: 24 * time.Hour,
		Issuer:            "invoice-backend-test",
		MaxRefreshCount:   3,
	})
	blacklist := auth.NewInMemoryTokenBlacklist()

	_, err = authService.Register(context.Background(), appidentity.RegisterRequest{
		Username: "budi",
		Password: "rahasia-123",
		FullName: "Budi Santoso",
		Role:     "admin",
	})
	require.NoError(t, err)

	h := NewAuthHandler(authService, jwtService, blacklist)

	r := gin.New()
	r.POST("/api/v1/auth/login", h.Login)
	r.POST("/api/v1/auth/refresh", h.RefreshToken)

	protected := r.Group("/api/v1", middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
	}))
	protected.POST("/auth/logout", h.Logout)
	protected.GET("/auth/me", h.GetCurrentUser)
	protected.PUT("/auth/password", h.ChangePassword)

	return &authTestEnv{router: r, jwtService: jwtService}
}

func (env *authTestEnv) login(t *testing.T, username, password string) LoginResponse {
	t.Helper()

	body := `{"username":"` + username + `","password":"` + password + `"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool          `json:"success"`
		Data    LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTest(t)

	result := env.login(t, "budi", "rahasia-123")
	assert.NotEmpty(t, result.Token.AccessToken)
	assert.NotEmpty(t, result.Token.RefreshToken)
	assert.Equal(t, "Bearer", result.Token.TokenType)
	assert.Equal(t, "budi", result.User.Username)
	assert.Equal(t, "admin", result.User.Role)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"username":"budi","password":"wrong-password"}`))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
}

func TestAuthHandler_Me(t *testing.T) {
	env := setupAuthTest(t)
	result := env.login(t, "budi", "rahasia-123")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+result.Token.AccessToken)
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Budi Santoso", data["full_name"])
}

func TestAuthHandler_Refresh(t *testing.T) {
	env := setupAuthTest(t)
	result := env.login(t, "budi", "rahasia-123")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh",
		strings.NewReader(`{"refresh_token":"`+result.Token.RefreshToken+`"}`))
	req.Header.Set("Content-Type", "application/json")
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data RefreshTokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token.AccessToken)
	assert.NotEqual(t, result.Token.AccessToken, resp.Data.Token.AccessToken)
}

func TestAuthHandler_LogoutRevokesToken(t *testing.T) {
	env := setupAuthTest(t)
	result := env.login(t, "budi", "rahasia-123")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+result.Token.AccessToken)
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// The revoked token no longer works
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+result.Token.AccessToken)
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
}
