package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/invoicemgr/backend/internal/application/identity"
	"github.com/invoicemgr/backend/internal/infrastructure/auth"
	"github.com/invoicemgr/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
}

// NewAuthHandler creates a new auth handler. The blacklist may be nil,
// in which case logout only succeeds client-side.
func NewAuthHandler(authService *identity.AuthService, jwtService *auth.JWTService, blacklist auth.TokenBlacklist) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtService:  jwtService,
		blacklist:   blacklist,
	}
}

func toTokenResponse(pair *auth.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:           pair.AccessToken,
		RefreshToken:          pair.RefreshToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		TokenType:             pair.TokenType,
	}
}

// Login authenticates a user and issues a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	pair, err := h.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		h.InternalError(c, "Failed to issue tokens")
		return
	}

	h.Success(c, LoginResponse{
		Token: toTokenResponse(pair),
		User:  *user,
	})
}

// RefreshToken exchanges a refresh token for a new token pair
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	// Revoked refresh tokens cannot be rotated
	if h.blacklist != nil {
		claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
		if err != nil {
			h.Unauthorized(c, "Invalid refresh token")
			return
		}
		if claims.ID != "" {
			if blacklisted, err := h.blacklist.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && blacklisted {
				h.Unauthorized(c, "Refresh token has been revoked")
				return
			}
		}
	}

	pair, err := h.jwtService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		h.Unauthorized(c, "Invalid refresh token")
		return
	}

	h.Success(c, RefreshTokenResponse{Token: toTokenResponse(pair)})
}

// Logout revokes the current access token
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if h.blacklist != nil && claims.ID != "" {
		if err := h.blacklist.AddToBlacklist(c.Request.Context(), claims.ID, claims.GetRemainingTTL()); err != nil {
			h.InternalError(c, "Failed to revoke token")
			return
		}
	}

	h.Success(c, LogoutResponse{Message: "Logged out successfully"})
}

// GetCurrentUser returns the authenticated user's profile
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authService.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// ChangePassword changes the current user's password and invalidates
// every token issued before the change
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.HandleError(c, err)
		return
	}

	if h.blacklist != nil {
		ttl := h.jwtService.GetRefreshTokenExpiration()
		if err := h.blacklist.AddUserTokensToBlacklist(c.Request.Context(), userID.String(), ttl); err != nil {
			h.InternalError(c, "Password changed but session invalidation failed")
			return
		}
	}

	h.Success(c, gin.H{"message": "Password changed successfully"})
}

// Register creates a new user account. Admin only.
func (h *AuthHandler) Register(c *gin.Context) {
	var req identity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// ListUsers lists all user accounts. Admin only.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, users)
}
