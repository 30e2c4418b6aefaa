package handler

import (
	"time"

	"github.com/invoicemgr/backend/internal/application/identity"
)

// TokenResponse carries a freshly issued token pair
type TokenResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LoginResponse is returned on successful login
type LoginResponse struct {
	Token TokenResponse         `json:"token"`
	User  identity.UserResponse `json:"user"`
}

// RefreshTokenRequest asks for a new token pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse carries the rotated token pair
type RefreshTokenResponse struct {
	Token TokenResponse `json:"token"`
}

// ChangePasswordRequest changes the current user's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// LogoutResponse is returned on successful logout
type LogoutResponse struct {
	Message string `json:"message"`
}
