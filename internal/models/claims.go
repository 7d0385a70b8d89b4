package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type values stored in session token claims.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// SessionClaims are the claims carried by locally issued session tokens.
// Refresh tokens additionally record the JTI of their paired access token
// so that logout can revoke both at once.
type SessionClaims struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TokenType string    `json:"token_type"`
	AccessJTI string    `json:"access_jti,omitempty"`
	jwt.RegisteredClaims
}

// SessionTokens holds a freshly issued access/refresh token pair together
// with the identifiers and expiries needed for storage and revocation.
type SessionTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	AccessJTI    string `json:"-"`
	RefreshJTI   string `json:"-"`
	AtExpires    int64  `json:"-"`
	RtExpires    int64  `json:"-"`
}
