package service

import (
	"context"

	"worldforge-server/internal/models"
)

// AuthService verifies bearer tokens and manages the locally issued
// session token pair. Credential verification itself is delegated to the
// external identity provider.
type AuthService interface {
	// ResolveIdentity turns a raw Authorization header value into an
	// identity. It never returns an error: every failure path, including
	// provider errors, degrades to a nil identity so callers uniformly
	// respond 401.
	ResolveIdentity(ctx context.Context, authorizationHeader string) *models.Identity

	SignUp(ctx context.Context, email, password string) (*models.Profile, *models.SessionTokens, error)
	Login(ctx context.Context, email, password string) (*models.Profile, *models.SessionTokens, error)
	Logout(ctx context.Context, refreshToken string) error
	Refresh(ctx context.Context, refreshToken string) (*models.SessionTokens, error)
}
