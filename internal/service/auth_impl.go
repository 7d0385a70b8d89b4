package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"worldforge-server/internal/clients"
	"worldforge-server/internal/models"
	"worldforge-server/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const bearerPrefix = "Bearer "

// Compile-time check to ensure authServiceImpl implements AuthService
var _ AuthService = (*authServiceImpl)(nil)

// TokenConfig holds the signing settings for locally issued session tokens.
type TokenConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type authServiceImpl struct {
	identity clients.IdentityClient
	profiles repository.ProfileRepository
	sessions repository.SessionRepository
	tokens   TokenConfig
	logger   *zap.Logger
}

// NewAuthService creates a new instance of authServiceImpl.
func NewAuthService(
	identity clients.IdentityClient,
	profiles repository.ProfileRepository,
	sessions repository.SessionRepository,
	tokens TokenConfig,
	logger *zap.Logger,
) AuthService {
	return &authServiceImpl{
		identity: identity,
		profiles: profiles,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger.Named("AuthService"),
	}
}

// ResolveIdentity verifies a bearer token. Locally issued session tokens
// are verified in process (plus a revocation check); anything else is
// forwarded to the identity provider. All failures collapse to nil.
func (s *authServiceImpl) ResolveIdentity(ctx context.Context, authorizationHeader string) *models.Identity {
	if authorizationHeader == "" {
		return nil
	}
	if !strings.HasPrefix(authorizationHeader, bearerPrefix) {
		s.logger.Debug("Authorization header does not use the Bearer scheme")
		return nil
	}
	tokenString := strings.TrimPrefix(authorizationHeader, bearerPrefix)
	if tokenString == "" {
		return nil
	}

	if claims, err := s.verifySessionToken(ctx, tokenString, models.TokenTypeAccess); err == nil {
		return &models.Identity{
			UserID:     claims.UserID,
			Email:      claims.Email,
			Capability: models.CapabilityFromRole(claims.Role),
		}
	}

	providerUser, err := s.identity.ResolveUser(ctx, tokenString)
	if err != nil || providerUser == nil {
		// Provider internals are never surfaced to the caller.
		s.logger.Debug("Token rejected by identity provider", zap.Error(err))
		return nil
	}

	role := providerUser.Role
	if role == "" {
		role = models.RoleUser
	}
	return &models.Identity{
		UserID:     providerUser.ID,
		Email:      providerUser.Email,
		Capability: models.CapabilityFromRole(role),
	}
}

// SignUp creates the account with the provider, mirrors the profile row
// and issues a session token pair.
func (s *authServiceImpl) SignUp(ctx context.Context, email, password string) (*models.Profile, *models.SessionTokens, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.logger.Info("Sign-up attempt", zap.String("email", email))

	providerUser, err := s.identity.SignUp(ctx, email, password)
	if err != nil {
		s.logger.Warn("Identity provider rejected sign-up", zap.String("email", email), zap.Error(err))
		return nil, nil, err
	}
	return s.establishSession(ctx, providerUser)
}

// Login verifies credentials with the provider, mirrors the profile row
// and issues a session token pair.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*models.Profile, *models.SessionTokens, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	s.logger.Info("Login attempt", zap.String("email", email))

	providerUser, err := s.identity.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			s.logger.Warn("Login failed: invalid credentials", zap.String("email", email))
			return nil, nil, models.ErrInvalidCredentials
		}
		s.logger.Error("Login failed: identity provider error", zap.String("email", email), zap.Error(err))
		return nil, nil, err
	}
	return s.establishSession(ctx, providerUser)
}

func (s *authServiceImpl) establishSession(ctx context.Context, providerUser *clients.ProviderUser) (*models.Profile, *models.SessionTokens, error) {
	profile := &models.Profile{
		ID:    providerUser.ID,
		Email: providerUser.Email,
		Role:  providerUser.Role,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, nil, fmt.Errorf("failed to mirror profile: %w", err)
	}

	tokens, err := s.createTokens(profile.ID, profile.Email, profile.Role)
	if err != nil {
		s.logger.Error("Failed to create session tokens", zap.String("userID", profile.ID.String()), zap.Error(err))
		return nil, nil, fmt.Errorf("failed to create session tokens: %w", err)
	}
	if err := s.sessions.Store(ctx, profile.ID, tokens); err != nil {
		return nil, nil, fmt.Errorf("failed to store session tokens: %w", err)
	}

	s.logger.Info("Session established", zap.String("userID", profile.ID.String()))
	return profile, tokens, nil
}

// Logout revokes the refresh token and its paired access token. It is
// idempotent: revoking an already-revoked pair is not an error.
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.parseSessionToken(refreshToken, models.TokenTypeRefresh)
	if err != nil {
		s.logger.Debug("Logout with unparseable refresh token", zap.Error(err))
		return models.ErrTokenInvalid
	}

	deleted, err := s.sessions.Revoke(ctx, claims.ID, claims.AccessJTI)
	if err != nil {
		// Tokens may already be expired; do not fail the logout.
		s.logger.Error("Failed to revoke session tokens during logout", zap.Error(err))
	}
	s.logger.Info("User logged out", zap.String("userID", claims.UserID.String()), zap.Int64("revoked", deleted))
	return nil
}

// Refresh rotates the session pair from a live refresh token.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (*models.SessionTokens, error) {
	claims, err := s.verifySessionToken(ctx, refreshToken, models.TokenTypeRefresh)
	if err != nil {
		s.logger.Warn("Refresh with invalid token", zap.Error(err))
		return nil, err
	}

	// Old pair is revoked before the new one is issued so a leaked
	// refresh token cannot be replayed.
	if _, err := s.sessions.Revoke(ctx, claims.ID, claims.AccessJTI); err != nil {
		return nil, fmt.Errorf("failed to revoke previous session tokens: %w", err)
	}

	tokens, err := s.createTokens(claims.UserID, claims.Email, claims.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to create session tokens: %w", err)
	}
	if err := s.sessions.Store(ctx, claims.UserID, tokens); err != nil {
		return nil, fmt.Errorf("failed to store session tokens: %w", err)
	}

	s.logger.Info("Session refreshed", zap.String("userID", claims.UserID.String()))
	return tokens, nil
}

// createTokens issues a signed access/refresh pair. The refresh token
// carries the access JTI so both can be revoked from the refresh token
// alone.
func (s *authServiceImpl) createTokens(userID uuid.UUID, email, role string) (*models.SessionTokens, error) {
	if role == "" {
		role = models.RoleUser
	}
	now := time.Now()
	accessJTI := uuid.NewString()
	refreshJTI := uuid.NewString()
	atExpires := now.Add(s.tokens.AccessTokenTTL)
	rtExpires := now.Add(s.tokens.RefreshTokenTTL)

	accessClaims := models.SessionClaims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: models.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        accessJTI,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(atExpires),
		},
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(s.tokens.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshClaims := models.SessionClaims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: models.TokenTypeRefresh,
		AccessJTI: accessJTI,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        refreshJTI,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(rtExpires),
		},
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(s.tokens.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &models.SessionTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessJTI:    accessJTI,
		RefreshJTI:   refreshJTI,
		AtExpires:    atExpires.Unix(),
		RtExpires:    rtExpires.Unix(),
	}, nil
}

// parseSessionToken validates signature, expiry and token type.
func (s *authServiceImpl) parseSessionToken(tokenString, wantType string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.tokens.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, models.ErrTokenExpired
		}
		return nil, models.ErrTokenInvalid
	}
	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, models.ErrTokenInvalid
	}
	if claims.TokenType != wantType || claims.ID == "" {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

// verifySessionToken additionally checks the revocation store.
func (s *authServiceImpl) verifySessionToken(ctx context.Context, tokenString, wantType string) (*models.SessionClaims, error) {
	claims, err := s.parseSessionToken(tokenString, wantType)
	if err != nil {
		return nil, err
	}
	live, err := s.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if !live {
		return nil, models.ErrTokenRevoked
	}
	return claims, nil
}
