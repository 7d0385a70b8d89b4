package service

import (
	"context"
	"testing"
	"time"

	"worldforge-server/internal/clients"
	clientmocks "worldforge-server/internal/clients/mocks"
	"worldforge-server/internal/models"
	repomocks "worldforge-server/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthService(identity *clientmocks.IdentityClient, profiles *repomocks.ProfileRepository, sessions *repomocks.SessionRepository) *authServiceImpl {
	return &authServiceImpl{
		identity: identity,
		profiles: profiles,
		sessions: sessions,
		tokens: TokenConfig{
			Secret:          "unit-test-secret",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 24 * time.Hour,
		},
		logger: zap.NewNop(),
	}
}

func TestResolveIdentity_MissingOrMalformedHeader(t *testing.T) {
	identityClient := new(clientmocks.IdentityClient)
	svc := newTestAuthService(identityClient, new(repomocks.ProfileRepository), new(repomocks.SessionRepository))

	assert.Nil(t, svc.ResolveIdentity(context.Background(), ""), "empty header should resolve to nil")
	assert.Nil(t, svc.ResolveIdentity(context.Background(), "Basic dXNlcjpwYXNz"), "non-Bearer scheme should resolve to nil")
	assert.Nil(t, svc.ResolveIdentity(context.Background(), "Bearer "), "empty token should resolve to nil")

	identityClient.AssertNotCalled(t, "ResolveUser", mock.Anything, mock.Anything)
}

func TestResolveIdentity_LocalSessionToken(t *testing.T) {
	identityClient := new(clientmocks.IdentityClient)
	sessions := new(repomocks.SessionRepository)
	svc := newTestAuthService(identityClient, new(repomocks.ProfileRepository), sessions)

	userID := uuid.New()
	tokens, err := svc.createTokens(userID, "writer@example.com", models.RoleAdmin)
	require.NoError(t, err)

	sessions.On("Exists", mock.Anything, tokens.AccessJTI).Return(true, nil).Once()

	identity := svc.ResolveIdentity(context.Background(), "Bearer "+tokens.AccessToken)
	require.NotNil(t, identity, "a live local session token should resolve")
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "writer@example.com", identity.Email)
	assert.True(t, identity.IsAdmin(), "admin role should map to the admin capability")

	// The provider is never consulted for tokens we issued ourselves.
	identityClient.AssertNotCalled(t, "ResolveUser", mock.Anything, mock.Anything)
	sessions.AssertExpectations(t)
}

func TestResolveIdentity_RevokedLocalTokenFallsBackToProvider(t *testing.T) {
	identityClient := new(clientmocks.IdentityClient)
	sessions := new(repomocks.SessionRepository)
	svc := newTestAuthService(identityClient, new(repomocks.ProfileRepository), sessions)

	tokens, err := svc.createTokens(uuid.New(), "writer@example.com", models.RoleUser)
	require.NoError(t, err)

	sessions.On("Exists", mock.Anything, tokens.AccessJTI).Return(false, nil).Once()
	identityClient.On("ResolveUser", mock.Anything, tokens.AccessToken).Return(nil, models.ErrTokenInvalid).Once()

	identity := svc.ResolveIdentity(context.Background(), "Bearer "+tokens.AccessToken)
	assert.Nil(t, identity, "a revoked token rejected by the provider must not resolve")

	sessions.AssertExpectations(t)
	identityClient.AssertExpectations(t)
}

func TestResolveIdentity_ProviderToken(t *testing.T) {
	identityClient := new(clientmocks.IdentityClient)
	sessions := new(repomocks.SessionRepository)
	svc := newTestAuthService(identityClient, new(repomocks.ProfileRepository), sessions)

	userID := uuid.New()
	identityClient.On("ResolveUser", mock.Anything, "provider-issued-token").
		Return(&clients.ProviderUser{ID: userID, Email: "writer@example.com"}, nil).Once()

	identity := svc.ResolveIdentity(context.Background(), "Bearer provider-issued-token")
	require.NotNil(t, identity)
	assert.Equal(t, userID, identity.UserID)
	assert.False(t, identity.IsAdmin(), "a missing provider role defaults to the standard capability")

	identityClient.AssertExpectations(t)
}

func TestResolveIdentity_ProviderRejection(t *testing.T) {
	identityClient := new(clientmocks.IdentityClient)
	svc := newTestAuthService(identityClient, new(repomocks.ProfileRepository), new(repomocks.SessionRepository))

	identityClient.On("ResolveUser", mock.Anything, "garbage").Return(nil, models.ErrTokenInvalid).Once()

	assert.Nil(t, svc.ResolveIdentity(context.Background(), "Bearer garbage"))
	identityClient.AssertExpectations(t)
}

func TestCreateTokens_PairCarriesAccessJTI(t *testing.T) {
	svc := newTestAuthService(new(clientmocks.IdentityClient), new(repomocks.ProfileRepository), new(repomocks.SessionRepository))

	tokens, err := svc.createTokens(uuid.New(), "writer@example.com", models.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	assert.NotEqual(t, tokens.AccessJTI, tokens.RefreshJTI)

	accessClaims, err := svc.parseSessionToken(tokens.AccessToken, models.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, tokens.AccessJTI, accessClaims.ID)

	refreshClaims, err := svc.parseSessionToken(tokens.RefreshToken, models.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, tokens.RefreshJTI, refreshClaims.ID)
	assert.Equal(t, tokens.AccessJTI, refreshClaims.AccessJTI,
		"refresh claims must carry the paired access JTI for dual revocation")
}

func TestParseSessionToken_TypeMismatch(t *testing.T) {
	svc := newTestAuthService(new(clientmocks.IdentityClient), new(repomocks.ProfileRepository), new(repomocks.SessionRepository))

	tokens, err := svc.createTokens(uuid.New(), "writer@example.com", models.RoleUser)
	require.NoError(t, err)

	_, err = svc.parseSessionToken(tokens.AccessToken, models.TokenTypeRefresh)
	assert.ErrorIs(t, err, models.ErrTokenInvalid, "an access token must not pass as a refresh token")
}

func TestLogin_EstablishesSession(t *testing.T) {
	identityClient := new(clientmocks.IdentityClient)
	profiles := new(repomocks.ProfileRepository)
	sessions := new(repomocks.SessionRepository)
	svc := newTestAuthService(identityClient, profiles, sessions)

	userID := uuid.New()
	identityClient.On("SignIn", mock.Anything, "writer@example.com", "hunter2hunter2").
		Return(&clients.ProviderUser{ID: userID, Email: "writer@example.com", Role: models.RoleUser}, nil).Once()
	profiles.On("Upsert", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
		return p.ID == userID && p.Email == "writer@example.com"
	})).Return(nil).Once()
	sessions.On("Store", mock.Anything, userID, mock.AnythingOfType("*models.SessionTokens")).Return(nil).Once()

	profile, tokens, err := svc.Login(context.Background(), "Writer@Example.com ", "hunter2hunter2")
	require.NoError(t, err)
	require.NotNil(t, profile)
	require.NotNil(t, tokens)
	assert.Equal(t, userID, profile.ID)

	identityClient.AssertExpectations(t)
	profiles.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	identityClient := new(clientmocks.IdentityClient)
	svc := newTestAuthService(identityClient, new(repomocks.ProfileRepository), new(repomocks.SessionRepository))

	identityClient.On("SignIn", mock.Anything, "writer@example.com", "wrong").
		Return(nil, models.ErrInvalidCredentials).Once()

	_, _, err := svc.Login(context.Background(), "writer@example.com", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestLogout_RevokesBothTokens(t *testing.T) {
	sessions := new(repomocks.SessionRepository)
	svc := newTestAuthService(new(clientmocks.IdentityClient), new(repomocks.ProfileRepository), sessions)

	tokens, err := svc.createTokens(uuid.New(), "writer@example.com", models.RoleUser)
	require.NoError(t, err)

	sessions.On("Revoke", mock.Anything, tokens.RefreshJTI, tokens.AccessJTI).Return(int64(2), nil).Once()

	require.NoError(t, svc.Logout(context.Background(), tokens.RefreshToken))
	sessions.AssertExpectations(t)
}

func TestLogout_GarbageTokenRejected(t *testing.T) {
	svc := newTestAuthService(new(clientmocks.IdentityClient), new(repomocks.ProfileRepository), new(repomocks.SessionRepository))

	err := svc.Logout(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, models.ErrTokenInvalid)
}

func TestRefresh_RotatesPair(t *testing.T) {
	sessions := new(repomocks.SessionRepository)
	svc := newTestAuthService(new(clientmocks.IdentityClient), new(repomocks.ProfileRepository), sessions)

	userID := uuid.New()
	old, err := svc.createTokens(userID, "writer@example.com", models.RoleUser)
	require.NoError(t, err)

	sessions.On("Exists", mock.Anything, old.RefreshJTI).Return(true, nil).Once()
	sessions.On("Revoke", mock.Anything, old.RefreshJTI, old.AccessJTI).Return(int64(2), nil).Once()
	sessions.On("Store", mock.Anything, userID, mock.AnythingOfType("*models.SessionTokens")).Return(nil).Once()

	fresh, err := svc.Refresh(context.Background(), old.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, old.AccessJTI, fresh.AccessJTI, "a refresh must mint a new access JTI")
	assert.NotEqual(t, old.RefreshJTI, fresh.RefreshJTI, "a refresh must mint a new refresh JTI")

	sessions.AssertExpectations(t)
}

func TestRefresh_RevokedTokenRejected(t *testing.T) {
	sessions := new(repomocks.SessionRepository)
	svc := newTestAuthService(new(clientmocks.IdentityClient), new(repomocks.ProfileRepository), sessions)

	tokens, err := svc.createTokens(uuid.New(), "writer@example.com", models.RoleUser)
	require.NoError(t, err)

	sessions.On("Exists", mock.Anything, tokens.RefreshJTI).Return(false, nil).Once()

	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, models.ErrTokenRevoked)
	sessions.AssertNotCalled(t, "Store", mock.Anything, mock.Anything, mock.Anything)
}
