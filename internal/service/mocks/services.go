package mocks

import (
	"context"

	"worldforge-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock AuthService
type AuthService struct {
	mock.Mock
}

func (m *AuthService) ResolveIdentity(ctx context.Context, authorizationHeader string) *models.Identity {
	args := m.Called(ctx, authorizationHeader)
	identity, _ := args.Get(0).(*models.Identity)
	return identity
}

func (m *AuthService) SignUp(ctx context.Context, email, password string) (*models.Profile, *models.SessionTokens, error) {
	args := m.Called(ctx, email, password)
	profile, _ := args.Get(0).(*models.Profile)
	tokens, _ := args.Get(1).(*models.SessionTokens)
	return profile, tokens, args.Error(2)
}

func (m *AuthService) Login(ctx context.Context, email, password string) (*models.Profile, *models.SessionTokens, error) {
	args := m.Called(ctx, email, password)
	profile, _ := args.Get(0).(*models.Profile)
	tokens, _ := args.Get(1).(*models.SessionTokens)
	return profile, tokens, args.Error(2)
}

func (m *AuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.SessionTokens, error) {
	args := m.Called(ctx, refreshToken)
	tokens, _ := args.Get(0).(*models.SessionTokens)
	return tokens, args.Error(1)
}

// Mock OwnershipChecker
type OwnershipChecker struct {
	mock.Mock
}

func (m *OwnershipChecker) Owns(ctx context.Context, identity *models.Identity, kind models.ResourceKind, id uuid.UUID) bool {
	args := m.Called(ctx, identity, kind, id)
	return args.Bool(0)
}

// Mock DashboardService
type DashboardService struct {
	mock.Mock
}

func (m *DashboardService) DashboardData(ctx context.Context, userID uuid.UUID) (*models.DashboardData, error) {
	args := m.Called(ctx, userID)
	data, _ := args.Get(0).(*models.DashboardData)
	return data, args.Error(1)
}

func (m *DashboardService) CompleteWorld(ctx context.Context, identity *models.Identity, worldID uuid.UUID) (*models.WorldTree, error) {
	args := m.Called(ctx, identity, worldID)
	tree, _ := args.Get(0).(*models.WorldTree)
	return tree, args.Error(1)
}
