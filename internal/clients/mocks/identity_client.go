package mocks

import (
	"context"

	"worldforge-server/internal/clients"

	"github.com/stretchr/testify/mock"
)

// Mock IdentityClient
type IdentityClient struct {
	mock.Mock
}

func (m *IdentityClient) ResolveUser(ctx context.Context, token string) (*clients.ProviderUser, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*clients.ProviderUser)
	return user, args.Error(1)
}

func (m *IdentityClient) SignUp(ctx context.Context, email, password string) (*clients.ProviderUser, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*clients.ProviderUser)
	return user, args.Error(1)
}

func (m *IdentityClient) SignIn(ctx context.Context, email, password string) (*clients.ProviderUser, error) {
	args := m.Called(ctx, email, password)
	user, _ := args.Get(0).(*clients.ProviderUser)
	return user, args.Error(1)
}
