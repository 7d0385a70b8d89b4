package mocks

import (
	"context"

	"worldforge-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock SessionRepository
type SessionRepository struct {
	mock.Mock
}

func (m *SessionRepository) Store(ctx context.Context, userID uuid.UUID, tokens *models.SessionTokens) error {
	args := m.Called(ctx, userID, tokens)
	return args.Error(0)
}

func (m *SessionRepository) Exists(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *SessionRepository) Revoke(ctx context.Context, jtis ...string) (int64, error) {
	callArgs := make([]interface{}, 0, len(jtis)+1)
	callArgs = append(callArgs, ctx)
	for _, jti := range jtis {
		callArgs = append(callArgs, jti)
	}
	args := m.Called(callArgs...)
	return args.Get(0).(int64), args.Error(1)
}
