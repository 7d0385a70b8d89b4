package mocks

import (
	"context"

	"worldforge-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock AggregateRepository
type AggregateRepository struct {
	mock.Mock
}

func (m *AggregateRepository) CompleteWorlds(ctx context.Context, owner *uuid.UUID, worldID *uuid.UUID) ([]models.WorldTree, error) {
	args := m.Called(ctx, owner, worldID)
	worlds, _ := args.Get(0).([]models.WorldTree)
	return worlds, args.Error(1)
}
