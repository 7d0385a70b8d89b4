package mocks

import (
	"context"

	"worldforge-server/internal/models"
	"worldforge-server/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock WorldRepository
type WorldRepository struct {
	mock.Mock
}

func (m *WorldRepository) Create(ctx context.Context, world *models.World) error {
	args := m.Called(ctx, world)
	return args.Error(0)
}

func (m *WorldRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.World, error) {
	args := m.Called(ctx, userID)
	worlds, _ := args.Get(0).([]models.World)
	return worlds, args.Error(1)
}

func (m *WorldRepository) GetByID(ctx context.Context, id uuid.UUID, owner *uuid.UUID) (*models.World, error) {
	args := m.Called(ctx, id, owner)
	world, _ := args.Get(0).(*models.World)
	return world, args.Error(1)
}

func (m *WorldRepository) Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd repository.WorldUpdate) (*models.World, error) {
	args := m.Called(ctx, id, owner, upd)
	world, _ := args.Get(0).(*models.World)
	return world, args.Error(1)
}

func (m *WorldRepository) Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error {
	args := m.Called(ctx, id, owner)
	return args.Error(0)
}

func (m *WorldRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
