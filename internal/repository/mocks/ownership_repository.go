package mocks

import (
	"context"

	"worldforge-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock OwnershipRepository
type OwnershipRepository struct {
	mock.Mock
}

func (m *OwnershipRepository) OwnerOf(ctx context.Context, kind models.ResourceKind, id uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, kind, id)
	owner, _ := args.Get(0).(uuid.UUID)
	return owner, args.Error(1)
}
