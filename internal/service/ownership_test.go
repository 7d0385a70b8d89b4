package service

import (
	"context"
	"errors"
	"testing"

	"worldforge-server/internal/models"
	repomocks "worldforge-server/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func TestOwns_NilIdentityDenied(t *testing.T) {
	repo := new(repomocks.OwnershipRepository)
	checker := NewOwnershipChecker(repo, zap.NewNop())

	assert.False(t, checker.Owns(context.Background(), nil, models.ResourceWorld, uuid.New()))
	repo.AssertNotCalled(t, "OwnerOf", mock.Anything, mock.Anything, mock.Anything)
}

func TestOwns_AdminBypassesLookup(t *testing.T) {
	repo := new(repomocks.OwnershipRepository)
	checker := NewOwnershipChecker(repo, zap.NewNop())

	admin := &models.Identity{UserID: uuid.New(), Capability: models.CapabilityAdmin}
	assert.True(t, checker.Owns(context.Background(), admin, models.ResourceWorld, uuid.New()))

	// Admin capability is decided before the database is consulted.
	repo.AssertNotCalled(t, "OwnerOf", mock.Anything, mock.Anything, mock.Anything)
}

func TestOwns_UnknownKindDenied(t *testing.T) {
	repo := new(repomocks.OwnershipRepository)
	checker := NewOwnershipChecker(repo, zap.NewNop())

	caller := &models.Identity{UserID: uuid.New(), Capability: models.CapabilityStandard}
	assert.False(t, checker.Owns(context.Background(), caller, models.ResourceKind("timeline"), uuid.New()),
		"kinds outside the closed set must be denied without a lookup")
	repo.AssertNotCalled(t, "OwnerOf", mock.Anything, mock.Anything, mock.Anything)
}

func TestOwns_LookupErrorDenied(t *testing.T) {
	repo := new(repomocks.OwnershipRepository)
	checker := NewOwnershipChecker(repo, zap.NewNop())

	caller := &models.Identity{UserID: uuid.New(), Capability: models.CapabilityStandard}
	resourceID := uuid.New()
	repo.On("OwnerOf", mock.Anything, models.ResourceChapter, resourceID).
		Return(uuid.Nil, errors.New("connection reset")).Once()

	assert.False(t, checker.Owns(context.Background(), caller, models.ResourceChapter, resourceID))
	repo.AssertExpectations(t)
}

func TestOwns_MissingRowDenied(t *testing.T) {
	repo := new(repomocks.OwnershipRepository)
	checker := NewOwnershipChecker(repo, zap.NewNop())

	caller := &models.Identity{UserID: uuid.New(), Capability: models.CapabilityStandard}
	resourceID := uuid.New()
	repo.On("OwnerOf", mock.Anything, models.ResourceScene, resourceID).
		Return(uuid.Nil, models.ErrNotFound).Once()

	assert.False(t, checker.Owns(context.Background(), caller, models.ResourceScene, resourceID))
	repo.AssertExpectations(t)
}

func TestOwns_OwnerMatch(t *testing.T) {
	repo := new(repomocks.OwnershipRepository)
	checker := NewOwnershipChecker(repo, zap.NewNop())

	caller := &models.Identity{UserID: uuid.New(), Capability: models.CapabilityStandard}
	resourceID := uuid.New()

	repo.On("OwnerOf", mock.Anything, models.ResourceDialogue, resourceID).Return(caller.UserID, nil).Once()
	assert.True(t, checker.Owns(context.Background(), caller, models.ResourceDialogue, resourceID))

	repo.On("OwnerOf", mock.Anything, models.ResourceDialogue, resourceID).Return(uuid.New(), nil).Once()
	assert.False(t, checker.Owns(context.Background(), caller, models.ResourceDialogue, resourceID),
		"a foreign owner must deny")

	repo.AssertExpectations(t)
}
