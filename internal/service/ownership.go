package service

import (
	"context"

	"worldforge-server/internal/models"
	"worldforge-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// validResourceKinds is the closed set of kinds the checker will ever
// look up. Anything else is denied without touching the database.
var validResourceKinds = map[models.ResourceKind]struct{}{
	models.ResourceWorld:     {},
	models.ResourceChapter:   {},
	models.ResourceCharacter: {},
	models.ResourceEvent:     {},
	models.ResourceScene:     {},
	models.ResourceDialogue:  {},
}

// OwnershipChecker decides whether an identity may touch a resource.
// The policy is fail-closed: any ambiguous or erroring lookup denies.
type OwnershipChecker interface {
	Owns(ctx context.Context, identity *models.Identity, kind models.ResourceKind, id uuid.UUID) bool
}

// Compile-time check to ensure ownershipChecker implements OwnershipChecker
var _ OwnershipChecker = (*ownershipChecker)(nil)

type ownershipChecker struct {
	repo   repository.OwnershipRepository
	logger *zap.Logger
}

// NewOwnershipChecker creates a new OwnershipChecker.
func NewOwnershipChecker(repo repository.OwnershipRepository, logger *zap.Logger) OwnershipChecker {
	return &ownershipChecker{
		repo:   repo,
		logger: logger.Named("OwnershipChecker"),
	}
}

// Owns performs the single-row ownership check. Admin capability
// short-circuits before the lookup; unknown kinds, lookup errors and
// missing rows all deny.
func (c *ownershipChecker) Owns(ctx context.Context, identity *models.Identity, kind models.ResourceKind, id uuid.UUID) bool {
	if identity == nil {
		return false
	}
	if identity.IsAdmin() {
		return true
	}
	if _, ok := validResourceKinds[kind]; !ok {
		c.logger.Warn("Ownership check for unknown resource kind", zap.String("kind", string(kind)))
		return false
	}

	owner, err := c.repo.OwnerOf(ctx, kind, id)
	if err != nil {
		// Covers both "row does not exist" and lookup failures.
		c.logger.Debug("Ownership lookup denied",
			zap.String("kind", string(kind)), zap.String("id", id.String()), zap.Error(err))
		return false
	}
	return owner == identity.UserID
}
