package service

import (
	"context"
	"fmt"

	"worldforge-server/internal/models"
	"worldforge-server/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DashboardService builds the aggregated world trees and their derived
// counters for the dashboard and complete-world endpoints.
type DashboardService interface {
	DashboardData(ctx context.Context, userID uuid.UUID) (*models.DashboardData, error)
	// CompleteWorld returns one world's full tree. Non-owners (unless
	// admin) get ErrNotFound whether the world is foreign or absent.
	CompleteWorld(ctx context.Context, identity *models.Identity, worldID uuid.UUID) (*models.WorldTree, error)
}

// Compile-time check to ensure dashboardService implements DashboardService
var _ DashboardService = (*dashboardService)(nil)

type dashboardService struct {
	repo   repository.AggregateRepository
	logger *zap.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo repository.AggregateRepository, logger *zap.Logger) DashboardService {
	return &dashboardService{
		repo:   repo,
		logger: logger.Named("DashboardService"),
	}
}

// DashboardData fetches the caller's complete trees and computes the
// counters from the already-loaded slices, without further queries.
func (s *dashboardService) DashboardData(ctx context.Context, userID uuid.UUID) (*models.DashboardData, error) {
	worlds, err := s.repo.CompleteWorlds(ctx, &userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard worlds: %w", err)
	}
	if worlds == nil {
		worlds = []models.WorldTree{}
	}

	data := &models.DashboardData{Worlds: worlds, TotalWorlds: len(worlds)}
	for _, w := range worlds {
		data.TotalChapters += len(w.Chapters)
		data.TotalCharacters += len(w.Characters)
	}
	return data, nil
}

// CompleteWorld fetches one world's tree scoped to the caller unless the
// caller is an admin.
func (s *dashboardService) CompleteWorld(ctx context.Context, identity *models.Identity, worldID uuid.UUID) (*models.WorldTree, error) {
	if identity == nil {
		return nil, models.ErrUnauthorized
	}
	var owner *uuid.UUID
	if !identity.IsAdmin() {
		owner = &identity.UserID
	}

	worlds, err := s.repo.CompleteWorlds(ctx, owner, &worldID)
	if err != nil {
		return nil, fmt.Errorf("failed to load world tree: %w", err)
	}
	if len(worlds) == 0 {
		// Absent and foreign worlds are indistinguishable on purpose.
		s.logger.Debug("Complete world lookup yielded nothing",
			zap.String("worldID", worldID.String()), zap.String("userID", identity.UserID.String()))
		return nil, models.ErrNotFound
	}
	return &worlds[0], nil
}
