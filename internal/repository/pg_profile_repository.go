package repository

import (
	"context"
	"errors"
	"fmt"

	"worldforge-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgProfileRepository implements ProfileRepository
var _ ProfileRepository = (*pgProfileRepository)(nil)

type pgProfileRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgProfileRepository creates a new PostgreSQL-backed ProfileRepository.
func NewPgProfileRepository(db DBTX, logger *zap.Logger) ProfileRepository {
	return &pgProfileRepository{
		db:     db,
		logger: logger.Named("PgProfileRepo"),
	}
}

// Upsert inserts or refreshes the mirror row for a provider user. The
// role column is only refreshed when the provider reports one, so a
// locally granted admin role is not silently downgraded.
func (r *pgProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (id, email, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    role  = CASE WHEN $4 THEN EXCLUDED.role ELSE profiles.role END
		RETURNING id, email, role, created_at`
	roleProvided := profile.Role != ""
	role := profile.Role
	if role == "" {
		role = models.RoleUser
	}
	err := pgxscan.Get(ctx, r.db, profile, query, profile.ID, profile.Email, role, roleProvided)
	if err != nil {
		r.logger.Error("Failed to upsert profile", zap.String("profileID", profile.ID.String()), zap.Error(err))
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile by its id.
func (r *pgProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	query := `SELECT id, email, role, created_at FROM profiles WHERE id = $1`
	profile := &models.Profile{}
	err := pgxscan.Get(ctx, r.db, profile, query, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug("Profile not found", zap.String("id", id.String()))
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get profile from postgres", zap.String("id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// List retrieves all profiles, newest first.
func (r *pgProfileRepository) List(ctx context.Context) ([]models.Profile, error) {
	query := `SELECT id, email, role, created_at FROM profiles ORDER BY created_at DESC`
	profiles := []models.Profile{}
	if err := pgxscan.Select(ctx, r.db, &profiles, query); err != nil {
		r.logger.Error("Failed to list profiles from postgres", zap.Error(err))
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// Count returns the total number of profiles.
func (r *pgProfileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count profiles", zap.Error(err))
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}
