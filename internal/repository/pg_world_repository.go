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

// Compile-time check to ensure pgWorldRepository implements WorldRepository
var _ WorldRepository = (*pgWorldRepository)(nil)

type pgWorldRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgWorldRepository creates a new PostgreSQL-backed WorldRepository.
func NewPgWorldRepository(db DBTX, logger *zap.Logger) WorldRepository {
	return &pgWorldRepository{
		db:     db,
		logger: logger.Named("PgWorldRepo"),
	}
}

// Create inserts a new world. The server stamps id and timestamps.
func (r *pgWorldRepository) Create(ctx context.Context, world *models.World) error {
	query := `
		INSERT INTO worlds (user_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, description, created_at, updated_at`
	err := pgxscan.Get(ctx, r.db, world, query, world.UserID, world.Name, world.Description)
	if err != nil {
		r.logger.Error("Failed to create world", zap.String("userID", world.UserID.String()), zap.Error(err))
		return fmt.Errorf("failed to create world: %w", err)
	}
	r.logger.Info("World created", zap.String("worldID", world.ID.String()), zap.String("userID", world.UserID.String()))
	return nil
}

// ListByUser retrieves the user's worlds, newest first.
func (r *pgWorldRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.World, error) {
	query := `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM worlds WHERE user_id = $1 ORDER BY created_at DESC`
	worlds := []models.World{}
	if err := pgxscan.Select(ctx, r.db, &worlds, query, userID); err != nil {
		r.logger.Error("Failed to list worlds", zap.String("userID", userID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list worlds: %w", err)
	}
	return worlds, nil
}

// GetByID retrieves one world, optionally scoped to an owner.
func (r *pgWorldRepository) GetByID(ctx context.Context, id uuid.UUID, owner *uuid.UUID) (*models.World, error) {
	query := `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM worlds WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)`
	world := &models.World{}
	err := pgxscan.Get(ctx, r.db, world, query, id, owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to get world", zap.String("worldID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to get world: %w", err)
	}
	return world, nil
}

// Update mutates a world scoped by id and, unless owner is nil, user_id.
func (r *pgWorldRepository) Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd WorldUpdate) (*models.World, error) {
	query := `
		UPDATE worlds
		SET name        = COALESCE($3, name),
		    description = COALESCE($4, description),
		    updated_at  = now()
		WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)
		RETURNING id, user_id, name, description, created_at, updated_at`
	world := &models.World{}
	err := pgxscan.Get(ctx, r.db, world, query, id, owner, upd.Name, upd.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to update world", zap.String("worldID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to update world: %w", err)
	}
	return world, nil
}

// Delete removes a world scoped by id and, unless owner is nil, user_id.
func (r *pgWorldRepository) Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM worlds WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)`, id, owner)
	if err != nil {
		r.logger.Error("Failed to delete world", zap.String("worldID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete world: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	r.logger.Info("World deleted", zap.String("worldID", id.String()))
	return nil
}

// Count returns the total number of worlds across all users.
func (r *pgWorldRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM worlds`).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count worlds", zap.Error(err))
		return 0, fmt.Errorf("failed to count worlds: %w", err)
	}
	return count, nil
}
