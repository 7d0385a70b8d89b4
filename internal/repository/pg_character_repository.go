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

// Compile-time check to ensure pgCharacterRepository implements CharacterRepository
var _ CharacterRepository = (*pgCharacterRepository)(nil)

type pgCharacterRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgCharacterRepository creates a new PostgreSQL-backed CharacterRepository.
func NewPgCharacterRepository(db DBTX, logger *zap.Logger) CharacterRepository {
	return &pgCharacterRepository{
		db:     db,
		logger: logger.Named("PgCharacterRepo"),
	}
}

func (r *pgCharacterRepository) Create(ctx context.Context, character *models.Character) error {
	query := `
		INSERT INTO characters (world_id, user_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, world_id, user_id, name, description, created_at, updated_at`
	err := pgxscan.Get(ctx, r.db, character, query, character.WorldID, character.UserID, character.Name, character.Description)
	if err != nil {
		r.logger.Error("Failed to create character", zap.String("worldID", character.WorldID.String()), zap.Error(err))
		return fmt.Errorf("failed to create character: %w", err)
	}
	return nil
}

func (r *pgCharacterRepository) ListByWorld(ctx context.Context, worldID, userID uuid.UUID) ([]models.Character, error) {
	query := `
		SELECT id, world_id, user_id, name, description, created_at, updated_at
		FROM characters WHERE world_id = $1 AND user_id = $2 ORDER BY created_at ASC`
	characters := []models.Character{}
	if err := pgxscan.Select(ctx, r.db, &characters, query, worldID, userID); err != nil {
		r.logger.Error("Failed to list characters", zap.String("worldID", worldID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return characters, nil
}

func (r *pgCharacterRepository) Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd CharacterUpdate) (*models.Character, error) {
	query := `
		UPDATE characters
		SET name        = COALESCE($3, name),
		    description = COALESCE($4, description),
		    updated_at  = now()
		WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)
		RETURNING id, world_id, user_id, name, description, created_at, updated_at`
	character := &models.Character{}
	err := pgxscan.Get(ctx, r.db, character, query, id, owner, upd.Name, upd.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to update character", zap.String("characterID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to update character: %w", err)
	}
	return character, nil
}

func (r *pgCharacterRepository) Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM characters WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)`, id, owner)
	if err != nil {
		r.logger.Error("Failed to delete character", zap.String("characterID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgCharacterRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM characters`).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count characters", zap.Error(err))
		return 0, fmt.Errorf("failed to count characters: %w", err)
	}
	return count, nil
}
