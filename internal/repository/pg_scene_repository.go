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

// Compile-time check to ensure pgSceneRepository implements SceneRepository
var _ SceneRepository = (*pgSceneRepository)(nil)

type pgSceneRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgSceneRepository creates a new PostgreSQL-backed SceneRepository.
func NewPgSceneRepository(db DBTX, logger *zap.Logger) SceneRepository {
	return &pgSceneRepository{
		db:     db,
		logger: logger.Named("PgSceneRepo"),
	}
}

func (r *pgSceneRepository) Create(ctx context.Context, scene *models.Scene) error {
	query := `
		INSERT INTO scenes (event_id, user_id, title, scene_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id, event_id, user_id, title, scene_order, created_at, updated_at`
	err := pgxscan.Get(ctx, r.db, scene, query, scene.EventID, scene.UserID, scene.Title, scene.SceneOrder)
	if err != nil {
		r.logger.Error("Failed to create scene", zap.String("eventID", scene.EventID.String()), zap.Error(err))
		return fmt.Errorf("failed to create scene: %w", err)
	}
	return nil
}

func (r *pgSceneRepository) ListByEvent(ctx context.Context, eventID, userID uuid.UUID) ([]models.Scene, error) {
	query := `
		SELECT id, event_id, user_id, title, scene_order, created_at, updated_at
		FROM scenes WHERE event_id = $1 AND user_id = $2 ORDER BY scene_order ASC`
	scenes := []models.Scene{}
	if err := pgxscan.Select(ctx, r.db, &scenes, query, eventID, userID); err != nil {
		r.logger.Error("Failed to list scenes", zap.String("eventID", eventID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}
	return scenes, nil
}

func (r *pgSceneRepository) Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd SceneUpdate) (*models.Scene, error) {
	query := `
		UPDATE scenes
		SET title       = COALESCE($3, title),
		    scene_order = COALESCE($4, scene_order),
		    updated_at  = now()
		WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)
		RETURNING id, event_id, user_id, title, scene_order, created_at, updated_at`
	scene := &models.Scene{}
	err := pgxscan.Get(ctx, r.db, scene, query, id, owner, upd.Title, upd.SceneOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to update scene", zap.String("sceneID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to update scene: %w", err)
	}
	return scene, nil
}

func (r *pgSceneRepository) Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM scenes WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)`, id, owner)
	if err != nil {
		r.logger.Error("Failed to delete scene", zap.String("sceneID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete scene: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
