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

// Compile-time check to ensure pgDialogueRepository implements DialogueRepository
var _ DialogueRepository = (*pgDialogueRepository)(nil)

type pgDialogueRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgDialogueRepository creates a new PostgreSQL-backed DialogueRepository.
func NewPgDialogueRepository(db DBTX, logger *zap.Logger) DialogueRepository {
	return &pgDialogueRepository{
		db:     db,
		logger: logger.Named("PgDialogueRepo"),
	}
}

func (r *pgDialogueRepository) Create(ctx context.Context, dialogue *models.Dialogue) error {
	query := `
		INSERT INTO dialogues (scene_id, character_id, user_id, title, content, dialogue_type, order_in_scene)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, scene_id, character_id, user_id, title, content, dialogue_type, order_in_scene, created_at, updated_at`
	err := pgxscan.Get(ctx, r.db, dialogue, query,
		dialogue.SceneID, dialogue.CharacterID, dialogue.UserID,
		dialogue.Title, dialogue.Content, dialogue.DialogueType, dialogue.OrderInScene)
	if err != nil {
		r.logger.Error("Failed to create dialogue", zap.String("sceneID", dialogue.SceneID.String()), zap.Error(err))
		return fmt.Errorf("failed to create dialogue: %w", err)
	}
	return nil
}

func (r *pgDialogueRepository) ListByScene(ctx context.Context, sceneID, userID uuid.UUID) ([]models.Dialogue, error) {
	query := `
		SELECT id, scene_id, character_id, user_id, title, content, dialogue_type, order_in_scene, created_at, updated_at
		FROM dialogues WHERE scene_id = $1 AND user_id = $2 ORDER BY order_in_scene ASC`
	dialogues := []models.Dialogue{}
	if err := pgxscan.Select(ctx, r.db, &dialogues, query, sceneID, userID); err != nil {
		r.logger.Error("Failed to list dialogues", zap.String("sceneID", sceneID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list dialogues: %w", err)
	}
	return dialogues, nil
}

func (r *pgDialogueRepository) Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd DialogueUpdate) (*models.Dialogue, error) {
	query := `
		UPDATE dialogues
		SET title          = COALESCE($3, title),
		    content        = COALESCE($4, content),
		    dialogue_type  = COALESCE($5, dialogue_type),
		    order_in_scene = COALESCE($6, order_in_scene),
		    updated_at     = now()
		WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)
		RETURNING id, scene_id, character_id, user_id, title, content, dialogue_type, order_in_scene, created_at, updated_at`
	dialogue := &models.Dialogue{}
	err := pgxscan.Get(ctx, r.db, dialogue, query, id, owner, upd.Title, upd.Content, upd.DialogueType, upd.OrderInScene)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to update dialogue", zap.String("dialogueID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to update dialogue: %w", err)
	}
	return dialogue, nil
}

func (r *pgDialogueRepository) Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM dialogues WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)`, id, owner)
	if err != nil {
		r.logger.Error("Failed to delete dialogue", zap.String("dialogueID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete dialogue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgDialogueRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM dialogues`).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count dialogues", zap.Error(err))
		return 0, fmt.Errorf("failed to count dialogues: %w", err)
	}
	return count, nil
}
