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

// Compile-time check to ensure pgChapterRepository implements ChapterRepository
var _ ChapterRepository = (*pgChapterRepository)(nil)

type pgChapterRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgChapterRepository creates a new PostgreSQL-backed ChapterRepository.
func NewPgChapterRepository(db DBTX, logger *zap.Logger) ChapterRepository {
	return &pgChapterRepository{
		db:     db,
		logger: logger.Named("PgChapterRepo"),
	}
}

func (r *pgChapterRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	query := `
		INSERT INTO chapters (world_id, user_id, title, chapter_number)
		VALUES ($1, $2, $3, $4)
		RETURNING id, world_id, user_id, title, chapter_number, created_at, updated_at`
	err := pgxscan.Get(ctx, r.db, chapter, query, chapter.WorldID, chapter.UserID, chapter.Title, chapter.ChapterNumber)
	if err != nil {
		r.logger.Error("Failed to create chapter", zap.String("worldID", chapter.WorldID.String()), zap.Error(err))
		return fmt.Errorf("failed to create chapter: %w", err)
	}
	return nil
}

// ListByWorld lists chapters scoped by both the world and its owner.
func (r *pgChapterRepository) ListByWorld(ctx context.Context, worldID, userID uuid.UUID) ([]models.Chapter, error) {
	query := `
		SELECT id, world_id, user_id, title, chapter_number, created_at, updated_at
		FROM chapters WHERE world_id = $1 AND user_id = $2 ORDER BY chapter_number ASC`
	chapters := []models.Chapter{}
	if err := pgxscan.Select(ctx, r.db, &chapters, query, worldID, userID); err != nil {
		r.logger.Error("Failed to list chapters", zap.String("worldID", worldID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	return chapters, nil
}

func (r *pgChapterRepository) Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd ChapterUpdate) (*models.Chapter, error) {
	query := `
		UPDATE chapters
		SET title          = COALESCE($3, title),
		    chapter_number = COALESCE($4, chapter_number),
		    updated_at     = now()
		WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)
		RETURNING id, world_id, user_id, title, chapter_number, created_at, updated_at`
	chapter := &models.Chapter{}
	err := pgxscan.Get(ctx, r.db, chapter, query, id, owner, upd.Title, upd.ChapterNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to update chapter", zap.String("chapterID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to update chapter: %w", err)
	}
	return chapter, nil
}

func (r *pgChapterRepository) Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM chapters WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)`, id, owner)
	if err != nil {
		r.logger.Error("Failed to delete chapter", zap.String("chapterID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete chapter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *pgChapterRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM chapters`).Scan(&count)
	if err != nil {
		r.logger.Error("Failed to count chapters", zap.Error(err))
		return 0, fmt.Errorf("failed to count chapters: %w", err)
	}
	return count, nil
}
