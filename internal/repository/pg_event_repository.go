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

// Compile-time check to ensure pgEventRepository implements EventRepository
var _ EventRepository = (*pgEventRepository)(nil)

type pgEventRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgEventRepository creates a new PostgreSQL-backed EventRepository.
func NewPgEventRepository(db DBTX, logger *zap.Logger) EventRepository {
	return &pgEventRepository{
		db:     db,
		logger: logger.Named("PgEventRepo"),
	}
}

func (r *pgEventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (world_id, chapter_id, user_id, title, timeline_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, world_id, chapter_id, user_id, title, timeline_order, created_at, updated_at`
	err := pgxscan.Get(ctx, r.db, event, query, event.WorldID, event.ChapterID, event.UserID, event.Title, event.TimelineOrder)
	if err != nil {
		r.logger.Error("Failed to create event", zap.String("worldID", event.WorldID.String()), zap.Error(err))
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// ListByWorld lists events on a world's timeline scoped by owner.
func (r *pgEventRepository) ListByWorld(ctx context.Context, worldID, userID uuid.UUID) ([]models.Event, error) {
	query := `
		SELECT id, world_id, chapter_id, user_id, title, timeline_order, created_at, updated_at
		FROM events WHERE world_id = $1 AND user_id = $2 ORDER BY timeline_order ASC`
	events := []models.Event{}
	if err := pgxscan.Select(ctx, r.db, &events, query, worldID, userID); err != nil {
		r.logger.Error("Failed to list events", zap.String("worldID", worldID.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (r *pgEventRepository) Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd EventUpdate) (*models.Event, error) {
	query := `
		UPDATE events
		SET title          = COALESCE($3, title),
		    timeline_order = COALESCE($4, timeline_order),
		    updated_at     = now()
		WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)
		RETURNING id, world_id, chapter_id, user_id, title, timeline_order, created_at, updated_at`
	event := &models.Event{}
	err := pgxscan.Get(ctx, r.db, event, query, id, owner, upd.Title, upd.TimelineOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		r.logger.Error("Failed to update event", zap.String("eventID", id.String()), zap.Error(err))
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	return event, nil
}

func (r *pgEventRepository) Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1 AND ($2::uuid IS NULL OR user_id = $2)`, id, owner)
	if err != nil {
		r.logger.Error("Failed to delete event", zap.String("eventID", id.String()), zap.Error(err))
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
