package repository

import (
	"context"
	"errors"
	"fmt"

	"worldforge-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgOwnershipRepository implements OwnershipRepository
var _ OwnershipRepository = (*pgOwnershipRepository)(nil)

type pgOwnershipRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgOwnershipRepository creates a new PostgreSQL-backed OwnershipRepository.
func NewPgOwnershipRepository(db DBTX, logger *zap.Logger) OwnershipRepository {
	return &pgOwnershipRepository{
		db:     db,
		logger: logger.Named("PgOwnershipRepo"),
	}
}

// ownershipTables maps each resource kind to its table. The map is the
// closed enumeration: kinds outside it never reach the database.
var ownershipTables = map[models.ResourceKind]string{
	models.ResourceWorld:     "worlds",
	models.ResourceChapter:   "chapters",
	models.ResourceCharacter: "characters",
	models.ResourceEvent:     "events",
	models.ResourceScene:     "scenes",
	models.ResourceDialogue:  "dialogues",
}

// OwnerOf performs the single point lookup of a row's user_id column.
func (r *pgOwnershipRepository) OwnerOf(ctx context.Context, kind models.ResourceKind, id uuid.UUID) (uuid.UUID, error) {
	table, ok := ownershipTables[kind]
	if !ok {
		return uuid.Nil, fmt.Errorf("unknown resource kind %q", kind)
	}

	var owner uuid.UUID
	query := fmt.Sprintf(`SELECT user_id FROM %s WHERE id = $1`, table)
	err := r.db.QueryRow(ctx, query, id).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, models.ErrNotFound
		}
		r.logger.Error("Failed to look up resource owner",
			zap.String("kind", string(kind)), zap.String("id", id.String()), zap.Error(err))
		return uuid.Nil, fmt.Errorf("failed to look up owner of %s %s: %w", kind, id, err)
	}
	return owner, nil
}
