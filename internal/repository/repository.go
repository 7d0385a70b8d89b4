package repository

import (
	"context"

	"worldforge-server/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool used by the repositories, so they
// can run against a pool or a transaction alike.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProfileRepository mirrors identity-provider users into the local store.
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	List(ctx context.Context) ([]models.Profile, error)
	Count(ctx context.Context) (int64, error)
}

// WorldUpdate carries the mutable world fields; nil means "keep".
type WorldUpdate struct {
	Name        *string
	Description *string
}

// WorldRepository manages world rows. Mutations take an optional owner
// scope: non-nil restricts the statement to rows owned by that user,
// nil (admin callers) mutates unscoped.
type WorldRepository interface {
	Create(ctx context.Context, world *models.World) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.World, error)
	GetByID(ctx context.Context, id uuid.UUID, owner *uuid.UUID) (*models.World, error)
	Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd WorldUpdate) (*models.World, error)
	Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// ChapterUpdate carries the mutable chapter fields; nil means "keep".
type ChapterUpdate struct {
	Title         *string
	ChapterNumber *int
}

type ChapterRepository interface {
	Create(ctx context.Context, chapter *models.Chapter) error
	ListByWorld(ctx context.Context, worldID, userID uuid.UUID) ([]models.Chapter, error)
	Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd ChapterUpdate) (*models.Chapter, error)
	Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// EventUpdate carries the mutable event fields; nil means "keep".
type EventUpdate struct {
	Title         *string
	TimelineOrder *int
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	ListByWorld(ctx context.Context, worldID, userID uuid.UUID) ([]models.Event, error)
	Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd EventUpdate) (*models.Event, error)
	Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error
}

// SceneUpdate carries the mutable scene fields; nil means "keep".
type SceneUpdate struct {
	Title      *string
	SceneOrder *int
}

type SceneRepository interface {
	Create(ctx context.Context, scene *models.Scene) error
	ListByEvent(ctx context.Context, eventID, userID uuid.UUID) ([]models.Scene, error)
	Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd SceneUpdate) (*models.Scene, error)
	Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error
}

// CharacterUpdate carries the mutable character fields; nil means "keep".
type CharacterUpdate struct {
	Name        *string
	Description *string
}

type CharacterRepository interface {
	Create(ctx context.Context, character *models.Character) error
	ListByWorld(ctx context.Context, worldID, userID uuid.UUID) ([]models.Character, error)
	Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd CharacterUpdate) (*models.Character, error)
	Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// DialogueUpdate carries the mutable dialogue fields; nil means "keep".
type DialogueUpdate struct {
	Title        *string
	Content      *string
	DialogueType *string
	OrderInScene *int
}

type DialogueRepository interface {
	Create(ctx context.Context, dialogue *models.Dialogue) error
	ListByScene(ctx context.Context, sceneID, userID uuid.UUID) ([]models.Dialogue, error)
	Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd DialogueUpdate) (*models.Dialogue, error)
	Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// OwnershipRepository resolves the owning user of a single resource row.
type OwnershipRepository interface {
	// OwnerOf returns the user_id column of the row of the given kind.
	// Unknown kinds and missing rows return an error; callers treat any
	// error as a denial.
	OwnerOf(ctx context.Context, kind models.ResourceKind, id uuid.UUID) (uuid.UUID, error)
}

// AggregateRepository produces the denormalized world trees used by the
// dashboard and complete-world endpoints.
type AggregateRepository interface {
	// CompleteWorlds fetches worlds with their full descendant trees.
	// A non-nil owner restricts to that user's worlds; a non-nil worldID
	// restricts to a single world. Worlds are ordered created_at DESC.
	CompleteWorlds(ctx context.Context, owner *uuid.UUID, worldID *uuid.UUID) ([]models.WorldTree, error)
}

// SessionRepository stores the JTIs of issued session tokens so logout
// can revoke them before expiry.
type SessionRepository interface {
	Store(ctx context.Context, userID uuid.UUID, tokens *models.SessionTokens) error
	Exists(ctx context.Context, jti string) (bool, error)
	Revoke(ctx context.Context, jtis ...string) (int64, error)
}
