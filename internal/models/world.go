package models

import (
	"time"

	"github.com/google/uuid"
)

// World is the root of a user's content tree.
type World struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Chapter belongs to exactly one world.
type Chapter struct {
	ID            uuid.UUID `db:"id" json:"id"`
	WorldID       uuid.UUID `db:"world_id" json:"world_id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	Title         string    `db:"title" json:"title"`
	ChapterNumber int       `db:"chapter_number" json:"chapter_number"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Event sits on a world's timeline and may optionally be pinned to a chapter.
type Event struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	WorldID       uuid.UUID  `db:"world_id" json:"world_id"`
	ChapterID     *uuid.UUID `db:"chapter_id" json:"chapter_id,omitempty"`
	UserID        uuid.UUID  `db:"user_id" json:"user_id"`
	Title         string     `db:"title" json:"title"`
	TimelineOrder int        `db:"timeline_order" json:"timeline_order"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// Scene belongs to an event.
type Scene struct {
	ID         uuid.UUID `db:"id" json:"id"`
	EventID    uuid.UUID `db:"event_id" json:"event_id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	Title      string    `db:"title" json:"title"`
	SceneOrder int       `db:"scene_order" json:"scene_order"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Character belongs to a world.
type Character struct {
	ID          uuid.UUID `db:"id" json:"id"`
	WorldID     uuid.UUID `db:"world_id" json:"world_id"`
	UserID      uuid.UUID `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Dialogue line types.
const (
	DialogueTypeDialogue  = "dialogue"
	DialogueTypeNarration = "narration"
)

// Dialogue is a line spoken (or narrated) by a character within a scene.
type Dialogue struct {
	ID           uuid.UUID `db:"id" json:"id"`
	SceneID      uuid.UUID `db:"scene_id" json:"scene_id"`
	CharacterID  uuid.UUID `db:"character_id" json:"character_id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	Title        string    `db:"title" json:"title"`
	Content      string    `db:"content" json:"content"`
	DialogueType string    `db:"dialogue_type" json:"dialogue_type"`
	OrderInScene int       `db:"order_in_scene" json:"order_in_scene"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SceneTree is a scene with its dialogues eagerly attached.
type SceneTree struct {
	Scene
	Dialogues []Dialogue `json:"dialogues"`
}

// EventTree is an event with its scenes eagerly attached.
type EventTree struct {
	Event
	Scenes []SceneTree `json:"scenes"`
}

// ChapterTree is a chapter with its events eagerly attached.
type ChapterTree struct {
	Chapter
	Events []EventTree `json:"events"`
}

// WorldTree is the fully denormalized tree returned by the aggregation
// endpoints: a world with chapters (events, scenes, dialogues) and
// characters. Child slices are always non-nil so counters downstream
// never have to guard against null arrays.
type WorldTree struct {
	World
	Chapters   []ChapterTree `json:"chapters"`
	Characters []Character   `json:"characters"`
}

// DashboardData is the aggregated payload for the dashboard endpoint.
type DashboardData struct {
	Worlds          []WorldTree `json:"worlds"`
	TotalWorlds     int         `json:"totalWorlds"`
	TotalChapters   int         `json:"totalChapters"`
	TotalCharacters int         `json:"totalCharacters"`
}
