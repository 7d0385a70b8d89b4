package handler

import (
	"worldforge-server/internal/models"

	"github.com/google/uuid"
)

type signUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// authResponse is the payload for signup, login and refresh.
type authResponse struct {
	User         *models.Profile `json:"user,omitempty"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

type createWorldRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
}

type updateWorldRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type createChapterRequest struct {
	WorldID       uuid.UUID `json:"world_id" binding:"required"`
	Title         string    `json:"title" binding:"required,max=200"`
	ChapterNumber int       `json:"chapter_number"`
}

type updateChapterRequest struct {
	Title         *string `json:"title"`
	ChapterNumber *int    `json:"chapter_number"`
}

type createEventRequest struct {
	WorldID       uuid.UUID  `json:"world_id" binding:"required"`
	ChapterID     *uuid.UUID `json:"chapter_id"`
	Title         string     `json:"title" binding:"required,max=200"`
	TimelineOrder int        `json:"timeline_order"`
}

type updateEventRequest struct {
	Title         *string `json:"title"`
	TimelineOrder *int    `json:"timeline_order"`
}

type createSceneRequest struct {
	EventID    uuid.UUID `json:"event_id" binding:"required"`
	Title      string    `json:"title" binding:"required,max=200"`
	SceneOrder int       `json:"scene_order"`
}

type updateSceneRequest struct {
	Title      *string `json:"title"`
	SceneOrder *int    `json:"scene_order"`
}

type createCharacterRequest struct {
	WorldID     uuid.UUID `json:"world_id" binding:"required"`
	Name        string    `json:"name" binding:"required,max=200"`
	Description string    `json:"description"`
}

type updateCharacterRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type createDialogueRequest struct {
	SceneID      uuid.UUID `json:"scene_id" binding:"required"`
	CharacterID  uuid.UUID `json:"character_id" binding:"required"`
	Title        string    `json:"title"`
	Content      string    `json:"content" binding:"required"`
	DialogueType string    `json:"dialogue_type" binding:"omitempty,oneof=dialogue narration"`
	OrderInScene int       `json:"order_in_scene"`
}

type updateDialogueRequest struct {
	Title        *string `json:"title"`
	Content      *string `json:"content"`
	DialogueType *string `json:"dialogue_type" binding:"omitempty,oneof=dialogue narration"`
	OrderInScene *int    `json:"order_in_scene"`
}

// dashboardResponse flattens the dashboard payload: the success flag
// sits next to the worlds and counters instead of wrapping them.
type dashboardResponse struct {
	Success         bool               `json:"success"`
	Worlds          []models.WorldTree `json:"worlds"`
	TotalWorlds     int                `json:"totalWorlds"`
	TotalChapters   int                `json:"totalChapters"`
	TotalCharacters int                `json:"totalCharacters"`
}

// analyticsResponse is the admin analytics payload.
type analyticsResponse struct {
	TotalUsers      int64 `json:"total_users"`
	TotalWorlds     int64 `json:"total_worlds"`
	TotalChapters   int64 `json:"total_chapters"`
	TotalCharacters int64 `json:"total_characters"`
	TotalDialogues  int64 `json:"total_dialogues"`
}
