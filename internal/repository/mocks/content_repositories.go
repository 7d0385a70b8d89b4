package mocks

import (
	"context"

	"worldforge-server/internal/models"
	"worldforge-server/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock ChapterRepository
type ChapterRepository struct {
	mock.Mock
}

func (m *ChapterRepository) Create(ctx context.Context, chapter *models.Chapter) error {
	args := m.Called(ctx, chapter)
	return args.Error(0)
}

func (m *ChapterRepository) ListByWorld(ctx context.Context, worldID, userID uuid.UUID) ([]models.Chapter, error) {
	args := m.Called(ctx, worldID, userID)
	chapters, _ := args.Get(0).([]models.Chapter)
	return chapters, args.Error(1)
}

func (m *ChapterRepository) Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd repository.ChapterUpdate) (*models.Chapter, error) {
	args := m.Called(ctx, id, owner, upd)
	chapter, _ := args.Get(0).(*models.Chapter)
	return chapter, args.Error(1)
}

func (m *ChapterRepository) Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error {
	args := m.Called(ctx, id, owner)
	return args.Error(0)
}

func (m *ChapterRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock EventRepository
type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Create(ctx context.Context, event *models.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventRepository) ListByWorld(ctx context.Context, worldID, userID uuid.UUID) ([]models.Event, error) {
	args := m.Called(ctx, worldID, userID)
	events, _ := args.Get(0).([]models.Event)
	return events, args.Error(1)
}

func (m *EventRepository) Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd repository.EventUpdate) (*models.Event, error) {
	args := m.Called(ctx, id, owner, upd)
	event, _ := args.Get(0).(*models.Event)
	return event, args.Error(1)
}

func (m *EventRepository) Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error {
	args := m.Called(ctx, id, owner)
	return args.Error(0)
}

// Mock SceneRepository
type SceneRepository struct {
	mock.Mock
}

func (m *SceneRepository) Create(ctx context.Context, scene *models.Scene) error {
	args := m.Called(ctx, scene)
	return args.Error(0)
}

func (m *SceneRepository) ListByEvent(ctx context.Context, eventID, userID uuid.UUID) ([]models.Scene, error) {
	args := m.Called(ctx, eventID, userID)
	scenes, _ := args.Get(0).([]models.Scene)
	return scenes, args.Error(1)
}

func (m *SceneRepository) Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd repository.SceneUpdate) (*models.Scene, error) {
	args := m.Called(ctx, id, owner, upd)
	scene, _ := args.Get(0).(*models.Scene)
	return scene, args.Error(1)
}

func (m *SceneRepository) Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error {
	args := m.Called(ctx, id, owner)
	return args.Error(0)
}

// Mock CharacterRepository
type CharacterRepository struct {
	mock.Mock
}

func (m *CharacterRepository) Create(ctx context.Context, character *models.Character) error {
	args := m.Called(ctx, character)
	return args.Error(0)
}

func (m *CharacterRepository) ListByWorld(ctx context.Context, worldID, userID uuid.UUID) ([]models.Character, error) {
	args := m.Called(ctx, worldID, userID)
	characters, _ := args.Get(0).([]models.Character)
	return characters, args.Error(1)
}

func (m *CharacterRepository) Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd repository.CharacterUpdate) (*models.Character, error) {
	args := m.Called(ctx, id, owner, upd)
	character, _ := args.Get(0).(*models.Character)
	return character, args.Error(1)
}

func (m *CharacterRepository) Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error {
	args := m.Called(ctx, id, owner)
	return args.Error(0)
}

func (m *CharacterRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Mock DialogueRepository
type DialogueRepository struct {
	mock.Mock
}

func (m *DialogueRepository) Create(ctx context.Context, dialogue *models.Dialogue) error {
	args := m.Called(ctx, dialogue)
	return args.Error(0)
}

func (m *DialogueRepository) ListByScene(ctx context.Context, sceneID, userID uuid.UUID) ([]models.Dialogue, error) {
	args := m.Called(ctx, sceneID, userID)
	dialogues, _ := args.Get(0).([]models.Dialogue)
	return dialogues, args.Error(1)
}

func (m *DialogueRepository) Update(ctx context.Context, id uuid.UUID, owner *uuid.UUID, upd repository.DialogueUpdate) (*models.Dialogue, error) {
	args := m.Called(ctx, id, owner, upd)
	dialogue, _ := args.Get(0).(*models.Dialogue)
	return dialogue, args.Error(1)
}

func (m *DialogueRepository) Delete(ctx context.Context, id uuid.UUID, owner *uuid.UUID) error {
	args := m.Called(ctx, id, owner)
	return args.Error(0)
}

func (m *DialogueRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
