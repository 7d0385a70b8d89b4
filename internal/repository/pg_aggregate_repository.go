package repository

import (
	"context"
	"fmt"

	"worldforge-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Compile-time check to ensure pgAggregateRepository implements AggregateRepository
var _ AggregateRepository = (*pgAggregateRepository)(nil)

type pgAggregateRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgAggregateRepository creates a new PostgreSQL-backed AggregateRepository.
func NewPgAggregateRepository(db DBTX, logger *zap.Logger) AggregateRepository {
	return &pgAggregateRepository{
		db:     db,
		logger: logger.Named("PgAggregateRepo"),
	}
}

// CompleteWorlds fetches the requested worlds and their full descendant
// trees with one batched query per relation level, then assembles the
// tree in memory. Child slices are always initialized so the JSON output
// never contains null arrays.
func (r *pgAggregateRepository) CompleteWorlds(ctx context.Context, owner *uuid.UUID, worldID *uuid.UUID) ([]models.WorldTree, error) {
	worldQuery := `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM worlds
		WHERE ($1::uuid IS NULL OR user_id = $1) AND ($2::uuid IS NULL OR id = $2)
		ORDER BY created_at DESC`
	worlds := []models.World{}
	if err := pgxscan.Select(ctx, r.db, &worlds, worldQuery, owner, worldID); err != nil {
		r.logger.Error("Failed to select worlds for aggregation", zap.Error(err))
		return nil, fmt.Errorf("failed to select worlds: %w", err)
	}
	if len(worlds) == 0 {
		return []models.WorldTree{}, nil
	}

	worldIDs := make([]uuid.UUID, 0, len(worlds))
	for _, w := range worlds {
		worldIDs = append(worldIDs, w.ID)
	}

	chapters := []models.Chapter{}
	chapterQuery := `
		SELECT id, world_id, user_id, title, chapter_number, created_at, updated_at
		FROM chapters WHERE world_id = ANY($1) ORDER BY chapter_number ASC`
	if err := pgxscan.Select(ctx, r.db, &chapters, chapterQuery, worldIDs); err != nil {
		r.logger.Error("Failed to select chapters for aggregation", zap.Error(err))
		return nil, fmt.Errorf("failed to select chapters: %w", err)
	}

	characters := []models.Character{}
	characterQuery := `
		SELECT id, world_id, user_id, name, description, created_at, updated_at
		FROM characters WHERE world_id = ANY($1) ORDER BY created_at ASC`
	if err := pgxscan.Select(ctx, r.db, &characters, characterQuery, worldIDs); err != nil {
		r.logger.Error("Failed to select characters for aggregation", zap.Error(err))
		return nil, fmt.Errorf("failed to select characters: %w", err)
	}

	chapterIDs := make([]uuid.UUID, 0, len(chapters))
	for _, c := range chapters {
		chapterIDs = append(chapterIDs, c.ID)
	}

	events := []models.Event{}
	if len(chapterIDs) > 0 {
		eventQuery := `
			SELECT id, world_id, chapter_id, user_id, title, timeline_order, created_at, updated_at
			FROM events WHERE chapter_id = ANY($1) ORDER BY timeline_order ASC`
		if err := pgxscan.Select(ctx, r.db, &events, eventQuery, chapterIDs); err != nil {
			r.logger.Error("Failed to select events for aggregation", zap.Error(err))
			return nil, fmt.Errorf("failed to select events: %w", err)
		}
	}

	eventIDs := make([]uuid.UUID, 0, len(events))
	for _, e := range events {
		eventIDs = append(eventIDs, e.ID)
	}

	scenes := []models.Scene{}
	if len(eventIDs) > 0 {
		sceneQuery := `
			SELECT id, event_id, user_id, title, scene_order, created_at, updated_at
			FROM scenes WHERE event_id = ANY($1) ORDER BY scene_order ASC`
		if err := pgxscan.Select(ctx, r.db, &scenes, sceneQuery, eventIDs); err != nil {
			r.logger.Error("Failed to select scenes for aggregation", zap.Error(err))
			return nil, fmt.Errorf("failed to select scenes: %w", err)
		}
	}

	sceneIDs := make([]uuid.UUID, 0, len(scenes))
	for _, s := range scenes {
		sceneIDs = append(sceneIDs, s.ID)
	}

	dialogues := []models.Dialogue{}
	if len(sceneIDs) > 0 {
		dialogueQuery := `
			SELECT id, scene_id, character_id, user_id, title, content, dialogue_type, order_in_scene, created_at, updated_at
			FROM dialogues WHERE scene_id = ANY($1) ORDER BY order_in_scene ASC`
		if err := pgxscan.Select(ctx, r.db, &dialogues, dialogueQuery, sceneIDs); err != nil {
			r.logger.Error("Failed to select dialogues for aggregation", zap.Error(err))
			return nil, fmt.Errorf("failed to select dialogues: %w", err)
		}
	}

	return assembleWorldTrees(worlds, chapters, events, scenes, dialogues, characters), nil
}

func assembleWorldTrees(
	worlds []models.World,
	chapters []models.Chapter,
	events []models.Event,
	scenes []models.Scene,
	dialogues []models.Dialogue,
	characters []models.Character,
) []models.WorldTree {
	sceneTrees := make(map[uuid.UUID][]models.SceneTree) // event id -> scenes
	dialoguesByScene := make(map[uuid.UUID][]models.Dialogue)
	for _, d := range dialogues {
		dialoguesByScene[d.SceneID] = append(dialoguesByScene[d.SceneID], d)
	}
	for _, s := range scenes {
		ds := dialoguesByScene[s.ID]
		if ds == nil {
			ds = []models.Dialogue{}
		}
		sceneTrees[s.EventID] = append(sceneTrees[s.EventID], models.SceneTree{Scene: s, Dialogues: ds})
	}

	eventTrees := make(map[uuid.UUID][]models.EventTree) // chapter id -> events
	for _, e := range events {
		if e.ChapterID == nil {
			continue
		}
		ss := sceneTrees[e.ID]
		if ss == nil {
			ss = []models.SceneTree{}
		}
		eventTrees[*e.ChapterID] = append(eventTrees[*e.ChapterID], models.EventTree{Event: e, Scenes: ss})
	}

	chapterTrees := make(map[uuid.UUID][]models.ChapterTree) // world id -> chapters
	for _, c := range chapters {
		es := eventTrees[c.ID]
		if es == nil {
			es = []models.EventTree{}
		}
		chapterTrees[c.WorldID] = append(chapterTrees[c.WorldID], models.ChapterTree{Chapter: c, Events: es})
	}

	charactersByWorld := make(map[uuid.UUID][]models.Character)
	for _, ch := range characters {
		charactersByWorld[ch.WorldID] = append(charactersByWorld[ch.WorldID], ch)
	}

	trees := make([]models.WorldTree, 0, len(worlds))
	for _, w := range worlds {
		cs := chapterTrees[w.ID]
		if cs == nil {
			cs = []models.ChapterTree{}
		}
		chs := charactersByWorld[w.ID]
		if chs == nil {
			chs = []models.Character{}
		}
		trees = append(trees, models.WorldTree{World: w, Chapters: cs, Characters: chs})
	}
	return trees
}
