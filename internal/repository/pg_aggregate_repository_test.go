package repository

import (
	"testing"

	"worldforge-server/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleWorldTrees_EmptyInput(t *testing.T) {
	trees := assembleWorldTrees(nil, nil, nil, nil, nil, nil)
	require.NotNil(t, trees)
	assert.Empty(t, trees)
}

func TestAssembleWorldTrees_ChildSlicesNeverNil(t *testing.T) {
	world := models.World{ID: uuid.New(), Name: "Aldenmere"}

	trees := assembleWorldTrees([]models.World{world}, nil, nil, nil, nil, nil)
	require.Len(t, trees, 1)
	assert.NotNil(t, trees[0].Chapters, "chapters must be an empty slice, not nil")
	assert.NotNil(t, trees[0].Characters, "characters must be an empty slice, not nil")
	assert.Empty(t, trees[0].Chapters)
	assert.Empty(t, trees[0].Characters)
}

func TestAssembleWorldTrees_FullChain(t *testing.T) {
	world := models.World{ID: uuid.New()}
	chapter := models.Chapter{ID: uuid.New(), WorldID: world.ID, Title: "Prologue"}
	event := models.Event{ID: uuid.New(), WorldID: world.ID, ChapterID: &chapter.ID, Title: "The Landing"}
	scene := models.Scene{ID: uuid.New(), EventID: event.ID, Title: "Shoreline"}
	speaker := models.Character{ID: uuid.New(), WorldID: world.ID, Name: "Maren"}
	line := models.Dialogue{ID: uuid.New(), SceneID: scene.ID, CharacterID: speaker.ID, Content: "Land, at last."}

	trees := assembleWorldTrees(
		[]models.World{world},
		[]models.Chapter{chapter},
		[]models.Event{event},
		[]models.Scene{scene},
		[]models.Dialogue{line},
		[]models.Character{speaker},
	)

	require.Len(t, trees, 1)
	require.Len(t, trees[0].Chapters, 1)
	require.Len(t, trees[0].Chapters[0].Events, 1)
	require.Len(t, trees[0].Chapters[0].Events[0].Scenes, 1)
	require.Len(t, trees[0].Chapters[0].Events[0].Scenes[0].Dialogues, 1)
	assert.Equal(t, "Land, at last.", trees[0].Chapters[0].Events[0].Scenes[0].Dialogues[0].Content)
	require.Len(t, trees[0].Characters, 1)
	assert.Equal(t, "Maren", trees[0].Characters[0].Name)
}

func TestAssembleWorldTrees_ChildrenStayWithTheirParents(t *testing.T) {
	worldA := models.World{ID: uuid.New()}
	worldB := models.World{ID: uuid.New()}
	chapterA := models.Chapter{ID: uuid.New(), WorldID: worldA.ID}
	characterB := models.Character{ID: uuid.New(), WorldID: worldB.ID}

	trees := assembleWorldTrees(
		[]models.World{worldA, worldB},
		[]models.Chapter{chapterA},
		nil, nil, nil,
		[]models.Character{characterB},
	)

	require.Len(t, trees, 2)
	assert.Len(t, trees[0].Chapters, 1)
	assert.Empty(t, trees[0].Characters)
	assert.Empty(t, trees[1].Chapters)
	assert.Len(t, trees[1].Characters, 1)
}

func TestAssembleWorldTrees_UnpinnedEventsExcluded(t *testing.T) {
	world := models.World{ID: uuid.New()}
	chapter := models.Chapter{ID: uuid.New(), WorldID: world.ID}
	floating := models.Event{ID: uuid.New(), WorldID: world.ID, ChapterID: nil}

	trees := assembleWorldTrees(
		[]models.World{world},
		[]models.Chapter{chapter},
		[]models.Event{floating},
		nil, nil, nil,
	)

	require.Len(t, trees, 1)
	require.Len(t, trees[0].Chapters, 1)
	assert.Empty(t, trees[0].Chapters[0].Events, "events without a chapter do not appear under any chapter")
}
