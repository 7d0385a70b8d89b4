package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"worldforge-server/internal/models"
	repomocks "worldforge-server/internal/repository/mocks"
	svcmocks "worldforge-server/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type pingerStub struct{ err error }

func (p pingerStub) Ping(ctx context.Context) error { return p.err }

// testFixture bundles the router and every mock behind it.
type testFixture struct {
	router     *gin.Engine
	auth       *svcmocks.AuthService
	ownership  *svcmocks.OwnershipChecker
	dashboard  *svcmocks.DashboardService
	profiles   *repomocks.ProfileRepository
	worlds     *repomocks.WorldRepository
	chapters   *repomocks.ChapterRepository
	events     *repomocks.EventRepository
	scenes     *repomocks.SceneRepository
	characters *repomocks.CharacterRepository
	dialogues  *repomocks.DialogueRepository
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()
	f := &testFixture{
		auth:       new(svcmocks.AuthService),
		ownership:  new(svcmocks.OwnershipChecker),
		dashboard:  new(svcmocks.DashboardService),
		profiles:   new(repomocks.ProfileRepository),
		worlds:     new(repomocks.WorldRepository),
		chapters:   new(repomocks.ChapterRepository),
		events:     new(repomocks.EventRepository),
		scenes:     new(repomocks.SceneRepository),
		characters: new(repomocks.CharacterRepository),
		dialogues:  new(repomocks.DialogueRepository),
	}

	apiHandler := NewAPIHandler(Deps{
		Auth:       f.auth,
		Ownership:  f.ownership,
		Dashboard:  f.dashboard,
		Profiles:   f.profiles,
		Worlds:     f.worlds,
		Chapters:   f.chapters,
		Events:     f.events,
		Scenes:     f.scenes,
		Characters: f.characters,
		Dialogues:  f.dialogues,
		DB:         pingerStub{},
	}, false)

	f.router = gin.New()
	apiHandler.RegisterRoutes(f.router)
	return f
}

func (f *testFixture) authenticateAs(identity *models.Identity) {
	f.auth.On("ResolveIdentity", mock.Anything, "Bearer good-token").Return(identity)
}

func (f *testFixture) do(t *testing.T, method, path string, body interface{}, authorized bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", "Bearer good-token")
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeErrorEnvelope(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.NotZero(t, resp.Timestamp)
	return resp
}

func standardIdentity() *models.Identity {
	return &models.Identity{UserID: uuid.New(), Email: "writer@example.com", Capability: models.CapabilityStandard}
}

func adminIdentity() *models.Identity {
	return &models.Identity{UserID: uuid.New(), Email: "ops@example.com", Capability: models.CapabilityAdmin}
}

func TestMissingAuthorizationHeader(t *testing.T) {
	f := newTestFixture(t)

	w := f.do(t, http.MethodGet, "/api/user/worlds", nil, false)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	resp := decodeErrorEnvelope(t, w)
	assert.Equal(t, models.ErrCodeMissingToken, resp.Code)
	f.auth.AssertNotCalled(t, "ResolveIdentity", mock.Anything, mock.Anything)
}

func TestRejectedToken(t *testing.T) {
	f := newTestFixture(t)
	f.auth.On("ResolveIdentity", mock.Anything, "Bearer bad-token").Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user/worlds", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeErrorEnvelope(t, w)
	assert.Equal(t, models.ErrCodeInvalidToken, resp.Code)
}

func TestUnknownRouteEchoesPath(t *testing.T) {
	f := newTestFixture(t)

	w := f.do(t, http.MethodGet, "/api/no-such-endpoint", nil, false)
	require.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeErrorEnvelope(t, w)
	assert.Equal(t, models.ErrCodeNotFound, resp.Code)
	assert.Contains(t, resp.Error, "/api/no-such-endpoint")
	assert.Equal(t, "/api/no-such-endpoint", resp.Path)
}

func TestMethodNotAllowed(t *testing.T) {
	f := newTestFixture(t)

	w := f.do(t, http.MethodDelete, "/api/auth/login", nil, false)
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)

	resp := decodeErrorEnvelope(t, w)
	assert.Equal(t, models.ErrCodeMethodNotAllowed, resp.Code)
}

func TestOwnershipDenialMaskedAsNotFound(t *testing.T) {
	f := newTestFixture(t)
	identity := standardIdentity()
	f.authenticateAs(identity)

	worldID := uuid.New()
	f.ownership.On("Owns", mock.Anything, identity, models.ResourceWorld, worldID).Return(false).Once()

	w := f.do(t, http.MethodPut, "/api/worlds/"+worldID.String(), updateWorldRequest{}, true)
	require.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeErrorEnvelope(t, w)
	assert.Equal(t, models.ErrCodeNotFound, resp.Code)
	assert.Contains(t, resp.Error, "not found or access denied")
	f.worlds.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOwnershipInvalidIdentifier(t *testing.T) {
	f := newTestFixture(t)
	f.authenticateAs(standardIdentity())

	w := f.do(t, http.MethodDelete, "/api/worlds/not-a-uuid", nil, true)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeErrorEnvelope(t, w)
	assert.Equal(t, models.ErrCodeValidation, resp.Code)
}

func TestAdminDeletesForeignWorldUnscoped(t *testing.T) {
	f := newTestFixture(t)
	admin := adminIdentity()
	f.authenticateAs(admin)

	worldID := uuid.New()
	f.ownership.On("Owns", mock.Anything, admin, models.ResourceWorld, worldID).Return(true).Once()
	f.worlds.On("Delete", mock.Anything, worldID, (*uuid.UUID)(nil)).Return(nil).Once()

	w := f.do(t, http.MethodDelete, "/api/worlds/"+worldID.String(), nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	f.worlds.AssertExpectations(t)
}

func TestAdminUpdatesOwnWorldUnscoped(t *testing.T) {
	f := newTestFixture(t)
	admin := adminIdentity()
	f.authenticateAs(admin)

	// A world the admin owns personally goes through the same unscoped
	// path as a foreign one.
	owned := &models.World{ID: uuid.New(), UserID: admin.UserID, Name: "Aldenmere"}
	f.ownership.On("Owns", mock.Anything, admin, models.ResourceWorld, owned.ID).Return(true).Once()
	f.worlds.On("Update", mock.Anything, owned.ID, (*uuid.UUID)(nil), mock.Anything).Return(owned, nil).Once()

	w := f.do(t, http.MethodPut, "/api/worlds/"+owned.ID.String(), updateWorldRequest{}, true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool         `json:"success"`
		Data    models.World `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, admin.UserID, resp.Data.UserID)
	f.worlds.AssertExpectations(t)
}

func TestCreateWorld(t *testing.T) {
	f := newTestFixture(t)
	identity := standardIdentity()
	f.authenticateAs(identity)

	f.worlds.On("Create", mock.Anything, mock.MatchedBy(func(world *models.World) bool {
		return world.UserID == identity.UserID && world.Name == "Aldenmere"
	})).Return(nil).Once()

	w := f.do(t, http.MethodPost, "/api/user/worlds", createWorldRequest{Name: "Aldenmere"}, true)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool         `json:"success"`
		Data    models.World `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Aldenmere", resp.Data.Name)
	f.worlds.AssertExpectations(t)
}

func TestCreateWorldValidation(t *testing.T) {
	f := newTestFixture(t)
	f.authenticateAs(standardIdentity())

	w := f.do(t, http.MethodPost, "/api/user/worlds", map[string]string{"description": "no name"}, true)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeErrorEnvelope(t, w)
	assert.Equal(t, models.ErrCodeValidation, resp.Code)
}

func TestCreateChapterRequiresWorldOwnership(t *testing.T) {
	f := newTestFixture(t)
	identity := standardIdentity()
	f.authenticateAs(identity)

	worldID := uuid.New()
	f.ownership.On("Owns", mock.Anything, identity, models.ResourceWorld, worldID).Return(false).Once()

	w := f.do(t, http.MethodPost, "/api/chapters", createChapterRequest{WorldID: worldID, Title: "Prologue"}, true)
	require.Equal(t, http.StatusNotFound, w.Code)

	resp := decodeErrorEnvelope(t, w)
	assert.Contains(t, resp.Error, "World not found or access denied")
	f.chapters.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateDialogueChecksSceneAndCharacter(t *testing.T) {
	f := newTestFixture(t)
	identity := standardIdentity()
	f.authenticateAs(identity)

	sceneID := uuid.New()
	characterID := uuid.New()
	f.ownership.On("Owns", mock.Anything, identity, models.ResourceScene, sceneID).Return(true).Once()
	f.ownership.On("Owns", mock.Anything, identity, models.ResourceCharacter, characterID).Return(false).Once()

	w := f.do(t, http.MethodPost, "/api/dialogues", createDialogueRequest{
		SceneID:     sceneID,
		CharacterID: characterID,
		Content:     "We ride at dawn.",
	}, true)
	require.Equal(t, http.StatusNotFound, w.Code)
	f.dialogues.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDashboardZeroState(t *testing.T) {
	f := newTestFixture(t)
	identity := standardIdentity()
	f.authenticateAs(identity)

	f.dashboard.On("DashboardData", mock.Anything, identity.UserID).Return(&models.DashboardData{
		Worlds: []models.WorldTree{},
	}, nil).Once()

	w := f.do(t, http.MethodGet, "/api/user/dashboard-data", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.JSONEq(t, "true", string(resp["success"]))
	assert.JSONEq(t, "[]", string(resp["worlds"]), "an empty dashboard must carry an empty array, not null")
	assert.JSONEq(t, "0", string(resp["totalWorlds"]))
	assert.JSONEq(t, "0", string(resp["totalChapters"]))
	assert.JSONEq(t, "0", string(resp["totalCharacters"]))
}

func TestAdminRouteForbiddenForStandardUsers(t *testing.T) {
	f := newTestFixture(t)
	f.authenticateAs(standardIdentity())

	w := f.do(t, http.MethodGet, "/api/admin/users", nil, true)
	require.Equal(t, http.StatusForbidden, w.Code)

	resp := decodeErrorEnvelope(t, w)
	assert.Equal(t, models.ErrCodeForbidden, resp.Code)
	f.profiles.AssertNotCalled(t, "List", mock.Anything)
}

func TestAdminAnalytics(t *testing.T) {
	f := newTestFixture(t)
	f.authenticateAs(adminIdentity())

	f.profiles.On("Count", mock.Anything).Return(int64(12), nil).Once()
	f.worlds.On("Count", mock.Anything).Return(int64(30), nil).Once()
	f.chapters.On("Count", mock.Anything).Return(int64(90), nil).Once()
	f.characters.On("Count", mock.Anything).Return(int64(45), nil).Once()
	f.dialogues.On("Count", mock.Anything).Return(int64(400), nil).Once()

	w := f.do(t, http.MethodGet, "/api/admin/analytics", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool              `json:"success"`
		Data    analyticsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(12), resp.Data.TotalUsers)
	assert.Equal(t, int64(400), resp.Data.TotalDialogues)
}

func TestUpstreamFailureNormalized(t *testing.T) {
	f := newTestFixture(t)
	identity := standardIdentity()
	f.authenticateAs(identity)

	f.worlds.On("ListByUser", mock.Anything, identity.UserID).
		Return(nil, errors.New("dial tcp: connection refused")).Once()

	w := f.do(t, http.MethodGet, "/api/user/worlds", nil, true)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decodeErrorEnvelope(t, w)
	assert.Equal(t, models.ErrCodeInternal, resp.Code)
	assert.Equal(t, "Internal server error", resp.Error, "internal details must not leak")
	assert.Empty(t, resp.Stack, "stack traces are for development mode only")
}

func TestProviderOutageOnLoginIs500(t *testing.T) {
	f := newTestFixture(t)

	f.auth.On("Login", mock.Anything, "writer@example.com", "hunter2hunter2").
		Return(nil, nil, fmt.Errorf("%w: identity provider returned status 503", models.ErrUpstream)).Once()

	w := f.do(t, http.MethodPost, "/api/auth/login",
		loginRequest{Email: "writer@example.com", Password: "hunter2hunter2"}, false)
	require.Equal(t, http.StatusInternalServerError, w.Code,
		"a provider outage is a server-side failure, not a gateway error")

	resp := decodeErrorEnvelope(t, w)
	assert.Equal(t, models.ErrCodeUpstream, resp.Code)
	assert.Equal(t, "Upstream service unavailable", resp.Error, "provider internals must not leak")
}

func TestListChaptersRequiresWorldIDQuery(t *testing.T) {
	f := newTestFixture(t)
	f.authenticateAs(standardIdentity())

	w := f.do(t, http.MethodGet, "/api/chapters", nil, true)
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeErrorEnvelope(t, w)
	assert.Equal(t, models.ErrCodeValidation, resp.Code)
}

func TestCompleteWorldRoute(t *testing.T) {
	f := newTestFixture(t)
	identity := standardIdentity()
	f.authenticateAs(identity)

	worldID := uuid.New()
	tree := &models.WorldTree{
		World:      models.World{ID: worldID, UserID: identity.UserID, Name: "Aldenmere"},
		Chapters:   []models.ChapterTree{},
		Characters: []models.Character{},
	}
	f.ownership.On("Owns", mock.Anything, identity, models.ResourceWorld, worldID).Return(true).Once()
	f.dashboard.On("CompleteWorld", mock.Anything, identity, worldID).Return(tree, nil).Once()

	w := f.do(t, http.MethodGet, "/api/user/worlds/"+worldID.String()+"/complete", nil, true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool             `json:"success"`
		Data    models.WorldTree `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, worldID, resp.Data.ID)
	assert.NotNil(t, resp.Data.Chapters)
}

func TestHealth(t *testing.T) {
	f := newTestFixture(t)

	w := f.do(t, http.MethodGet, "/health", nil, false)
	require.Equal(t, http.StatusOK, w.Code)
}
