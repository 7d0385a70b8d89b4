package handler

import (
	"context"
	"net/http"

	"worldforge-server/internal/models"
	"worldforge-server/internal/repository"
	"worldforge-server/internal/service"

	"github.com/gin-gonic/gin"
)

// Pinger reports backing-store reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps bundles everything the API handler needs.
type Deps struct {
	Auth      service.AuthService
	Ownership service.OwnershipChecker
	Dashboard service.DashboardService

	Profiles   repository.ProfileRepository
	Worlds     repository.WorldRepository
	Chapters   repository.ChapterRepository
	Events     repository.EventRepository
	Scenes     repository.SceneRepository
	Characters repository.CharacterRepository
	Dialogues  repository.DialogueRepository

	DB Pinger

	// RateLimit, when set, throttles the credential endpoints.
	RateLimit gin.HandlerFunc
}

// APIHandler serves the whole HTTP surface.
type APIHandler struct {
	Deps
	devMode bool
}

// NewAPIHandler creates a new APIHandler. devMode controls whether 5xx
// envelopes include stack traces.
func NewAPIHandler(deps Deps, devMode bool) *APIHandler {
	return &APIHandler{Deps: deps, devMode: devMode}
}

// route is one entry of the declarative route table. Middleware chains
// are derived from the flags, so auth and ownership policy live in one
// place instead of being repeated per handler.
type route struct {
	method string
	path   string
	auth   bool
	admin  bool
	// ownership names the resource kind guarded by the path parameter
	// ownerParam; empty means no ownership precondition.
	ownership  models.ResourceKind
	ownerParam string
	limited    bool
	handle     gin.HandlerFunc
}

func (h *APIHandler) routes() []route {
	return []route{
		{method: http.MethodGet, path: "/health", handle: h.health},

		{method: http.MethodPost, path: "/api/auth/signup", limited: true, handle: h.signUp},
		{method: http.MethodPost, path: "/api/auth/login", limited: true, handle: h.login},
		{method: http.MethodPost, path: "/api/auth/logout", handle: h.logout},
		{method: http.MethodPost, path: "/api/auth/refresh", handle: h.refresh},
		{method: http.MethodGet, path: "/api/auth/me", auth: true, handle: h.getMe},

		{method: http.MethodGet, path: "/api/user/dashboard-data", auth: true, handle: h.dashboardData},
		{method: http.MethodGet, path: "/api/user/worlds", auth: true, handle: h.listWorlds},
		{method: http.MethodPost, path: "/api/user/worlds", auth: true, handle: h.createWorld},
		{method: http.MethodGet, path: "/api/user/worlds/:worldId/complete", auth: true,
			ownership: models.ResourceWorld, ownerParam: "worldId", handle: h.completeWorld},

		{method: http.MethodPut, path: "/api/worlds/:id", auth: true,
			ownership: models.ResourceWorld, ownerParam: "id", handle: h.updateWorld},
		{method: http.MethodDelete, path: "/api/worlds/:id", auth: true,
			ownership: models.ResourceWorld, ownerParam: "id", handle: h.deleteWorld},

		{method: http.MethodGet, path: "/api/chapters", auth: true, handle: h.listChapters},
		{method: http.MethodPost, path: "/api/chapters", auth: true, handle: h.createChapter},
		{method: http.MethodPut, path: "/api/chapters/:id", auth: true,
			ownership: models.ResourceChapter, ownerParam: "id", handle: h.updateChapter},
		{method: http.MethodDelete, path: "/api/chapters/:id", auth: true,
			ownership: models.ResourceChapter, ownerParam: "id", handle: h.deleteChapter},

		{method: http.MethodGet, path: "/api/events", auth: true, handle: h.listEvents},
		{method: http.MethodPost, path: "/api/events", auth: true, handle: h.createEvent},
		{method: http.MethodPut, path: "/api/events/:id", auth: true,
			ownership: models.ResourceEvent, ownerParam: "id", handle: h.updateEvent},
		{method: http.MethodDelete, path: "/api/events/:id", auth: true,
			ownership: models.ResourceEvent, ownerParam: "id", handle: h.deleteEvent},

		{method: http.MethodGet, path: "/api/scenes", auth: true, handle: h.listScenes},
		{method: http.MethodPost, path: "/api/scenes", auth: true, handle: h.createScene},
		{method: http.MethodPut, path: "/api/scenes/:id", auth: true,
			ownership: models.ResourceScene, ownerParam: "id", handle: h.updateScene},
		{method: http.MethodDelete, path: "/api/scenes/:id", auth: true,
			ownership: models.ResourceScene, ownerParam: "id", handle: h.deleteScene},

		{method: http.MethodGet, path: "/api/characters", auth: true, handle: h.listCharacters},
		{method: http.MethodPost, path: "/api/characters", auth: true, handle: h.createCharacter},
		{method: http.MethodPut, path: "/api/characters/:id", auth: true,
			ownership: models.ResourceCharacter, ownerParam: "id", handle: h.updateCharacter},
		{method: http.MethodDelete, path: "/api/characters/:id", auth: true,
			ownership: models.ResourceCharacter, ownerParam: "id", handle: h.deleteCharacter},

		{method: http.MethodGet, path: "/api/dialogues", auth: true, handle: h.listDialogues},
		{method: http.MethodPost, path: "/api/dialogues", auth: true, handle: h.createDialogue},
		{method: http.MethodPut, path: "/api/dialogues/:id", auth: true,
			ownership: models.ResourceDialogue, ownerParam: "id", handle: h.updateDialogue},
		{method: http.MethodDelete, path: "/api/dialogues/:id", auth: true,
			ownership: models.ResourceDialogue, ownerParam: "id", handle: h.deleteDialogue},

		{method: http.MethodGet, path: "/api/admin/users", auth: true, admin: true, handle: h.listUsers},
		{method: http.MethodGet, path: "/api/admin/analytics", auth: true, admin: true, handle: h.analytics},
	}
}

// RegisterRoutes wires the route table onto the engine, together with
// the 404/405 fallbacks.
func (h *APIHandler) RegisterRoutes(r *gin.Engine) {
	r.HandleMethodNotAllowed = true
	r.NoRoute(h.notFound)
	r.NoMethod(h.methodNotAllowed)

	for _, rt := range h.routes() {
		chain := make([]gin.HandlerFunc, 0, 4)
		if rt.limited && h.RateLimit != nil {
			chain = append(chain, h.RateLimit)
		}
		if rt.auth {
			chain = append(chain, h.requireAuth())
		}
		if rt.admin {
			chain = append(chain, h.requireAdmin())
		}
		if rt.ownership != "" {
			chain = append(chain, h.requireOwnership(rt.ownership, rt.ownerParam))
		}
		chain = append(chain, rt.handle)
		r.Handle(rt.method, rt.path, chain...)
	}
}

// health checks backing-store reachability.
func (h *APIHandler) health(c *gin.Context) {
	if err := h.DB.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
