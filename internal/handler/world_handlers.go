package handler

import (
	"net/http"

	"worldforge-server/internal/models"
	"worldforge-server/internal/repository"

	"github.com/gin-gonic/gin"
)

// listWorlds returns the caller's worlds, newest first.
func (h *APIHandler) listWorlds(c *gin.Context) {
	identity := identityFromContext(c)

	worlds, err := h.Worlds.ListByUser(c.Request.Context(), identity.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, worlds)
}

// createWorld creates a world owned by the caller.
func (h *APIHandler) createWorld(c *gin.Context) {
	identity := identityFromContext(c)

	var req createWorldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	world := &models.World{
		UserID:      identity.UserID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.Worlds.Create(c.Request.Context(), world); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusCreated, world)
}

// updateWorld applies a partial update to an owned world.
func (h *APIHandler) updateWorld(c *gin.Context) {
	identity := identityFromContext(c)
	id := resourceIDFromContext(c)

	var req updateWorldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	world, err := h.Worlds.Update(c.Request.Context(), id, ownerScope(identity), repository.WorldUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, world)
}

// deleteWorld removes an owned world and, through the store's cascades,
// its whole descendant tree.
func (h *APIHandler) deleteWorld(c *gin.Context) {
	identity := identityFromContext(c)
	id := resourceIDFromContext(c)

	if err := h.Worlds.Delete(c.Request.Context(), id, ownerScope(identity)); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, gin.H{"message": "World deleted"})
}
