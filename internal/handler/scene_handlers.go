package handler

import (
	"net/http"

	"worldforge-server/internal/models"
	"worldforge-server/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// listScenes returns the caller's scenes of one event in scene order.
func (h *APIHandler) listScenes(c *gin.Context) {
	identity := identityFromContext(c)

	eventID, err := uuid.Parse(c.Query("eventId"))
	if err != nil {
		h.respondError(c, http.StatusBadRequest, models.ErrCodeValidation, "Query parameter eventId must be a valid UUID")
		return
	}

	scenes, err := h.Scenes.ListByEvent(c.Request.Context(), eventID, identity.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, scenes)
}

// createScene creates a scene inside an event the caller owns.
func (h *APIHandler) createScene(c *gin.Context) {
	identity := identityFromContext(c)

	var req createSceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	if !h.Ownership.Owns(c.Request.Context(), identity, models.ResourceEvent, req.EventID) {
		h.respondError(c, http.StatusNotFound, models.ErrCodeNotFound, "Event not found or access denied")
		return
	}

	scene := &models.Scene{
		EventID:    req.EventID,
		UserID:     identity.UserID,
		Title:      req.Title,
		SceneOrder: req.SceneOrder,
	}
	if err := h.Scenes.Create(c.Request.Context(), scene); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusCreated, scene)
}

// updateScene applies a partial update to an owned scene.
func (h *APIHandler) updateScene(c *gin.Context) {
	identity := identityFromContext(c)
	id := resourceIDFromContext(c)

	var req updateSceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	scene, err := h.Scenes.Update(c.Request.Context(), id, ownerScope(identity), repository.SceneUpdate{
		Title:      req.Title,
		SceneOrder: req.SceneOrder,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, scene)
}

// deleteScene removes an owned scene.
func (h *APIHandler) deleteScene(c *gin.Context) {
	identity := identityFromContext(c)
	id := resourceIDFromContext(c)

	if err := h.Scenes.Delete(c.Request.Context(), id, ownerScope(identity)); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, gin.H{"message": "Scene deleted"})
}
