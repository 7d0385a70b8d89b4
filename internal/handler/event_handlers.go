package handler

import (
	"net/http"

	"worldforge-server/internal/models"
	"worldforge-server/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// listEvents returns the caller's events of one world in timeline order.
func (h *APIHandler) listEvents(c *gin.Context) {
	identity := identityFromContext(c)

	worldID, err := uuid.Parse(c.Query("worldId"))
	if err != nil {
		h.respondError(c, http.StatusBadRequest, models.ErrCodeValidation, "Query parameter worldId must be a valid UUID")
		return
	}

	events, err := h.Events.ListByWorld(c.Request.Context(), worldID, identity.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, events)
}

// createEvent creates a timeline event. The world, and the chapter when
// one is given, must both belong to the caller.
func (h *APIHandler) createEvent(c *gin.Context) {
	identity := identityFromContext(c)

	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	if !h.Ownership.Owns(c.Request.Context(), identity, models.ResourceWorld, req.WorldID) {
		h.respondError(c, http.StatusNotFound, models.ErrCodeNotFound, "World not found or access denied")
		return
	}
	if req.ChapterID != nil {
		if !h.Ownership.Owns(c.Request.Context(), identity, models.ResourceChapter, *req.ChapterID) {
			h.respondError(c, http.StatusNotFound, models.ErrCodeNotFound, "Chapter not found or access denied")
			return
		}
	}

	event := &models.Event{
		WorldID:       req.WorldID,
		ChapterID:     req.ChapterID,
		UserID:        identity.UserID,
		Title:         req.Title,
		TimelineOrder: req.TimelineOrder,
	}
	if err := h.Events.Create(c.Request.Context(), event); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusCreated, event)
}

// updateEvent applies a partial update to an owned event.
func (h *APIHandler) updateEvent(c *gin.Context) {
	identity := identityFromContext(c)
	id := resourceIDFromContext(c)

	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	event, err := h.Events.Update(c.Request.Context(), id, ownerScope(identity), repository.EventUpdate{
		Title:         req.Title,
		TimelineOrder: req.TimelineOrder,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, event)
}

// deleteEvent removes an owned event.
func (h *APIHandler) deleteEvent(c *gin.Context) {
	identity := identityFromContext(c)
	id := resourceIDFromContext(c)

	if err := h.Events.Delete(c.Request.Context(), id, ownerScope(identity)); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, gin.H{"message": "Event deleted"})
}
