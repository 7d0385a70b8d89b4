package handler

import (
	"net/http"

	"worldforge-server/internal/models"
	"worldforge-server/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// listChapters returns the caller's chapters of one world.
func (h *APIHandler) listChapters(c *gin.Context) {
	identity := identityFromContext(c)

	worldID, err := uuid.Parse(c.Query("worldId"))
	if err != nil {
		h.respondError(c, http.StatusBadRequest, models.ErrCodeValidation, "Query parameter worldId must be a valid UUID")
		return
	}

	chapters, err := h.Chapters.ListByWorld(c.Request.Context(), worldID, identity.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, chapters)
}

// createChapter creates a chapter inside a world the caller owns.
func (h *APIHandler) createChapter(c *gin.Context) {
	identity := identityFromContext(c)

	var req createChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	if !h.Ownership.Owns(c.Request.Context(), identity, models.ResourceWorld, req.WorldID) {
		h.respondError(c, http.StatusNotFound, models.ErrCodeNotFound, "World not found or access denied")
		return
	}

	chapter := &models.Chapter{
		WorldID:       req.WorldID,
		UserID:        identity.UserID,
		Title:         req.Title,
		ChapterNumber: req.ChapterNumber,
	}
	if err := h.Chapters.Create(c.Request.Context(), chapter); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusCreated, chapter)
}

// updateChapter applies a partial update to an owned chapter.
func (h *APIHandler) updateChapter(c *gin.Context) {
	identity := identityFromContext(c)
	id := resourceIDFromContext(c)

	var req updateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	chapter, err := h.Chapters.Update(c.Request.Context(), id, ownerScope(identity), repository.ChapterUpdate{
		Title:         req.Title,
		ChapterNumber: req.ChapterNumber,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, chapter)
}

// deleteChapter removes an owned chapter.
func (h *APIHandler) deleteChapter(c *gin.Context) {
	identity := identityFromContext(c)
	id := resourceIDFromContext(c)

	if err := h.Chapters.Delete(c.Request.Context(), id, ownerScope(identity)); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, gin.H{"message": "Chapter deleted"})
}
