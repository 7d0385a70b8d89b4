package handler

import (
	"net/http"

	"worldforge-server/internal/models"
	"worldforge-server/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// listDialogues returns the caller's dialogue lines of one scene in
// scene order.
func (h *APIHandler) listDialogues(c *gin.Context) {
	identity := identityFromContext(c)

	sceneID, err := uuid.Parse(c.Query("sceneId"))
	if err != nil {
		h.respondError(c, http.StatusBadRequest, models.ErrCodeValidation, "Query parameter sceneId must be a valid UUID")
		return
	}

	dialogues, err := h.Dialogues.ListByScene(c.Request.Context(), sceneID, identity.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, dialogues)
}

// createDialogue creates a dialogue line. Both the scene and the
// speaking character must belong to the caller.
func (h *APIHandler) createDialogue(c *gin.Context) {
	identity := identityFromContext(c)

	var req createDialogueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	if !h.Ownership.Owns(c.Request.Context(), identity, models.ResourceScene, req.SceneID) {
		h.respondError(c, http.StatusNotFound, models.ErrCodeNotFound, "Scene not found or access denied")
		return
	}
	if !h.Ownership.Owns(c.Request.Context(), identity, models.ResourceCharacter, req.CharacterID) {
		h.respondError(c, http.StatusNotFound, models.ErrCodeNotFound, "Character not found or access denied")
		return
	}

	dialogueType := req.DialogueType
	if dialogueType == "" {
		dialogueType = models.DialogueTypeDialogue
	}

	dialogue := &models.Dialogue{
		SceneID:      req.SceneID,
		CharacterID:  req.CharacterID,
		UserID:       identity.UserID,
		Title:        req.Title,
		Content:      req.Content,
		DialogueType: dialogueType,
		OrderInScene: req.OrderInScene,
	}
	if err := h.Dialogues.Create(c.Request.Context(), dialogue); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusCreated, dialogue)
}

// updateDialogue applies a partial update to an owned dialogue line.
func (h *APIHandler) updateDialogue(c *gin.Context) {
	identity := identityFromContext(c)
	id := resourceIDFromContext(c)

	var req updateDialogueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	dialogue, err := h.Dialogues.Update(c.Request.Context(), id, ownerScope(identity), repository.DialogueUpdate{
		Title:        req.Title,
		Content:      req.Content,
		DialogueType: req.DialogueType,
		OrderInScene: req.OrderInScene,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, dialogue)
}

// deleteDialogue removes an owned dialogue line.
func (h *APIHandler) deleteDialogue(c *gin.Context) {
	identity := identityFromContext(c)
	id := resourceIDFromContext(c)

	if err := h.Dialogues.Delete(c.Request.Context(), id, ownerScope(identity)); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, gin.H{"message": "Dialogue deleted"})
}
