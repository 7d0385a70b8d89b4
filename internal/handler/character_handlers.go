package handler

import (
	"net/http"

	"worldforge-server/internal/models"
	"worldforge-server/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// listCharacters returns the caller's characters of one world.
func (h *APIHandler) listCharacters(c *gin.Context) {
	identity := identityFromContext(c)

	worldID, err := uuid.Parse(c.Query("worldId"))
	if err != nil {
		h.respondError(c, http.StatusBadRequest, models.ErrCodeValidation, "Query parameter worldId must be a valid UUID")
		return
	}

	characters, err := h.Characters.ListByWorld(c.Request.Context(), worldID, identity.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, characters)
}

// createCharacter creates a character inside a world the caller owns.
func (h *APIHandler) createCharacter(c *gin.Context) {
	identity := identityFromContext(c)

	var req createCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	if !h.Ownership.Owns(c.Request.Context(), identity, models.ResourceWorld, req.WorldID) {
		h.respondError(c, http.StatusNotFound, models.ErrCodeNotFound, "World not found or access denied")
		return
	}

	character := &models.Character{
		WorldID:     req.WorldID,
		UserID:      identity.UserID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.Characters.Create(c.Request.Context(), character); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusCreated, character)
}

// updateCharacter applies a partial update to an owned character.
func (h *APIHandler) updateCharacter(c *gin.Context) {
	identity := identityFromContext(c)
	id := resourceIDFromContext(c)

	var req updateCharacterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	character, err := h.Characters.Update(c.Request.Context(), id, ownerScope(identity), repository.CharacterUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, character)
}

// deleteCharacter removes an owned character.
func (h *APIHandler) deleteCharacter(c *gin.Context) {
	identity := identityFromContext(c)
	id := resourceIDFromContext(c)

	if err := h.Characters.Delete(c.Request.Context(), id, ownerScope(identity)); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, gin.H{"message": "Character deleted"})
}
