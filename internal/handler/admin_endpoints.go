package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// listUsers returns every mirrored profile. Admin only.
func (h *APIHandler) listUsers(c *gin.Context) {
	profiles, err := h.Profiles.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, gin.H{
		"users": profiles,
		"total": len(profiles),
	})
}

// analytics returns platform-wide row counts. Admin only.
func (h *APIHandler) analytics(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		resp analyticsResponse
		err  error
	)
	if resp.TotalUsers, err = h.Profiles.Count(ctx); err != nil {
		h.handleServiceError(c, err)
		return
	}
	if resp.TotalWorlds, err = h.Worlds.Count(ctx); err != nil {
		h.handleServiceError(c, err)
		return
	}
	if resp.TotalChapters, err = h.Chapters.Count(ctx); err != nil {
		h.handleServiceError(c, err)
		return
	}
	if resp.TotalCharacters, err = h.Characters.Count(ctx); err != nil {
		h.handleServiceError(c, err)
		return
	}
	if resp.TotalDialogues, err = h.Dialogues.Count(ctx); err != nil {
		h.handleServiceError(c, err)
		return
	}

	zap.L().Debug("Analytics snapshot served",
		zap.Int64("users", resp.TotalUsers), zap.Int64("worlds", resp.TotalWorlds))
	h.respondData(c, http.StatusOK, resp)
}
