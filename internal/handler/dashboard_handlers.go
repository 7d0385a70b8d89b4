package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// dashboardData returns the caller's complete world trees together with
// the derived counters. The counters are computed from the same trees
// the response carries, so they always agree with the payload.
func (h *APIHandler) dashboardData(c *gin.Context) {
	identity := identityFromContext(c)

	data, err := h.Dashboard.DashboardData(c.Request.Context(), identity.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboardResponse{
		Success:         true,
		Worlds:          data.Worlds,
		TotalWorlds:     data.TotalWorlds,
		TotalChapters:   data.TotalChapters,
		TotalCharacters: data.TotalCharacters,
	})
}

// completeWorld returns one world's full tree. Ownership was already
// verified by the route middleware.
func (h *APIHandler) completeWorld(c *gin.Context) {
	identity := identityFromContext(c)
	id := resourceIDFromContext(c)

	tree, err := h.Dashboard.CompleteWorld(c.Request.Context(), identity, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, tree)
}
