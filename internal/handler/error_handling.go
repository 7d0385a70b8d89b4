package handler

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"worldforge-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondData wraps a payload in the success envelope.
func (h *APIHandler) respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.NewSuccessResponse(data))
}

// respondError writes the uniform error envelope. Stack traces are
// attached only in development mode and only for server-side failures.
func (h *APIHandler) respondError(c *gin.Context, status int, code, message string) {
	resp := models.NewErrorResponse(message, code, c.Request.URL.Path)
	if h.devMode && status >= http.StatusInternalServerError {
		resp.Stack = string(debug.Stack())
	}
	c.AbortWithStatusJSON(status, resp)
}

// handleServiceError maps service and repository errors onto HTTP
// status codes and stable error codes. Anything unrecognized becomes an
// opaque 500 so internals never leak.
func (h *APIHandler) handleServiceError(c *gin.Context, err error) {
	var apiErr *models.APIError
	if errors.As(err, &apiErr) {
		h.respondError(c, apiErr.Status, apiErr.Code, apiErr.Message)
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		h.respondError(c, http.StatusNotFound, models.ErrCodeNotFound, "Resource not found")
	case errors.Is(err, models.ErrInvalidCredentials):
		h.respondError(c, http.StatusUnauthorized, models.ErrCodeInvalidToken, "Invalid email or password")
	case errors.Is(err, models.ErrTokenExpired):
		h.respondError(c, http.StatusUnauthorized, models.ErrCodeInvalidToken, "Token has expired")
	case errors.Is(err, models.ErrTokenRevoked):
		h.respondError(c, http.StatusUnauthorized, models.ErrCodeInvalidToken, "Token has been revoked")
	case errors.Is(err, models.ErrTokenInvalid), errors.Is(err, models.ErrUnauthorized):
		h.respondError(c, http.StatusUnauthorized, models.ErrCodeInvalidToken, "Invalid or malformed token")
	case errors.Is(err, models.ErrForbidden):
		h.respondError(c, http.StatusForbidden, models.ErrCodeForbidden, "Access denied")
	case errors.Is(err, models.ErrValidation):
		h.respondError(c, http.StatusBadRequest, models.ErrCodeValidation, err.Error())
	case errors.Is(err, models.ErrMethodNotAllowed):
		h.respondError(c, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed, "Method not allowed")
	case errors.Is(err, models.ErrUpstream):
		// Upstream failures are the server's problem, not the client's.
		zap.L().Error("Upstream dependency failure", zap.String("path", c.Request.URL.Path), zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, models.ErrCodeUpstream, "Upstream service unavailable")
	default:
		zap.L().Error("Unhandled service error", zap.String("path", c.Request.URL.Path), zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, models.ErrCodeInternal, "Internal server error")
	}
}

// respondValidationError reports a request-binding failure.
func (h *APIHandler) respondValidationError(c *gin.Context, err error) {
	h.respondError(c, http.StatusBadRequest, models.ErrCodeValidation, fmt.Sprintf("Invalid request body: %v", err))
}

// notFound handles requests for paths outside the route table. The
// offending path is echoed so clients can spot typos.
func (h *APIHandler) notFound(c *gin.Context) {
	h.respondError(c, http.StatusNotFound, models.ErrCodeNotFound,
		fmt.Sprintf("Route %s not found", c.Request.URL.Path))
}

// methodNotAllowed handles known paths hit with the wrong verb.
func (h *APIHandler) methodNotAllowed(c *gin.Context) {
	h.respondError(c, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed,
		fmt.Sprintf("Method %s not allowed for %s", c.Request.Method, c.Request.URL.Path))
}
