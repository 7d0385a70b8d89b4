package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"worldforge-server/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", models.ErrNotFound, http.StatusNotFound, models.ErrCodeNotFound},
		{"wrapped not found", fmt.Errorf("loading world: %w", models.ErrNotFound), http.StatusNotFound, models.ErrCodeNotFound},
		{"invalid credentials", models.ErrInvalidCredentials, http.StatusUnauthorized, models.ErrCodeInvalidToken},
		{"expired token", models.ErrTokenExpired, http.StatusUnauthorized, models.ErrCodeInvalidToken},
		{"revoked token", models.ErrTokenRevoked, http.StatusUnauthorized, models.ErrCodeInvalidToken},
		{"invalid token", models.ErrTokenInvalid, http.StatusUnauthorized, models.ErrCodeInvalidToken},
		{"unauthorized", models.ErrUnauthorized, http.StatusUnauthorized, models.ErrCodeInvalidToken},
		{"forbidden", models.ErrForbidden, http.StatusForbidden, models.ErrCodeForbidden},
		{"validation", models.ErrValidation, http.StatusBadRequest, models.ErrCodeValidation},
		{"method not allowed", models.ErrMethodNotAllowed, http.StatusMethodNotAllowed, models.ErrCodeMethodNotAllowed},
		{"upstream failure", models.ErrUpstream, http.StatusInternalServerError, models.ErrCodeUpstream},
		{"wrapped upstream failure", fmt.Errorf("%w: identity provider returned status 503", models.ErrUpstream), http.StatusInternalServerError, models.ErrCodeUpstream},
		{"unknown error", errors.New("dial tcp: connection refused"), http.StatusInternalServerError, models.ErrCodeInternal},
		{"api error pass-through", models.NewAPIError(http.StatusConflict, "CONFLICT", "World name already taken"), http.StatusConflict, "CONFLICT"},
	}

	h := NewAPIHandler(Deps{}, false)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/probe-path", nil)

			h.handleServiceError(c, tc.err)

			require.Equal(t, tc.wantStatus, w.Code)
			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tc.wantCode, resp.Code)
			assert.Equal(t, "/api/probe-path", resp.Path)
			assert.NotZero(t, resp.Timestamp)
		})
	}
}

func TestAPIErrorMessagePassedThroughUnchanged(t *testing.T) {
	h := NewAPIHandler(Deps{}, false)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/user/worlds", nil)

	h.handleServiceError(c, models.NewAPIError(http.StatusConflict, "CONFLICT", "World name already taken"))

	require.Equal(t, http.StatusConflict, w.Code)
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CONFLICT", resp.Code)
	assert.Equal(t, "World name already taken", resp.Error,
		"an APIError carries its own status, code and message through the normalizer")
}
