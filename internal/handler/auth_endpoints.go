package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// signUp registers an account with the identity provider and opens a
// session.
func (h *APIHandler) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	profile, tokens, err := h.Auth.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	signupsTotal.Inc()
	h.respondData(c, http.StatusCreated, authResponse{
		User:         profile,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// login exchanges credentials for a session token pair.
func (h *APIHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	profile, tokens, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	loginsTotal.Inc()
	h.respondData(c, http.StatusOK, authResponse{
		User:         profile,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// logout revokes the refresh token and its paired access token.
func (h *APIHandler) logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	if err := h.Auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// refresh rotates the session token pair.
func (h *APIHandler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondValidationError(c, err)
		return
	}

	tokens, err := h.Auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, authResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// getMe returns the caller's mirrored profile.
func (h *APIHandler) getMe(c *gin.Context) {
	identity := identityFromContext(c)

	profile, err := h.Profiles.GetByID(c.Request.Context(), identity.UserID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.respondData(c, http.StatusOK, profile)
}
