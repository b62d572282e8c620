package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hfdstore/storefront/internal/middleware"
	"github.com/hfdstore/storefront/internal/models"
)

// AuthService defines the authentication operations required by the
// HTTP handlers.
type AuthService interface {
	Register(ctx context.Context, name, email, password, phone string) (models.User, string, error)
	Login(ctx context.Context, email, password string) (models.User, string, error)
	Profile(ctx context.Context, userID string) (models.ProfileData, error)
	UpdateProfile(ctx context.Context, userID string, p models.ProfileData) error
}

// AuthHandler handles registration, login and profile requests.
type AuthHandler struct {
	AuthService AuthService
}

// RegisterRequest is the JSON payload for POST /api/users/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// LoginRequest is the JSON payload for POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and responds with the user projection
// and a session token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	user, token, err := h.AuthService.Register(r.Context(), req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAuthData(w, http.StatusCreated, map[string]any{"user": user}, token)
}

// Login authenticates credentials and responds with the user
// projection and a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAuthData(w, http.StatusOK, map[string]any{"user": user}, token)
}

// Profile returns the authenticated user's shipping profile.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	p, err := h.AuthService.Profile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

// UpdateProfile writes the authenticated user's shipping profile.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	var p models.ProfileData
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.AuthService.UpdateProfile(r.Context(), userID, p); err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}
