// Package http provides the HTTP handlers and routing for the
// storefront backend. All responses use the conventional envelopes:
// {success:true, data:...} on success and
// {success:false, error:{message}} on failure.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hfdstore/storefront/internal/repository"
	"github.com/hfdstore/storefront/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"success": true, "data": data})
}

// writeAuthData places the token as a sibling of data, the shape some
// backend revisions used and which the client's unwrap hoists.
func writeAuthData(w http.ResponseWriter, status int, data any, token string) {
	writeJSON(w, status, map[string]any{"success": true, "data": data, "token": token})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   map[string]any{"message": message},
	})
}

// writeServiceError maps service-layer sentinel errors to statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrBadQuantity),
		errors.Is(err, service.ErrBadStatus),
		errors.Is(err, service.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
