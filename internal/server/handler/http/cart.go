package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hfdstore/storefront/internal/middleware"
	"github.com/hfdstore/storefront/internal/models"
)

// CartService defines the cart operations required by the HTTP
// handlers.
type CartService interface {
	Rows(ctx context.Context, userID string) ([]models.CartRow, error)
	Add(ctx context.Context, userID, productID string, quantity int) error
	Update(ctx context.Context, userID, lineID string, quantity int) error
	Remove(ctx context.Context, userID, lineID string) error
	Clear(ctx context.Context, userID string) error
}

// CartHandler handles the authenticated cart endpoints.
type CartHandler struct {
	Cart CartService
}

// Get serves GET /api/cart. The response nests the lines as
// {cart:{items}}, one of the envelope shapes the client normalizes.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	rows, err := h.Cart.Rows(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if rows == nil {
		rows = []models.CartRow{}
	}
	writeData(w, http.StatusOK, map[string]any{
		"cart": map[string]any{"items": rows},
	})
}

// Add serves POST /api/cart {productId, quantity}.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	var req struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Cart.Add(r.Context(), userID, req.ProductID, req.Quantity); err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, map[string]any{"added": true})
}

// Update serves PUT /api/cart/{itemId} {quantity}.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Cart.Update(r.Context(), userID, chi.URLParam(r, "itemId"), req.Quantity); err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"updated": true})
}

// Remove serves DELETE /api/cart/{itemId}.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if err := h.Cart.Remove(r.Context(), userID, chi.URLParam(r, "itemId")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear serves DELETE /api/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	if err := h.Cart.Clear(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
