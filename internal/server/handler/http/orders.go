package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hfdstore/storefront/internal/middleware"
	"github.com/hfdstore/storefront/internal/models"
)

// OrderService defines the order operations required by the HTTP
// handlers.
type OrderService interface {
	Create(ctx context.Context, userID string, req models.CreateOrderRequest) (models.Order, error)
	List(ctx context.Context, userID string, page, limit int) ([]models.Order, int, error)
	Get(ctx context.Context, userID, orderID string) (models.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
}

// OrderHandler handles checkout and order history.
type OrderHandler struct {
	Orders OrderService
}

// Create serves POST /api/orders: checkout of the current cart.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	order, err := h.Orders.Create(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, order)
}

// List serves GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	orders, total, err := h.Orders.List(r.Context(), userID, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	writeData(w, http.StatusOK, map[string]any{
		"orders": orders,
		"pagination": map[string]any{
			"page": max(page, 1), "limit": limit, "total": total,
		},
	})
}

// Get serves GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())
	order, err := h.Orders.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, order)
}

// UpdateStatus serves PATCH /api/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := h.Orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{"status": req.Status})
}
