package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hfdstore/storefront/internal/models"
	"github.com/hfdstore/storefront/internal/repository"
	"github.com/hfdstore/storefront/internal/service"
)

// CatalogService defines the catalog operations required by the HTTP
// handlers.
type CatalogService interface {
	List(ctx context.Context, f repository.ProductFilter) ([]models.Product, service.Pagination, error)
	Get(ctx context.Context, id string) (models.Product, error)
	Create(ctx context.Context, p models.Product) (models.Product, error)
	Update(ctx context.Context, id string, p models.Product) (models.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductHandler handles catalog requests.
type ProductHandler struct {
	Catalog CatalogService
}

// List serves GET /api/products with category/search/price filters and
// pagination.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.ProductFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
	if v, err := strconv.ParseFloat(q.Get("minPrice"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(q.Get("maxPrice"), 64); err == nil {
		f.MaxPrice = &v
	}
	f.Page, _ = strconv.Atoi(q.Get("page"))
	f.Limit, _ = strconv.Atoi(q.Get("limit"))

	products, pagination, err := h.Catalog.List(r.Context(), f)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	writeData(w, http.StatusOK, map[string]any{
		"products":   products,
		"pagination": pagination,
	})
}

// Get serves GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

// Create serves POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	created, err := h.Catalog.Create(r.Context(), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, created)
}

// Update serves PUT /api/products/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	updated, err := h.Catalog.Update(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}

// Delete serves DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminCreate serves POST /api/admin/inventory/products, which wraps
// the product in an inventory envelope.
func (h *ProductHandler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Product  models.Product `json:"product"`
		Quantity int            `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	created, err := h.Catalog.Create(r.Context(), req.Product)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusCreated, created)
}

// AdminUpdate serves PUT /api/admin/inventory/products/{id}.
func (h *ProductHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Product  *models.Product `json:"product"`
		Quantity *int            `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Product == nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	updated, err := h.Catalog.Update(r.Context(), chi.URLParam(r, "id"), *req.Product)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeData(w, http.StatusOK, updated)
}
