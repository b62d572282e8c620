package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hfdstore/storefront/internal/models"
	"github.com/hfdstore/storefront/internal/repository"
	"github.com/hfdstore/storefront/internal/service"
)

// fakeCartService implements CartService for testing.
type fakeCartService struct {
	rows    []models.CartRow
	rowsErr error

	addErr    error
	updateErr error
	removeErr error
	clearErr  error

	gotProductID string
	gotLineID    string
	gotQuantity  int
}

func (f *fakeCartService) Rows(ctx context.Context, userID string) ([]models.CartRow, error) {
	return f.rows, f.rowsErr
}

func (f *fakeCartService) Add(ctx context.Context, userID, productID string, quantity int) error {
	f.gotProductID = productID
	f.gotQuantity = quantity
	return f.addErr
}

func (f *fakeCartService) Update(ctx context.Context, userID, lineID string, quantity int) error {
	f.gotLineID = lineID
	f.gotQuantity = quantity
	return f.updateErr
}

func (f *fakeCartService) Remove(ctx context.Context, userID, lineID string) error {
	f.gotLineID = lineID
	return f.removeErr
}

func (f *fakeCartService) Clear(ctx context.Context, userID string) error {
	return f.clearErr
}

func cartRouter(svc CartService) http.Handler {
	h := &CartHandler{Cart: svc}
	r := chi.NewRouter()
	r.Get("/api/cart", h.Get)
	r.Post("/api/cart", h.Add)
	r.Put("/api/cart/{itemId}", h.Update)
	r.Delete("/api/cart/{itemId}", h.Remove)
	r.Delete("/api/cart", h.Clear)
	return r
}

func TestCartHandler_GetEnvelopeShape(t *testing.T) {
	svc := &fakeCartService{rows: []models.CartRow{
		{ProductID: "p1", Quantity: 2, ItemID: "line-1"},
	}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/cart", nil)
	cartRouter(svc).ServeHTTP(rec, req)
	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var payload struct {
		Success bool `json:"success"`
		Data    struct {
			Cart struct {
				Items []models.CartRow `json:"items"`
			} `json:"cart"`
		} `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if !payload.Success {
		t.Errorf("expected success=true")
	}
	if len(payload.Data.Cart.Items) != 1 || payload.Data.Cart.Items[0].ItemID != "line-1" {
		t.Errorf("unexpected cart items: %+v", payload.Data.Cart.Items)
	}
}

func TestCartHandler_GetEmptyCartIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/cart", nil)
	cartRouter(&fakeCartService{}).ServeHTTP(rec, req)

	body := rec.Body.String()
	if !bytes.Contains([]byte(body), []byte(`"items":[]`)) {
		t.Errorf("expected empty items array, got %q", body)
	}
}

func TestCartHandler_Add(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		service      *fakeCartService
		expectedCode int
	}{
		{
			name:         "invalid JSON",
			body:         `{{{`,
			service:      &fakeCartService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "bad quantity",
			body:         `{"productId":"p1","quantity":0}`,
			service:      &fakeCartService{addErr: service.ErrBadQuantity},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "service failure",
			body:         `{"productId":"p1","quantity":1}`,
			service:      &fakeCartService{addErr: errors.New("db down")},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "success",
			body:         `{"productId":"p1","quantity":2}`,
			service:      &fakeCartService{},
			expectedCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/cart", bytes.NewBufferString(tt.body))
			cartRouter(tt.service).ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}

func TestCartHandler_AddPassesFields(t *testing.T) {
	svc := &fakeCartService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/cart",
		bytes.NewBufferString(`{"productId":"p9","quantity":3}`))
	cartRouter(svc).ServeHTTP(rec, req)

	if svc.gotProductID != "p9" || svc.gotQuantity != 3 {
		t.Errorf("expected p9/3, got %s/%d", svc.gotProductID, svc.gotQuantity)
	}
}

func TestCartHandler_UpdateUsesPathItemID(t *testing.T) {
	svc := &fakeCartService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/cart/line-7",
		bytes.NewBufferString(`{"quantity":4}`))
	cartRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.gotLineID != "line-7" || svc.gotQuantity != 4 {
		t.Errorf("expected line-7/4, got %s/%d", svc.gotLineID, svc.gotQuantity)
	}
}

func TestCartHandler_RemoveNotFound(t *testing.T) {
	svc := &fakeCartService{removeErr: repository.ErrNotFound}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/cart/missing", nil)
	cartRouter(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCartHandler_RemoveSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/cart/line-1", nil)
	cartRouter(&fakeCartService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestCartHandler_ClearSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/api/cart", nil)
	cartRouter(&fakeCartService{}).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
