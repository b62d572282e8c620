package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hfdstore/storefront/internal/models"
)

// Endpoint groups. Every method returns the decoded, envelope-unwrapped
// response as-is; normalization into typed values is the caller's job
// because the backend shape drifts across revisions.

// RegisterBody is the registration payload.
type RegisterBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Role     string `json:"role,omitempty"`
}

// ProductQuery filters and paginates GET /api/products.
type ProductQuery struct {
	Category string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Page     int
	Limit    int
}

func (q ProductQuery) encode() string {
	sp := url.Values{}
	if q.Category != "" {
		sp.Set("category", q.Category)
	}
	if q.Search != "" {
		sp.Set("search", q.Search)
	}
	if q.MinPrice != nil {
		sp.Set("minPrice", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		sp.Set("maxPrice", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	if q.Page > 0 {
		sp.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		sp.Set("limit", strconv.Itoa(q.Limit))
	}
	return sp.Encode()
}

// --- Auth / Users ---

func (c *Client) Login(ctx context.Context, email, password string) (any, error) {
	body := map[string]string{"email": email, "password": password}
	return c.Do(ctx, http.MethodPost, "/api/users/login", body, &RequestOptions{SkipAuth: true})
}

func (c *Client) Register(ctx context.Context, body RegisterBody) (any, error) {
	return c.Do(ctx, http.MethodPost, "/api/users/register", body, &RequestOptions{SkipAuth: true})
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (any, error) {
	body := map[string]string{"email": email}
	return c.Do(ctx, http.MethodPost, "/api/users/forgot-password", body, &RequestOptions{SkipAuth: true})
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (any, error) {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return c.Do(ctx, http.MethodPost, "/api/users/reset-password", body, &RequestOptions{SkipAuth: true})
}

func (c *Client) Profile(ctx context.Context) (any, error) {
	return c.Do(ctx, http.MethodGet, "/api/users/profile", nil, nil)
}

func (c *Client) UpdateProfile(ctx context.Context, body any) (any, error) {
	return c.Do(ctx, http.MethodPut, "/api/users/profile", body, nil)
}

// --- Products ---

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (any, error) {
	path := "/api/products"
	if enc := q.encode(); enc != "" {
		path += "?" + enc
	}
	return c.Do(ctx, http.MethodGet, path, nil, nil)
}

func (c *Client) GetProduct(ctx context.Context, id string) (any, error) {
	return c.Do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, nil)
}

func (c *Client) CreateProduct(ctx context.Context, body any) (any, error) {
	return c.Do(ctx, http.MethodPost, "/api/products", body, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, body any) (any, error) {
	return c.Do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), body, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) (any, error) {
	return c.Do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil)
}

// --- Cart ---

// GetCart fetches the authenticated cart. The timestamp parameter
// busts intermediary caches so a refetch after add always sees fresh
// data.
func (c *Client) GetCart(ctx context.Context) (any, error) {
	path := fmt.Sprintf("/api/cart?t=%d", time.Now().UnixMilli())
	return c.Do(ctx, http.MethodGet, path, nil, nil)
}

func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) (any, error) {
	body := map[string]any{"productId": productID, "quantity": quantity}
	return c.Do(ctx, http.MethodPost, "/api/cart", body, nil)
}

func (c *Client) UpdateCartItem(ctx context.Context, itemID string, quantity int) (any, error) {
	body := map[string]any{"quantity": quantity}
	return c.Do(ctx, http.MethodPut, "/api/cart/"+url.PathEscape(itemID), body, nil)
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID string) (any, error) {
	return c.Do(ctx, http.MethodDelete, "/api/cart/"+url.PathEscape(itemID), nil, nil)
}

func (c *Client) ClearCart(ctx context.Context) (any, error) {
	return c.Do(ctx, http.MethodDelete, "/api/cart", nil, nil)
}

// --- Orders ---

type PageQuery struct {
	Page  int
	Limit int
}

func (q PageQuery) encode() string {
	sp := url.Values{}
	if q.Page > 0 {
		sp.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		sp.Set("limit", strconv.Itoa(q.Limit))
	}
	return sp.Encode()
}

func (c *Client) CreateOrder(ctx context.Context, body models.CreateOrderRequest) (any, error) {
	return c.Do(ctx, http.MethodPost, "/api/orders", body, nil)
}

func (c *Client) ListOrders(ctx context.Context, q PageQuery) (any, error) {
	path := "/api/orders"
	if enc := q.encode(); enc != "" {
		path += "?" + enc
	}
	return c.Do(ctx, http.MethodGet, path, nil, nil)
}

func (c *Client) GetOrder(ctx context.Context, id string) (any, error) {
	return c.Do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, nil)
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (any, error) {
	body := map[string]string{"status": status}
	return c.Do(ctx, http.MethodPatch, "/api/orders/"+url.PathEscape(id)+"/status", body, nil)
}

// ListAllOrders is the admin view across every user.
func (c *Client) ListAllOrders(ctx context.Context, q PageQuery) (any, error) {
	path := "/api/orders/admin"
	if enc := q.encode(); enc != "" {
		path += "?" + enc
	}
	return c.Do(ctx, http.MethodGet, path, nil, nil)
}

// --- Settings ---

func (c *Client) GetSettings(ctx context.Context) (any, error) {
	return c.Do(ctx, http.MethodGet, "/api/settings", nil, &RequestOptions{SkipAuth: true})
}

func (c *Client) AdminGetSettings(ctx context.Context) (any, error) {
	return c.Do(ctx, http.MethodGet, "/api/admin/settings", nil, nil)
}

func (c *Client) AdminUpdateSettings(ctx context.Context, s models.Settings) (any, error) {
	return c.Do(ctx, http.MethodPut, "/api/admin/settings", s, nil)
}

// --- Admin inventory ---

func (c *Client) AdminCreateProduct(ctx context.Context, product any, quantity int) (any, error) {
	body := map[string]any{"product": product, "quantity": quantity}
	return c.Do(ctx, http.MethodPost, "/api/admin/inventory/products", body, nil)
}

func (c *Client) AdminUpdateProduct(ctx context.Context, productID string, product any, quantity *int) (any, error) {
	body := map[string]any{}
	if product != nil {
		body["product"] = product
	}
	if quantity != nil {
		body["quantity"] = *quantity
	}
	return c.Do(ctx, http.MethodPut, "/api/admin/inventory/products/"+url.PathEscape(productID), body, nil)
}

// InventoryItem is one row of a bulk stock upload.
type InventoryItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (c *Client) UploadInventory(ctx context.Context, items []InventoryItem) (any, error) {
	body := map[string]any{"items": items}
	return c.Do(ctx, http.MethodPost, "/api/admin/inventory/upload", body, nil)
}

// --- Analytics ---

func (c *Client) AnalyticsStats(ctx context.Context) (any, error) {
	return c.Do(ctx, http.MethodGet, "/api/analytics/stats", nil, nil)
}

func (c *Client) AnalyticsTimeStats(ctx context.Context) (any, error) {
	return c.Do(ctx, http.MethodGet, "/api/analytics/time-stats", nil, nil)
}

func (c *Client) AnalyticsRecentVisits(ctx context.Context) (any, error) {
	return c.Do(ctx, http.MethodGet, "/api/analytics/recent-visits", nil, nil)
}

// --- General ---

func (c *Client) Health(ctx context.Context) (any, error) {
	return c.Do(ctx, http.MethodGet, "/health", nil, &RequestOptions{SkipAuth: true})
}
