// Package models defines the data types shared between the storefront
// client, the reference backend, and the persistence layer.
package models

import "time"

// User is a display-only projection of the account holder. It is not a
// credential: the bearer token alone decides whether a session exists.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileData holds the checkout/shipping details editable on the
// profile page. Cached locally per email so a reload can prefill the
// checkout form before the backend profile is re-fetched.
type ProfileData struct {
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
}

// Product is a catalog entry. ID is a stable string identifier; it may
// be a normalized form of a backend document id.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Images        []string `json:"images,omitempty"`
	Category      string   `json:"category"`
	IsNew         bool     `json:"isNew,omitempty"`
	IsBestseller  bool     `json:"isBestseller,omitempty"`
	Description   string   `json:"description,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	Reviews       int      `json:"reviews,omitempty"`
}

// CartItem is a cart line. ItemID is the backend line id and exists
// only for server-tracked lines; anonymous carts never carry one.
type CartItem struct {
	Product
	Quantity int    `json:"quantity"`
	ItemID   string `json:"itemId,omitempty"`
}

// CartRow is a normalized backend cart line before it is joined with
// the catalog: product reference, quantity, optional line id.
type CartRow struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	ItemID    string `json:"itemId,omitempty"`
}

// Order statuses accepted by PATCH /api/orders/:id/status.
const (
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
)

// ValidOrderStatus reports whether s is one of the accepted statuses.
func ValidOrderStatus(s string) bool {
	return s == OrderConfirmed || s == OrderShipped || s == OrderDelivered
}

// ShippingAddress is the delivery destination captured at checkout.
type ShippingAddress struct {
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	AddressLine1 string `json:"addressLine1" validate:"required"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
	Pincode      string `json:"pincode" validate:"required"`
}

// OrderItem is a priced snapshot of a cart line at checkout time.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is created as a side effect of checkout and is immutable from
// the client's perspective afterwards, except for Status which only the
// backend/admin path changes.
type Order struct {
	ID              string          `json:"id"`
	CreatedAt       time.Time       `json:"createdAt"`
	Status          string          `json:"status"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Subtotal        float64         `json:"subtotal"`
	Shipping        float64         `json:"shipping"`
	Total           float64         `json:"total"`
	PaymentMethod   string          `json:"paymentMethod"`
}

// CreateOrderRequest is the checkout submission payload.
type CreateOrderRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress" validate:"required"`
	PaymentMethod   string          `json:"paymentMethod" validate:"required"`
	Shipping        float64         `json:"shipping,omitempty"`
}

// BannerContent is the announcement strip above the header.
type BannerContent struct {
	Text string `json:"text"`
}

// HeroContent is the editable landing-page hero block.
type HeroContent struct {
	Badge           string `json:"badge"`
	HeadlineLine1   string `json:"headlineLine1"`
	HeadlineLine2   string `json:"headlineLine2"`
	Description     string `json:"description"`
	ImageURL        string `json:"imageUrl"`
	CTAPrimary      string `json:"ctaPrimary"`
	CTASecondary    string `json:"ctaSecondary"`
	TrendingLabel   string `json:"trendingLabel"`
	TrendingSubtext string `json:"trendingSubtext"`
}

// HeadingsContent holds the editable section headings.
type HeadingsContent struct {
	BestsellingTitle    string `json:"bestsellingTitle"`
	BestsellingSubtitle string `json:"bestsellingSubtitle"`
	CategoriesTitle     string `json:"categoriesTitle"`
	CategoriesSubtitle  string `json:"categoriesSubtitle"`
}

// Category is a storefront navigation entry.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Settings holds the store-wide values editable from the admin console.
type Settings struct {
	ShippingCost float64 `json:"shippingCost"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	Revenue      float64 `json:"revenue"`
	ActiveOrders int     `json:"activeOrders"`
	Products     int     `json:"products"`
	ActiveUsers  int     `json:"activeUsers"`
}
