// Package cart reconciles the local cart with the backend cart. When a
// session exists the backend is the source of truth: mutations are
// applied optimistically, pushed to the backend, and resolved by a
// full refetch that replaces local state wholesale. Anonymous carts
// are local-only and never touch the network.
package cart

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hfdstore/storefront/internal/client/api"
	"github.com/hfdstore/storefront/internal/client/catalog"
	"github.com/hfdstore/storefront/internal/client/session"
	"github.com/hfdstore/storefront/internal/models"
)

// DefaultRefetchDelay is how long a successful add waits before the
// reconciling refetch, giving the backend time to coalesce lines or
// clamp to stock.
const DefaultRefetchDelay = 150 * time.Millisecond

// Notifier surfaces user-facing cart errors (toast equivalent).
type Notifier func(message string)

// Synchronizer is the cart state container.
type Synchronizer struct {
	api          *api.Client
	session      *session.Manager
	catalog      *catalog.Cache
	log          *zap.Logger
	notify       Notifier
	refetchDelay time.Duration

	mu    sync.Mutex
	items []models.CartItem
	open  bool
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithNotifier installs the user-facing error sink.
func WithNotifier(n Notifier) Option {
	return func(s *Synchronizer) { s.notify = n }
}

// WithRefetchDelay overrides the post-add reconciliation delay. A zero
// or negative delay makes the refetch synchronous.
func WithRefetchDelay(d time.Duration) Option {
	return func(s *Synchronizer) { s.refetchDelay = d }
}

// New builds a Synchronizer and subscribes it to auth transitions:
// logout clears the cart entirely (no bleed-through of the previous
// user's items into guest mode), login replaces any anonymous items
// with the backend-authoritative snapshot.
func New(client *api.Client, sess *session.Manager, cat *catalog.Cache, log *zap.Logger, opts ...Option) *Synchronizer {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Synchronizer{
		api:          client,
		session:      sess,
		catalog:      cat,
		log:          log,
		refetchDelay: DefaultRefetchDelay,
	}
	if s.notify == nil {
		s.notify = func(msg string) { log.Warn(msg) }
	}
	for _, opt := range opts {
		opt(s)
	}
	sess.OnChange(func(authenticated bool) {
		if !authenticated {
			s.setItems(nil)
			return
		}
		s.Refetch(context.Background())
	})
	return s
}

// Items returns a copy of the current cart lines.
func (s *Synchronizer) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count is the total quantity across all lines.
func (s *Synchronizer) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Subtotal is the price-weighted total of all lines.
func (s *Synchronizer) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, it := range s.items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// IsOpen reports the cart drawer state.
func (s *Synchronizer) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *Synchronizer) Open()  { s.mu.Lock(); s.open = true; s.mu.Unlock() }
func (s *Synchronizer) Close() { s.mu.Lock(); s.open = false; s.mu.Unlock() }

// AddItem merges the product into the cart optimistically (one line
// per product id, quantities summed). When authenticated it then
// pushes the add to the backend and schedules a reconciling refetch;
// a failed push surfaces an error and refetches immediately to discard
// the optimistic change.
func (s *Synchronizer) AddItem(ctx context.Context, product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, models.CartItem{Product: product, Quantity: quantity})
	}
	s.mu.Unlock()

	if !s.session.IsAuthenticated() {
		return
	}
	if _, err := s.api.AddToCart(ctx, product.ID, quantity); err != nil {
		s.log.Warn("cart add failed", zap.String("productId", product.ID), zap.Error(err))
		s.notify("Could not add to cart")
		s.Refetch(ctx)
		return
	}
	s.scheduleRefetch()
}

// UpdateQuantity sets a line's quantity. Anything below 1 is a
// removal. When authenticated and the line has a backend id, the
// update goes to the backend and both outcomes trigger a refetch; the
// failure path additionally surfaces an error.
func (s *Synchronizer) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity < 1 {
		s.RemoveItem(ctx, id)
		return
	}
	if s.session.IsAuthenticated() {
		if itemID := s.lineID(id); itemID != "" {
			if _, err := s.api.UpdateCartItem(ctx, itemID, quantity); err != nil {
				s.log.Warn("cart update failed", zap.String("itemId", itemID), zap.Error(err))
				s.notify("Could not update quantity")
			}
			s.Refetch(ctx)
			return
		}
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.mu.Unlock()
}

// RemoveItem deletes a line. When authenticated and the line has a
// backend id the delete goes to the backend and both outcomes trigger
// a refetch; otherwise the line is filtered out locally.
func (s *Synchronizer) RemoveItem(ctx context.Context, id string) {
	if s.session.IsAuthenticated() {
		if itemID := s.lineID(id); itemID != "" {
			if _, err := s.api.RemoveCartItem(ctx, itemID); err != nil {
				s.log.Warn("cart remove failed", zap.String("itemId", itemID), zap.Error(err))
				s.notify("Could not remove item")
			}
			s.Refetch(ctx)
			return
		}
	}
	s.mu.Lock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.mu.Unlock()
}

// ClearCart empties the cart. When authenticated the backend clear is
// best-effort: failure surfaces an error but never blocks emptying the
// local state.
func (s *Synchronizer) ClearCart(ctx context.Context) {
	if s.session.IsAuthenticated() {
		if _, err := s.api.ClearCart(ctx); err != nil {
			s.log.Warn("cart clear failed", zap.Error(err))
			s.notify("Could not clear cart")
		}
	}
	s.setItems(nil)
}

// Refetch replaces local state with the backend's authoritative
// snapshot. No-op when anonymous. Rows referencing products missing
// from the catalog cache get a placeholder product rather than being
// dropped. Any fetch failure empties the cart instead of leaving stale
// optimistic data.
func (s *Synchronizer) Refetch(ctx context.Context) {
	if !s.session.IsAuthenticated() {
		return
	}
	res, err := s.api.GetCart(ctx)
	if err != nil {
		s.log.Warn("cart fetch failed", zap.Error(err))
		s.setItems(nil)
		return
	}
	rows := api.CartRows(res)
	list := make([]models.CartItem, 0, len(rows))
	for _, row := range rows {
		product, ok := s.catalog.Product(row.ProductID)
		if !ok {
			product = placeholder(row.ProductID)
		}
		list = append(list, models.CartItem{
			Product:  product,
			Quantity: row.Quantity,
			ItemID:   row.ItemID,
		})
	}
	s.setItems(list)
}

func (s *Synchronizer) scheduleRefetch() {
	if s.refetchDelay <= 0 {
		s.Refetch(context.Background())
		return
	}
	time.AfterFunc(s.refetchDelay, func() {
		s.Refetch(context.Background())
	})
}

func (s *Synchronizer) setItems(items []models.CartItem) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
}

func (s *Synchronizer) lineID(productID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == productID {
			return it.ItemID
		}
	}
	return ""
}

// placeholder stands in for a cart row whose product is not in the
// catalog cache yet; the row is kept, not dropped.
func placeholder(productID string) models.Product {
	return models.Product{ID: productID, Name: "Product"}
}
