// Package catalog holds the product list and the editable site
// content. The storefront path fetches the catalog wholesale from the
// backend; the admin path mutates it through backend-first CRUD calls
// that only touch the local cache after the backend confirms. Site
// content is purely local-persisted.
package catalog

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/hfdstore/storefront/internal/client/api"
	"github.com/hfdstore/storefront/internal/client/localstore"
	"github.com/hfdstore/storefront/internal/models"
)

// listLimit approximates "all products" on the paginated endpoint.
const listLimit = 500

// Cache is the catalog cache and site-content store.
type Cache struct {
	api   *api.Client
	store *localstore.Store
	log   *zap.Logger

	mu       sync.Mutex
	products []models.Product
	banner   models.BannerContent
	hero     models.HeroContent
	headings models.HeadingsContent
}

// New builds a Cache seeded from the local store: persisted product
// overrides (else built-in defaults) and persisted site content merged
// over the defaults.
func New(client *api.Client, store *localstore.Store, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Cache{
		api:      client,
		store:    store,
		log:      log,
		banner:   defaultBanner,
		hero:     defaultHero,
		headings: defaultHeadings,
	}
	var persisted []models.Product
	if store.GetJSON(localstore.KeyProducts, &persisted) && len(persisted) > 0 {
		c.products = persisted
	} else {
		c.products = DefaultProducts()
	}
	store.GetJSON(localstore.KeyBanner, &c.banner)
	store.GetJSON(localstore.KeyHero, &c.hero)
	store.GetJSON(localstore.KeyHeadings, &c.headings)
	return c
}

// Load fetches the full product list from the backend and replaces the
// cache. On failure the locally seeded catalog stays in place and the
// error is returned.
func (c *Cache) Load(ctx context.Context) error {
	res, err := c.api.ListProducts(ctx, api.ProductQuery{Limit: listLimit})
	if err != nil {
		c.log.Warn("catalog load failed, keeping local catalog", zap.Error(err))
		return err
	}
	list := api.ProductsFromResponse(res)
	if len(list) == 0 {
		// "No server data yet" is not an error; keep what we have.
		return nil
	}
	c.mu.Lock()
	c.products = list
	c.mu.Unlock()
	c.persistProducts()
	return nil
}

// Products returns a copy of the cached catalog.
func (c *Cache) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Product looks up a cached product by id.
func (c *Cache) Product(id string) (models.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Categories returns the storefront navigation categories.
func (c *Cache) Categories() []models.Category {
	out := make([]models.Category, len(defaultCategories))
	copy(out, defaultCategories)
	return out
}

// AddProduct creates the product on the backend first; the cache is
// appended only after the backend confirms. Catalog edits are
// admin-only and must not silently diverge from the backend record, so
// there is no optimistic path here.
func (c *Cache) AddProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if p.Price < 0 {
		return models.Product{}, fmt.Errorf("product price must not be negative")
	}
	if p.ID == "" {
		p.ID = c.nextID()
	}
	res, err := c.api.CreateProduct(ctx, p)
	if err != nil {
		return models.Product{}, err
	}
	if raw, ok := res.(map[string]any); ok {
		if created := api.ProductFromRecord(raw); created.ID != "" {
			p = created
		}
	}
	c.mu.Lock()
	c.products = append(c.products, p)
	c.mu.Unlock()
	c.persistProducts()
	return p, nil
}

// UpdateProduct writes the product to the backend and patches the
// cache on success. Backend failure leaves the cache untouched.
func (c *Cache) UpdateProduct(ctx context.Context, id string, p models.Product) error {
	if p.Price < 0 {
		return fmt.Errorf("product price must not be negative")
	}
	p.ID = id
	if _, err := c.api.UpdateProduct(ctx, id, p); err != nil {
		return err
	}
	c.mu.Lock()
	for i := range c.products {
		if c.products[i].ID == id {
			c.products[i] = p
			break
		}
	}
	c.mu.Unlock()
	c.persistProducts()
	return nil
}

// RemoveProduct deletes on the backend and filters the cache on
// success.
func (c *Cache) RemoveProduct(ctx context.Context, id string) error {
	if _, err := c.api.DeleteProduct(ctx, id); err != nil {
		return err
	}
	c.mu.Lock()
	kept := c.products[:0]
	for _, p := range c.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.products = kept
	c.mu.Unlock()
	c.persistProducts()
	return nil
}

func (c *Cache) persistProducts() {
	c.mu.Lock()
	snapshot := make([]models.Product, len(c.products))
	copy(snapshot, c.products)
	c.mu.Unlock()
	if err := c.store.SetJSON(localstore.KeyProducts, snapshot); err != nil {
		c.log.Warn("persist products failed", zap.Error(err))
	}
}

// nextID continues the numeric id sequence of the built-in catalog.
func (c *Cache) nextID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	max := 0
	for _, p := range c.products {
		if n, err := strconv.Atoi(p.ID); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

// --- Site content: local-persisted editable value objects ---

func (c *Cache) Banner() models.BannerContent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.banner
}

func (c *Cache) SetBanner(b models.BannerContent) {
	c.mu.Lock()
	c.banner = b
	c.mu.Unlock()
	_ = c.store.SetJSON(localstore.KeyBanner, b)
}

func (c *Cache) Hero() models.HeroContent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hero
}

func (c *Cache) SetHero(h models.HeroContent) {
	c.mu.Lock()
	c.hero = h
	c.mu.Unlock()
	_ = c.store.SetJSON(localstore.KeyHero, h)
}

func (c *Cache) Headings() models.HeadingsContent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.headings
}

func (c *Cache) SetHeadings(h models.HeadingsContent) {
	c.mu.Lock()
	c.headings = h
	c.mu.Unlock()
	_ = c.store.SetJSON(localstore.KeyHeadings, h)
}

// ResetToDefaults restores the built-in content and catalog and
// persists them.
func (c *Cache) ResetToDefaults() {
	c.mu.Lock()
	c.banner = defaultBanner
	c.hero = defaultHero
	c.headings = defaultHeadings
	c.products = DefaultProducts()
	c.mu.Unlock()
	_ = c.store.SetJSON(localstore.KeyBanner, defaultBanner)
	_ = c.store.SetJSON(localstore.KeyHero, defaultHero)
	_ = c.store.SetJSON(localstore.KeyHeadings, defaultHeadings)
	c.persistProducts()
}
