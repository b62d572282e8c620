package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hfdstore/storefront/internal/client/api"
	"github.com/hfdstore/storefront/internal/client/localstore"
	"github.com/hfdstore/storefront/internal/models"
)

func newCache(t *testing.T, handler http.Handler) (*Cache, *localstore.Store) {
	t.Helper()
	store, err := localstore.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	var client *api.Client
	if handler != nil {
		srv := httptest.NewServer(handler)
		t.Cleanup(srv.Close)
		client = api.New(srv.URL, store, nil)
		client.SetHTTPClient(srv.Client())
	} else {
		client = api.New("http://127.0.0.1:1", store, nil)
	}
	return New(client, store, nil), store
}

func TestNewSeedsBuiltinCatalog(t *testing.T) {
	c, _ := newCache(t, nil)

	products := c.Products()
	require.NotEmpty(t, products)
	assert.Equal(t, "1", products[0].ID)
	assert.NotEmpty(t, c.Categories())
	assert.NotEmpty(t, c.Banner().Text)
}

func TestNewPrefersPersistedCatalog(t *testing.T) {
	store, err := localstore.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	saved := []models.Product{{ID: "42", Name: "Saved", Price: 100}}
	require.NoError(t, store.SetJSON(localstore.KeyProducts, saved))

	client := api.New("http://127.0.0.1:1", store, nil)
	c := New(client, store, nil)

	assert.Equal(t, saved, c.Products())
}

func TestLoadReplacesCatalogFromBackend(t *testing.T) {
	c, store := newCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"products":[{"id":"p1","name":"Remote","price":500}]}}`))
	}))

	require.NoError(t, c.Load(context.Background()))

	products := c.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Remote", products[0].Name)

	// The fetched catalog is persisted for the next session.
	var persisted []models.Product
	require.True(t, store.GetJSON(localstore.KeyProducts, &persisted))
	assert.Equal(t, products, persisted)
}

func TestLoadFailureKeepsLocalCatalog(t *testing.T) {
	c, _ := newCache(t, nil)
	before := c.Products()

	err := c.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, before, c.Products())
}

func TestLoadEmptyResponseKeepsLocalCatalog(t *testing.T) {
	c, _ := newCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"products":[]}}`))
	}))
	before := c.Products()

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, before, c.Products())
}

func TestAddProductBackendFirst(t *testing.T) {
	c, _ := newCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"id":"7","name":"Created","price":1500}}`))
	}))

	created, err := c.AddProduct(context.Background(), models.Product{Name: "Created", Price: 1500})
	require.NoError(t, err)
	assert.Equal(t, "7", created.ID)

	_, ok := c.Product("7")
	assert.True(t, ok)
}

func TestAddProductFailureLeavesCacheUntouched(t *testing.T) {
	c, _ := newCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	before := len(c.Products())

	_, err := c.AddProduct(context.Background(), models.Product{Name: "Nope", Price: 10})
	require.Error(t, err)
	assert.Len(t, c.Products(), before)
}

func TestAddProductRejectsNegativePrice(t *testing.T) {
	c, _ := newCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	_, err := c.AddProduct(context.Background(), models.Product{Name: "Bad", Price: -1})
	assert.Error(t, err)
}

func TestAddProductContinuesNumericIDSequence(t *testing.T) {
	var gotID string
	c, _ := newCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))

	created, err := c.AddProduct(context.Background(), models.Product{Name: "Next", Price: 10})
	require.NoError(t, err)
	gotID = created.ID

	// Built-in catalog ends at "6".
	assert.Equal(t, "7", gotID)
}

func TestUpdateProductPatchesCacheOnSuccess(t *testing.T) {
	c, _ := newCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	require.NoError(t, c.UpdateProduct(context.Background(), "1", models.Product{Name: "Renamed", Price: 999}))

	p, ok := c.Product("1")
	require.True(t, ok)
	assert.Equal(t, "Renamed", p.Name)
	assert.Equal(t, 999.0, p.Price)
}

func TestUpdateProductFailureLeavesCacheUntouched(t *testing.T) {
	c, _ := newCache(t, nil)
	before, ok := c.Product("1")
	require.True(t, ok)

	err := c.UpdateProduct(context.Background(), "1", models.Product{Name: "Renamed", Price: 999})
	require.Error(t, err)

	after, _ := c.Product("1")
	assert.Equal(t, before, after)
}

func TestRemoveProductFiltersCacheOnSuccess(t *testing.T) {
	c, _ := newCache(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.RemoveProduct(context.Background(), "1"))
	_, ok := c.Product("1")
	assert.False(t, ok)
}

func TestSiteContentPersistsAcrossSessions(t *testing.T) {
	store, err := localstore.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	client := api.New("http://127.0.0.1:1", store, nil)
	c := New(client, store, nil)
	c.SetBanner(models.BannerContent{Text: "Monsoon Sale"})
	c.SetHero(models.HeroContent{HeadlineLine1: "New Arrivals"})

	again := New(client, store, nil)
	assert.Equal(t, "Monsoon Sale", again.Banner().Text)
	assert.Equal(t, "New Arrivals", again.Hero().HeadlineLine1)
}

func TestResetToDefaults(t *testing.T) {
	c, _ := newCache(t, nil)
	c.SetBanner(models.BannerContent{Text: "Custom"})

	c.ResetToDefaults()

	assert.Equal(t, defaultBanner, c.Banner())
	assert.Equal(t, DefaultProducts(), c.Products())
}
