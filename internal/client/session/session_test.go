package session

import (
	"context"
	"encoding/json"
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

func newStore(t *testing.T) *localstore.Store {
	t.Helper()
	s, err := localstore.Open(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return s
}

func newManager(t *testing.T, handler http.Handler) (*Manager, *localstore.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := newStore(t)
	client := api.New(srv.URL, store, nil)
	client.SetHTTPClient(srv.Client())
	return New(client, store, nil), store
}

func authBackend(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"success":false,"error":{"message":"Invalid credentials"}}`))
			return
		}
		w.Write([]byte(`{"success":true,"token":"tok-1","data":{"user":{"name":"Asha","email":"` + body["email"] + `"}}}`))
	})
	mux.HandleFunc("/api/users/register", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"token":"tok-2","data":{"user":{"name":"New User","email":"new@example.com"}}}`))
	})
	return mux
}

func TestLoginEstablishesSession(t *testing.T) {
	m, store := newManager(t, authBackend(t))

	ok, err := m.Login(context.Background(), "Asha@Example.com", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, "tok-1", store.Token())

	u := m.User()
	require.NotNil(t, u)
	assert.Equal(t, "Asha", u.Name)
	assert.Equal(t, "asha@example.com", u.Email)
}

func TestLoginEmptyInputFailsWithoutNetwork(t *testing.T) {
	m, _ := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))

	ok, err := m.Login(context.Background(), "", "secret")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = m.Login(context.Background(), "a@b.c", "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, m.IsAuthenticated())
}

func TestLoginBadCredentialsReturnsError(t *testing.T) {
	m, store := newManager(t, authBackend(t))

	ok, err := m.Login(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)
	assert.False(t, ok)
	assert.Empty(t, store.Token())
	assert.Nil(t, m.User())
}

func TestLoginWithoutTokenEstablishesNothing(t *testing.T) {
	m, store := newManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"user":{"email":"a@b.c"}}}`))
	}))

	ok, err := m.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, store.Token())
	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.User())
}

func TestSignupAutoLoginFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/register", func(w http.ResponseWriter, r *http.Request) {
		// No token in the register response.
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"success":true,"data":{"user":{"email":"new@example.com"}}}`))
	})
	mux.HandleFunc("/api/users/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"token":"tok-fallback","data":{"user":{"name":"New","email":"new@example.com"}}}`))
	})
	m, store := newManager(t, mux)

	ok, err := m.Signup(context.Background(), "new@example.com", "secret", "New", "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-fallback", store.Token())
}

func TestSignupNoTokenAnywhereFails(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":{"user":{"email":"new@example.com"}}}`))
	})
	m, store := newManager(t, handler)

	ok, err := m.Signup(context.Background(), "new@example.com", "secret", "", "")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, store.Token())
	assert.Nil(t, m.User())
}

func TestLogoutClearsEverything(t *testing.T) {
	m, store := newManager(t, authBackend(t))

	ok, err := m.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	m.Logout()
	assert.False(t, m.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.Nil(t, m.User())

	var u models.User
	assert.False(t, store.GetJSON(localstore.KeyUser, &u))

	// Logging out twice is harmless.
	m.Logout()
}

func TestStartupReconciliationDropsOrphanedUser(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SetJSON(localstore.KeyUser, models.User{Name: "Ghost", Email: "ghost@example.com"}))

	client := api.New("http://127.0.0.1:1", store, nil)
	m := New(client, store, nil)

	assert.False(t, m.IsAuthenticated())
	assert.Nil(t, m.User())

	var u models.User
	assert.False(t, store.GetJSON(localstore.KeyUser, &u))
}

func TestStartupRestoresUserWhenTokenPresent(t *testing.T) {
	store := newStore(t)
	store.SetToken("tok-live")
	require.NoError(t, store.SetJSON(localstore.KeyUser, models.User{Name: "Asha", Email: "asha@example.com"}))

	client := api.New("http://127.0.0.1:1", store, nil)
	m := New(client, store, nil)

	assert.True(t, m.IsAuthenticated())
	u := m.User()
	require.NotNil(t, u)
	assert.Equal(t, "asha@example.com", u.Email)
}

func TestOnChangeFiresOnTransitions(t *testing.T) {
	m, _ := newManager(t, authBackend(t))

	var events []bool
	m.OnChange(func(authed bool) { events = append(events, authed) })

	ok, err := m.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	require.True(t, ok)
	m.Logout()

	assert.Equal(t, []bool{true, false}, events)
}

func TestProfileCachedPerEmail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/users/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok","data":{"user":{"name":"Asha","email":"asha@example.com"}}}`))
	})
	mux.HandleFunc("/api/users/profile", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"fullName":"Asha K","phone":"9999","addressLine1":"12 MG Road","city":"Pune","state":"MH","pincode":"411001"}}`))
	})
	m, _ := newManager(t, mux)

	ok, err := m.Login(context.Background(), "asha@example.com", "secret")
	require.NoError(t, err)
	require.True(t, ok)

	p, err := m.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Asha K", p.FullName)
	assert.Equal(t, "12 MG Road", p.AddressLine1)

	cached, ok := m.CachedProfile("Asha@Example.com")
	require.True(t, ok)
	assert.Equal(t, p, cached)

	_, ok = m.CachedProfile("other@example.com")
	assert.False(t, ok)
}

func TestDisplayNameFallsBackToLocalPart(t *testing.T) {
	assert.Equal(t, "Asha", displayName("asha@example.com", "Asha"))
	assert.Equal(t, "asha", displayName("asha@example.com", ""))
	assert.Equal(t, "User", displayName("no-at-sign", " "))
}
