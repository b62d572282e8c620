// Package session owns the current user identity. Being "logged in"
// is derived strictly from token presence; the cached user projection
// is display data only and is discarded whenever the token disappears.
package session

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/hfdstore/storefront/internal/client/api"
	"github.com/hfdstore/storefront/internal/client/localstore"
	"github.com/hfdstore/storefront/internal/models"
)

// Manager is the auth session manager.
type Manager struct {
	api   *api.Client
	store *localstore.Store
	log   *zap.Logger

	mu        sync.Mutex
	user      *models.User
	listeners []func(authenticated bool)
}

// New builds a Manager and runs the startup reconciliation step: when
// no token exists, any cached user projection is discarded so the
// client never shows an authenticated name without a live token.
func New(client *api.Client, store *localstore.Store, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{api: client, store: store, log: log}
	if store.Token() == "" {
		_ = store.Delete(localstore.KeyUser)
		return m
	}
	var u models.User
	if store.GetJSON(localstore.KeyUser, &u) && u.Email != "" {
		m.user = &u
	}
	return m
}

// IsAuthenticated reports whether a non-empty token is currently
// stored. Reads the store directly so an externally cleared token is
// observed on the next call.
func (m *Manager) IsAuthenticated() bool {
	return m.store.Token() != ""
}

// User returns the cached display projection, or nil.
func (m *Manager) User() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// OnChange registers a listener invoked after every login, signup and
// logout with the new authentication state. The cart synchronizer uses
// this to clear or refetch on auth transitions.
func (m *Manager) OnChange(fn func(authenticated bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) notify(authenticated bool) {
	m.mu.Lock()
	listeners := make([]func(bool), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()
	for _, fn := range listeners {
		fn(authenticated)
	}
}

// Login authenticates against the backend. Empty email or password
// fails fast without a network call. A response with no extractable
// token yields false without establishing any session. Backend and
// transport errors are returned so the caller can tell bad credentials
// from an unreachable server.
func (m *Manager) Login(ctx context.Context, email, password string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, nil
	}
	res, err := m.api.Login(ctx, strings.ToLower(email), password)
	if err != nil {
		return false, err
	}
	token := api.TokenFromResponse(res)
	if token == "" {
		m.log.Warn("login response carried no token")
		return false, nil
	}
	m.establish(token, userFromResponse(res, email, ""))
	return true, nil
}

// Signup registers a new account. When the register response carries
// no token, an automatic login with the same credentials is attempted;
// if that also yields no token, signup fails with no partial state.
func (m *Manager) Signup(ctx context.Context, email, password, name, phone string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, nil
	}
	res, err := m.api.Register(ctx, api.RegisterBody{
		Name:     displayName(email, name),
		Email:    strings.ToLower(email),
		Password: password,
		Phone:    strings.TrimSpace(phone),
	})
	if err != nil {
		return false, err
	}
	token := api.TokenFromResponse(res)
	if token == "" {
		res, err = m.api.Login(ctx, strings.ToLower(email), password)
		if err != nil {
			return false, err
		}
		token = api.TokenFromResponse(res)
	}
	if token == "" {
		m.log.Warn("signup yielded no token", zap.String("email", strings.ToLower(email)))
		return false, nil
	}
	m.establish(token, userFromResponse(res, email, name))
	return true, nil
}

func (m *Manager) establish(token string, u models.User) {
	m.store.SetToken(token)
	_ = m.store.SetJSON(localstore.KeyUser, u)
	m.mu.Lock()
	m.user = &u
	m.mu.Unlock()
	m.notify(true)
}

// Logout clears the token and the cached user projection
// unconditionally. Idempotent.
func (m *Manager) Logout() {
	m.store.ClearToken()
	_ = m.store.Delete(localstore.KeyUser)
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
	m.notify(false)
}

// Profile fetches the backend profile and refreshes the local
// per-email cache used for checkout prefill.
func (m *Manager) Profile(ctx context.Context) (models.ProfileData, error) {
	res, err := m.api.Profile(ctx)
	if err != nil {
		return models.ProfileData{}, err
	}
	p := profileFromResponse(res)
	if u := m.User(); u != nil {
		_ = m.store.SetJSON(localstore.ProfileKey(u.Email), p)
	}
	return p, nil
}

// UpdateProfile writes the profile to the backend and, on success,
// to the local per-email cache.
func (m *Manager) UpdateProfile(ctx context.Context, p models.ProfileData) error {
	if _, err := m.api.UpdateProfile(ctx, p); err != nil {
		return err
	}
	if u := m.User(); u != nil {
		_ = m.store.SetJSON(localstore.ProfileKey(u.Email), p)
	}
	return nil
}

// CachedProfile returns the locally cached profile for email, if any.
func (m *Manager) CachedProfile(email string) (models.ProfileData, bool) {
	var p models.ProfileData
	if strings.TrimSpace(email) == "" {
		return p, false
	}
	ok := m.store.GetJSON(localstore.ProfileKey(email), &p)
	return p, ok
}

// displayName prefers the provided name, falling back to the email's
// local part.
func displayName(email, name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return "User"
}

// userFromResponse derives the display projection, preferring
// backend-provided name/email over the submitted ones.
func userFromResponse(res any, email, name string) models.User {
	u := models.User{
		Name:  displayName(email, name),
		Email: strings.ToLower(strings.TrimSpace(email)),
	}
	obj, ok := res.(map[string]any)
	if !ok {
		return u
	}
	nested, ok := obj["user"].(map[string]any)
	if !ok {
		return u
	}
	respEmail, _ := nested["email"].(string)
	if respEmail == "" {
		return u
	}
	u.Email = respEmail
	if respName, _ := nested["name"].(string); respName != "" {
		u.Name = respName
	}
	return u
}

// profileFromResponse tolerates both camelCase and legacy field names.
func profileFromResponse(res any) models.ProfileData {
	obj, ok := res.(map[string]any)
	if !ok {
		return models.ProfileData{}
	}
	str := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := obj[k].(string); ok && v != "" {
				return v
			}
		}
		return ""
	}
	return models.ProfileData{
		FullName:     str("fullName", "name"),
		Phone:        str("phone"),
		AddressLine1: str("addressLine1", "address"),
		AddressLine2: str("addressLine2"),
		City:         str("city"),
		State:        str("state"),
		Pincode:      str("pincode"),
	}
}
