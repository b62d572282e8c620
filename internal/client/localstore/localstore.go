// Package localstore is the client's persistent key-value layer: a
// single JSON file holding the bearer token, the cached user
// projection, per-email profile data, and the editable site content.
// It is the guest-mode source of truth when no backend session exists.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Fixed key names. Values are JSON-encoded strings under these keys;
// profile entries are namespaced per user by lowercased trimmed email.
const (
	KeyToken         = "hfd_token"
	KeyUser          = "hfd_user"
	KeyBanner        = "hfd_site_banner"
	KeyHero          = "hfd_site_hero"
	KeyHeadings      = "hfd_site_headings"
	KeyProducts      = "hfd_site_products"
	profileKeyPrefix = "hfd_profile_"
)

// ProfileKey returns the per-user profile key for an email address.
func ProfileKey(email string) string {
	return profileKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Store is a file-backed JSON key-value store. Every mutation rewrites
// the whole file; reads are served from memory.
type Store struct {
	path string
	mu   sync.Mutex
	data map[string]json.RawMessage
}

// Open loads the store at path, creating an empty one when the file
// does not exist yet.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: map[string]json.RawMessage{}}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("open state file: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := json.NewDecoder(f).Decode(&s.data); err != nil {
		// A corrupted state file falls back to empty rather than
		// locking the user out of the client.
		s.data = map[string]json.RawMessage{}
	}
	return s, nil
}

func (s *Store) save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create state dir: %w", err)
		}
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return json.NewEncoder(f).Encode(s.data)
}

// GetJSON decodes the value under key into v. The second return is
// false when the key is absent or the stored value does not decode.
func (s *Store) GetJSON(key string, v any) bool {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// SetJSON stores v under key and persists the file.
func (s *Store) SetJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
	return s.save()
}

// Delete removes key and persists the file. Missing keys are a no-op.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.save()
}

// Token returns the stored bearer token, or "".
func (s *Store) Token() string {
	var t string
	if !s.GetJSON(KeyToken, &t) {
		return ""
	}
	return t
}

// SetToken stores the trimmed token; an empty value clears it instead.
func (s *Store) SetToken(token string) {
	t := strings.TrimSpace(token)
	if t == "" {
		s.ClearToken()
		return
	}
	_ = s.SetJSON(KeyToken, t)
}

// ClearToken removes the stored token. Idempotent.
func (s *Store) ClearToken() {
	_ = s.Delete(KeyToken)
}
