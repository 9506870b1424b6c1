// Package session owns the persisted login state. It is the one shared
// resource between dashboards: the HTTP layer reads the token through an
// injected dependency, and only login/register/logout and the global 401
// handler ever write it.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/reviewdeck/reviewdeck/internal/errors"
)

// Session is the client-side view of an authenticated user. Token presence
// implies IsAuthenticated; validity is only verified by the server on the
// next request (optimistic).
type Session struct {
	UserID          string `json:"user_id"`
	OrganizationID  string `json:"organization_id"`
	Email           string `json:"email"`
	BearerToken     string `json:"bearer_token"`
	IsAuthenticated bool   `json:"is_authenticated"`
}

const sessionFile = "session.json"

// Store persists the session under the reviewdeck dot directory with an
// explicit hydrate/save/clear lifecycle.
type Store struct {
	dir string

	mu      sync.RWMutex
	current Session
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the per-user state directory, preferring the home
// directory and falling back to a local dotdir.
func DefaultDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".reviewdeck")
	}
	return ".reviewdeck"
}

// Hydrate loads the persisted session from disk. A missing file is not an
// error; it leaves the store empty.
func (s *Store) Hydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(filepath.Join(s.dir, sessionFile))
	if err != nil {
		if os.IsNotExist(err) {
			s.current = Session{}
			return nil
		}
		return errors.Wrap(errors.ErrCodeSessionRead, "cannot read session file", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return errors.Wrap(errors.ErrCodeSessionInvalid, "session file is corrupt", err)
	}

	sess.IsAuthenticated = sess.BearerToken != ""
	s.current = sess
	return nil
}

// Save replaces the session and persists it with owner-only permissions
func (s *Store) Save(sess Session) error {
	sess.IsAuthenticated = sess.BearerToken != ""

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeSessionWrite, "cannot create state directory", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeSessionWrite, "cannot encode session", err)
	}

	if err := os.WriteFile(filepath.Join(s.dir, sessionFile), data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeSessionWrite, "cannot write session file", err)
	}

	return nil
}

// Clear tears the session down, both in memory and on disk. Called on
// logout and by the 401 handler.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.current = Session{}
	s.mu.Unlock()

	err := os.Remove(filepath.Join(s.dir, sessionFile))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeSessionWrite, "cannot remove session file", err)
	}
	return nil
}

// Current returns a copy of the in-memory session
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token implements the API client's token source. Requests already in
// flight keep the header they were built with; requests issued after a
// Clear see an empty token and go out unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.BearerToken
}
