package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store keeps the current session in memory and mirrors it to a JSON file so
// credentials survive process restarts. All mutation goes through SetSession
// and Clear; the gateway is the only component that writes the credential
// fields outside of explicit login/logout.
type Store struct {
	path string

	mu      sync.RWMutex
	session Session
}

// NewStore loads any persisted session from path and returns a ready store.
// A missing file resolves to a logged-out session.
func NewStore(path string) (*Store, error) {
	store := &Store{path: path}
	if err := store.load(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read session state: %w", err)
	}

	var loaded Session
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("decode session state: %w", err)
	}
	s.session = loaded
	return nil
}

// Session returns a copy of the current session.
func (s *Store) Session() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// AccessToken returns the current access credential, empty when logged out.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.AccessToken
}

// RefreshToken returns the current refresh artifact, empty when logged out.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.RefreshToken
}

// Authenticated reports whether an access credential is present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Authenticated()
}

// SetSession replaces the stored session and persists it.
func (s *Store) SetSession(next Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.save(next); err != nil {
		return err
	}
	s.session = next
	return nil
}

// Clear wipes the in-memory session and removes the persisted file. Used on
// logout and on renewal failure; both must leave no partial state behind.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session state: %w", err)
	}
	s.session = Session{}
	return nil
}

func (s *Store) save(state Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("ensure session directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}
