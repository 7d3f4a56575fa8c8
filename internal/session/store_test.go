package session

import (
	"os"
	"path/filepath"
	"testing"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestNewStoreMissingFileIsLoggedOut(t *testing.T) {
	store, err := NewStore(storePath(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if store.Authenticated() {
		t.Fatal("expected logged-out session")
	}
}

func TestSetSessionPersistsAndReloads(t *testing.T) {
	path := storePath(t)
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	sess := Session{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         &User{ID: 7, Username: "hedy"},
	}
	if err := store.SetSession(sess); err != nil {
		t.Fatalf("set session: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat session file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 permissions, got %o", perm)
	}

	reloaded, err := NewStore(path)
	if err != nil {
		t.Fatalf("reload store: %v", err)
	}
	got := reloaded.Session()
	if got.AccessToken != "access-1" || got.RefreshToken != "refresh-1" {
		t.Fatalf("unexpected reloaded session: %+v", got)
	}
	if got.User == nil || got.User.Username != "hedy" {
		t.Fatalf("identity not persisted: %+v", got.User)
	}
}

func TestClearRemovesFileAndState(t *testing.T) {
	path := storePath(t)
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.SetSession(Session{AccessToken: "tok"}); err != nil {
		t.Fatalf("set session: %v", err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if store.Authenticated() {
		t.Fatal("session still authenticated after clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("session file still present: %v", err)
	}

	// Clearing an already-empty store must stay idempotent.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestNewStoreRejectsCorruptFile(t *testing.T) {
	path := storePath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	if _, err := NewStore(path); err == nil {
		t.Fatal("expected decode error")
	}
}
