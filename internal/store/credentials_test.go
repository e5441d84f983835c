package store

import (
	"os"
	"path/filepath"
	"testing"

	"console/internal/types"
)

func TestCredentialStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	s := NewCredentialStore(path)

	creds, err := s.Load()
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if creds.HasToken() {
		t.Fatalf("expected empty credentials, got %#v", creds)
	}

	want := Credentials{
		Token:    "tok-1",
		Identity: &types.User{ID: "u1", Username: "alice", Role: "admin"},
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Token != "tok-1" || got.Identity == nil || got.Identity.Username != "alice" {
		t.Fatalf("unexpected credentials: %#v", got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("credentials file should be private, got %v", info.Mode().Perm())
	}
}

func TestCredentialStoreClearIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	s := NewCredentialStore(path)

	if err := s.Save(Credentials{Token: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("second Clear should be a no-op: %v", err)
	}
	creds, err := s.Load()
	if err != nil {
		t.Fatalf("Load after Clear: %v", err)
	}
	if creds.HasToken() {
		t.Fatalf("expected cleared credentials, got %#v", creds)
	}
}
