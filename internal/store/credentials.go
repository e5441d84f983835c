package store

import (
	"errors"
	"os"
	"strings"
	"sync"

	"console/internal/types"
)

// Credentials is the only state that survives a restart: the bearer token
// and the last identity it resolved to. Collections are always re-fetched.
type Credentials struct {
	Token    string      `json:"token"`
	Identity *types.User `json:"identity,omitempty"`
}

func (c Credentials) HasToken() bool {
	return strings.TrimSpace(c.Token) != ""
}

// CredentialStore persists Credentials to a single file with atomic
// replacement, so a crash mid-write never leaves a torn token on disk.
type CredentialStore struct {
	path string
	mu   sync.Mutex
}

func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

// Load returns zero Credentials when nothing has been persisted yet.
func (s *CredentialStore) Load() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var creds Credentials
	if err := readJSON(s.path, &creds); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Credentials{}, nil
		}
		return Credentials{}, err
	}
	return creds, nil
}

func (s *CredentialStore) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSONAtomic(s.path, creds)
}

// Clear removes the persisted credentials. Idempotent.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
