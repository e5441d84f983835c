// Package session owns the authentication token and the cached identity.
// Nothing else decides whether the app is logged in.
package session

import (
	"context"
	"sync"

	"console/internal/api"
	"console/internal/logging"
	"console/internal/store"
	"console/internal/types"
)

// AuthAPI is the slice of the backend client the session layer needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*api.TokenResponse, error)
	LoginWithGoogle(ctx context.Context, providerToken string) (*api.TokenResponse, error)
	Me(ctx context.Context) (*types.User, error)
	SetToken(token string)
	ClearToken()
}

type RestoreStatus int

const (
	// RestoreValid: a persisted token verified against the backend.
	RestoreValid RestoreStatus = iota
	// RestoreInvalid: no token, or the backend rejected it. The persisted
	// token has been cleared.
	RestoreInvalid
	// RestoreOffline: the backend could not be reached. The token is kept
	// for a later attempt but the session starts logged out.
	RestoreOffline
)

type RestoreResult struct {
	Status   RestoreStatus
	Identity *types.User
	Err      error
}

type Store struct {
	api   AuthAPI
	creds *store.CredentialStore
	log   logging.Logger

	mu          sync.Mutex
	identity    *types.User
	valid       bool
	invalidated func()
}

func New(remote AuthAPI, creds *store.CredentialStore, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		api:   remote,
		creds: creds,
		log:   log.With(logging.F("component", "session")),
	}
}

// OnInvalidate registers the hook run whenever the session transitions to
// invalid through an authentication rejection. The dashboard uses it to halt
// scheduled activity.
func (s *Store) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated = fn
}

// Restore attempts to resume a persisted session. It never returns an error
// as a failure mode distinct from its result: the caller must always end up
// in a deterministic logged-in or logged-out state.
func (s *Store) Restore(ctx context.Context) RestoreResult {
	creds, err := s.creds.Load()
	if err != nil {
		s.log.Warn("credentials unreadable", logging.F("err", err))
		return RestoreResult{Status: RestoreInvalid, Err: err}
	}
	if !creds.HasToken() {
		return RestoreResult{Status: RestoreInvalid}
	}

	s.api.SetToken(creds.Token)
	identity, err := s.api.Me(ctx)
	if err != nil {
		if api.IsAuth(err) {
			s.log.Info("persisted token rejected")
			s.clear(false)
			return RestoreResult{Status: RestoreInvalid, Err: err}
		}
		// Unreachable or rate-limited backend: keep the token on disk for
		// the next launch, but do not claim a valid session.
		s.api.ClearToken()
		return RestoreResult{Status: RestoreOffline, Identity: creds.Identity, Err: err}
	}

	s.setIdentity(identity)
	s.persist(creds.Token, identity)
	return RestoreResult{Status: RestoreValid, Identity: identity}
}

// Login exchanges credentials for a token, verifies it, and persists both.
func (s *Store) Login(ctx context.Context, username, password string) (*types.User, error) {
	resp, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, resp.AccessToken)
}

// LoginWithGoogle is the federated variant of Login.
func (s *Store) LoginWithGoogle(ctx context.Context, providerToken string) (*types.User, error) {
	resp, err := s.api.LoginWithGoogle(ctx, providerToken)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, resp.AccessToken)
}

func (s *Store) adopt(ctx context.Context, token string) (*types.User, error) {
	s.api.SetToken(token)
	identity, err := s.api.Me(ctx)
	if err != nil {
		if api.IsAuth(err) {
			s.clear(false)
		}
		return nil, err
	}
	s.setIdentity(identity)
	s.persist(token, identity)
	return identity, nil
}

// RefreshIdentity re-fetches the identity without re-authenticating. An
// authentication rejection invalidates the session; any other failure is a
// no-op that keeps the last-known-good identity, because this runs silently
// in the background.
func (s *Store) RefreshIdentity(ctx context.Context) (changed bool) {
	s.mu.Lock()
	valid := s.valid
	previous := s.identity
	s.mu.Unlock()
	if !valid {
		return false
	}

	identity, err := s.api.Me(ctx)
	if err != nil {
		if api.IsAuth(err) {
			s.log.Info("identity refresh rejected, invalidating session")
			s.Invalidate()
			return false
		}
		s.log.Debug("identity refresh skipped", logging.F("err", err))
		return false
	}

	if previous != nil && previous.Equal(*identity) {
		return false
	}
	s.setIdentity(identity)
	creds, loadErr := s.creds.Load()
	if loadErr == nil && creds.HasToken() {
		s.persist(creds.Token, identity)
	}
	return true
}

// Logout clears the persisted token and cached identity. Idempotent.
func (s *Store) Logout() {
	s.clear(false)
}

// Invalidate is the authentication-rejection path: same cleanup as Logout,
// plus the registered invalidation hook.
func (s *Store) Invalidate() {
	s.clear(true)
}

func (s *Store) clear(notify bool) {
	s.api.ClearToken()
	if err := s.creds.Clear(); err != nil {
		s.log.Warn("failed to clear persisted credentials", logging.F("err", err))
	}

	s.mu.Lock()
	wasValid := s.valid
	s.identity = nil
	s.valid = false
	fn := s.invalidated
	s.mu.Unlock()

	if notify && wasValid && fn != nil {
		fn()
	}
}

// Valid reports whether a verified session exists. No resource fetch may be
// attempted while this is false.
func (s *Store) Valid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valid
}

// Identity returns the cached identity, or nil when logged out.
func (s *Store) Identity() *types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	copied := *s.identity
	return &copied
}

func (s *Store) setIdentity(identity *types.User) {
	s.mu.Lock()
	s.identity = identity
	s.valid = true
	s.mu.Unlock()
}

func (s *Store) persist(token string, identity *types.User) {
	if err := s.creds.Save(store.Credentials{Token: token, Identity: identity}); err != nil {
		s.log.Warn("failed to persist credentials", logging.F("err", err))
	}
}
