// Package mirror keeps a local copy of a server-owned collection consistent
// across fetches and mutations. The local collection is replaced wholesale on
// every list and patched in place on confirmed mutations; it is never written
// by anything else.
package mirror

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"console/internal/api"
	"console/internal/logging"
)

// Record is any server-owned row with a server-assigned identifier.
type Record interface {
	RecordID() string
}

// API is the remote surface a mirror reconciles against.
type API[T Record] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, record T) (T, error)
	Delete(ctx context.Context, id string) error
}

type Mirror[T Record] struct {
	name string
	api  API[T]
	log  logging.Logger

	mu      sync.Mutex
	records []T
	gen     uint64

	flight singleflight.Group

	authMu     sync.Mutex
	authFailed func()
}

func New[T Record](name string, remote API[T], log logging.Logger) *Mirror[T] {
	if log == nil {
		log = logging.Nop()
	}
	return &Mirror[T]{
		name: name,
		api:  remote,
		log:  log.With(logging.F("mirror", name)),
	}
}

// OnAuthFailure registers the hook invoked whenever any operation observes
// an authentication rejection. The hook routes into session invalidation.
func (m *Mirror[T]) OnAuthFailure(fn func()) {
	m.authMu.Lock()
	defer m.authMu.Unlock()
	m.authFailed = fn
}

// Snapshot returns a copy of the current collection.
func (m *Mirror[T]) Snapshot() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]T, len(m.records))
	copy(out, m.records)
	return out
}

func (m *Mirror[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

// List fetches the full collection and replaces local state with it.
// Concurrent callers join the in-flight fetch instead of issuing duplicate
// requests; every joined caller observes the same result. A fetch that was
// superseded by Clear while in flight is discarded on arrival instead of
// repopulating a logged-out mirror.
func (m *Mirror[T]) List(ctx context.Context) ([]T, error) {
	result, err, _ := m.flight.Do("list", func() (any, error) {
		m.mu.Lock()
		gen := m.gen
		m.mu.Unlock()

		records, err := m.api.List(ctx)
		if err != nil {
			return nil, m.observe(err)
		}

		m.mu.Lock()
		if m.gen == gen {
			m.records = listReplaced[T]{records: records}.apply(m.records)
		}
		m.mu.Unlock()
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]T), nil
}

// Add creates the draft remotely and, on success, prepends the canonical
// server record. Local state is untouched on failure.
func (m *Mirror[T]) Add(ctx context.Context, draft T) (T, error) {
	created, err := m.api.Create(ctx, draft)
	if err != nil {
		var zero T
		return zero, m.observe(err)
	}
	m.dispatch(recordAdded[T]{record: created})
	return created, nil
}

// Update sends a full-record update and, on success, replaces the matching
// local record with the server's returned version.
func (m *Mirror[T]) Update(ctx context.Context, record T) (T, error) {
	updated, err := m.api.Update(ctx, record)
	if err != nil {
		var zero T
		return zero, m.observe(err)
	}
	m.dispatch(recordReplaced[T]{record: updated})
	return updated, nil
}

// Remove deletes the record remotely and, on success, locally.
func (m *Mirror[T]) Remove(ctx context.Context, id string) error {
	if err := m.api.Delete(ctx, id); err != nil {
		return m.observe(err)
	}
	m.dispatch(recordRemoved[T]{id: id})
	return nil
}

// RemoveMatching drops local records without a remote call. It exists for
// cascade cleanup after an owning record was deleted; the next List is the
// authority that corrects any divergence.
func (m *Mirror[T]) RemoveMatching(match func(T) bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.records)
	m.records = matchingRemoved[T]{match: match}.apply(m.records)
	removed := before - len(m.records)
	if removed > 0 {
		m.log.Debug("cascade cleanup", logging.F("removed", removed))
	}
	return removed
}

// Clear empties the local collection and supersedes any in-flight fetch.
// Called on logout so a later login never shows the previous user's rows,
// not even from a fetch that was already on the wire.
func (m *Mirror[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	m.gen++
}

func (m *Mirror[T]) dispatch(e event[T]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = e.apply(m.records)
}

// observe routes authentication rejections into the session invalidation
// hook before returning the error unchanged.
func (m *Mirror[T]) observe(err error) error {
	if api.IsAuth(err) {
		m.log.Warn("authentication rejected", logging.F("err", err))
		m.authMu.Lock()
		fn := m.authFailed
		m.authMu.Unlock()
		if fn != nil {
			fn()
		}
	}
	return err
}
