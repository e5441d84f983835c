// Package poll drives the background refresh cadence: a data timer for the
// resource mirrors and a slower identity timer, both silent. Ticks re-arm
// themselves only after the previous refresh finished, so a slow backend can
// never stack overlapping refreshes.
package poll

import (
	"context"
	"sync"
	"time"

	"console/internal/logging"
)

// Timer is the single method of time.Timer the scheduler relies on, split
// out so tests can drive ticks by hand instead of sleeping.
type Timer interface {
	Stop() bool
}

type TimerFactory func(d time.Duration, fn func()) Timer

func afterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

type Config struct {
	// DataInterval is the cadence for refreshing the resource mirrors.
	DataInterval time.Duration
	// IdentityInterval is the cadence for refreshing the session identity.
	// Kept materially longer than DataInterval: the identity endpoint is
	// the most aggressively rate-limited one.
	IdentityInterval time.Duration

	RefreshData     func(ctx context.Context) error
	RefreshIdentity func(ctx context.Context)

	// NewTimer defaults to time.AfterFunc.
	NewTimer TimerFactory
	Log      logging.Logger
}

// Scheduler is a two-state machine (stopped/running). Every Start bumps an
// epoch; callbacks carry the epoch they were scheduled under and are
// discarded if a Stop or a newer Start superseded them before they ran.
type Scheduler struct {
	cfg Config
	log logging.Logger

	mu            sync.Mutex
	epoch         uint64
	running       bool
	dataTimer     Timer
	identityTimer Timer
}

func New(cfg Config) *Scheduler {
	if cfg.NewTimer == nil {
		cfg.NewTimer = afterFunc
	}
	log := cfg.Log
	if log == nil {
		log = logging.Nop()
	}
	return &Scheduler{
		cfg: cfg,
		log: log.With(logging.F("component", "scheduler")),
	}
}

// Start arms both timers. A no-op while already running.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.epoch++
	epoch := s.epoch
	s.log.Debug("started",
		logging.F("data_interval", s.cfg.DataInterval),
		logging.F("identity_interval", s.cfg.IdentityInterval))
	s.dataTimer = s.cfg.NewTimer(s.cfg.DataInterval, func() { s.dataTick(epoch) })
	s.identityTimer = s.cfg.NewTimer(s.cfg.IdentityInterval, func() { s.identityTick(epoch) })
}

// Stop disarms the timers and supersedes any callback already in flight.
// Safe to call repeatedly and while stopped.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.epoch++
	if s.dataTimer != nil {
		s.dataTimer.Stop()
		s.dataTimer = nil
	}
	if s.identityTimer != nil {
		s.identityTimer.Stop()
		s.identityTimer = nil
	}
	s.log.Debug("stopped")
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) current(epoch uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running && epoch == s.epoch
}

func (s *Scheduler) dataTick(epoch uint64) {
	if !s.current(epoch) {
		return
	}
	// Silent refresh: errors are logged, never surfaced. A 401 inside the
	// refresh routes through the session invalidation hook, which stops
	// this scheduler before the re-arm below.
	if err := s.cfg.RefreshData(context.Background()); err != nil {
		s.log.Warn("background data refresh failed", logging.F("err", err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || epoch != s.epoch {
		return
	}
	s.dataTimer = s.cfg.NewTimer(s.cfg.DataInterval, func() { s.dataTick(epoch) })
}

func (s *Scheduler) identityTick(epoch uint64) {
	if !s.current(epoch) {
		return
	}
	s.cfg.RefreshIdentity(context.Background())

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || epoch != s.epoch {
		return
	}
	s.identityTimer = s.cfg.NewTimer(s.cfg.IdentityInterval, func() { s.identityTick(epoch) })
}
