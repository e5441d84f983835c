package poll

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeClock records scheduled callbacks so tests fire ticks deterministically.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

func (c *fakeClock) factory(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	timer := &fakeTimer{d: d, fn: fn}
	c.timers = append(c.timers, timer)
	return timer
}

// fire runs the i-th scheduled callback regardless of its Stop state; the
// scheduler's epoch guard, not the timer, must reject stale callbacks.
func (c *fakeClock) fire(i int) {
	c.mu.Lock()
	fn := c.timers[i].fn
	c.mu.Unlock()
	fn()
}

func (c *fakeClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

type refreshCounter struct {
	mu       sync.Mutex
	data     int
	identity int
	dataErr  error
}

func (r *refreshCounter) refreshData(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data++
	return r.dataErr
}

func (r *refreshCounter) refreshIdentity(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identity++
}

func (r *refreshCounter) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data, r.identity
}

func newTestScheduler(clock *fakeClock, counter *refreshCounter) *Scheduler {
	return New(Config{
		DataInterval:     time.Minute,
		IdentityInterval: 5 * time.Minute,
		RefreshData:      counter.refreshData,
		RefreshIdentity:  counter.refreshIdentity,
		NewTimer:         clock.factory,
	})
}

func TestStartArmsBothTimersWithConfiguredIntervals(t *testing.T) {
	clock := &fakeClock{}
	s := newTestScheduler(clock, &refreshCounter{})

	s.Start()
	if clock.count() != 2 {
		t.Fatalf("expected two timers, got %d", clock.count())
	}
	if clock.timers[0].d != time.Minute || clock.timers[1].d != 5*time.Minute {
		t.Fatalf("unexpected intervals: %v, %v", clock.timers[0].d, clock.timers[1].d)
	}
	if !s.Running() {
		t.Fatalf("scheduler should be running")
	}
}

func TestStartWhileRunningIsANoOp(t *testing.T) {
	clock := &fakeClock{}
	s := newTestScheduler(clock, &refreshCounter{})

	s.Start()
	s.Start()
	if clock.count() != 2 {
		t.Fatalf("second Start must not arm more timers, got %d", clock.count())
	}
}

func TestDataTickRefreshesAndRearms(t *testing.T) {
	clock := &fakeClock{}
	counter := &refreshCounter{}
	s := newTestScheduler(clock, counter)

	s.Start()
	clock.fire(0)

	data, identity := counter.counts()
	if data != 1 || identity != 0 {
		t.Fatalf("expected one data refresh, got data=%d identity=%d", data, identity)
	}
	if clock.count() != 3 {
		t.Fatalf("data tick must re-arm, got %d timers", clock.count())
	}
}

func TestIdentityTickRefreshesAndRearms(t *testing.T) {
	clock := &fakeClock{}
	counter := &refreshCounter{}
	s := newTestScheduler(clock, counter)

	s.Start()
	clock.fire(1)

	data, identity := counter.counts()
	if data != 0 || identity != 1 {
		t.Fatalf("expected one identity refresh, got data=%d identity=%d", data, identity)
	}
	if clock.count() != 3 {
		t.Fatalf("identity tick must re-arm, got %d timers", clock.count())
	}
}

func TestTickErrorsAreSwallowedAndPollingContinues(t *testing.T) {
	clock := &fakeClock{}
	counter := &refreshCounter{dataErr: errors.New("backend rate limited")}
	s := newTestScheduler(clock, counter)

	s.Start()
	clock.fire(0)
	if clock.count() != 3 {
		t.Fatalf("a failed tick must still re-arm, got %d timers", clock.count())
	}
	// Next tick fires again despite the prior failure.
	clock.fire(2)
	data, _ := counter.counts()
	if data != 2 {
		t.Fatalf("expected polling to continue, got %d refreshes", data)
	}
}

func TestStopPreventsPendingCallbacksFromRefreshing(t *testing.T) {
	clock := &fakeClock{}
	counter := &refreshCounter{}
	s := newTestScheduler(clock, counter)

	s.Start()
	s.Stop()
	// Fire the already-captured callbacks as a racing timer would.
	clock.fire(0)
	clock.fire(1)

	data, identity := counter.counts()
	if data != 0 || identity != 0 {
		t.Fatalf("stopped scheduler must not refresh, got data=%d identity=%d", data, identity)
	}
	if s.Running() {
		t.Fatalf("scheduler should be stopped")
	}
}

func TestStopIsIdempotent(t *testing.T) {
	clock := &fakeClock{}
	s := newTestScheduler(clock, &refreshCounter{})

	s.Stop()
	s.Start()
	s.Stop()
	s.Stop()
	if s.Running() {
		t.Fatalf("scheduler should be stopped")
	}
}

func TestStaleCallbackFromSupersededEpochIsDiscarded(t *testing.T) {
	clock := &fakeClock{}
	counter := &refreshCounter{}
	s := newTestScheduler(clock, counter)

	s.Start()
	s.Stop()
	s.Start() // new epoch; timers 2 and 3

	// The callback captured under the first epoch fires late.
	clock.fire(0)

	data, _ := counter.counts()
	if data != 0 {
		t.Fatalf("stale epoch callback must not refresh, got %d", data)
	}
	if clock.count() != 4 {
		t.Fatalf("stale callback must not re-arm, got %d timers", clock.count())
	}

	// The current epoch's callback still works.
	clock.fire(2)
	data, _ = counter.counts()
	if data != 1 {
		t.Fatalf("current epoch callback should refresh, got %d", data)
	}
}
