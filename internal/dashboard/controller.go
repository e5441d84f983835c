// Package dashboard coordinates the session store, the three resource
// mirrors, and the background scheduler, and exposes the aggregate
// loading/error/data state the presentation layer renders. Presentation code
// never writes any of that state directly.
package dashboard

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"console/internal/logging"
	"console/internal/mirror"
	"console/internal/poll"
	"console/internal/session"
	"console/internal/types"
)

// State is what the UI renders: spinner, error banner, or data.
type State struct {
	Loading     bool
	LastError   error
	LastRefresh time.Time
}

type Deps struct {
	Session *session.Store
	Clients *mirror.Mirror[types.Client]
	Tickets *mirror.Mirror[types.Ticket]
	Assets  *mirror.Mirror[types.Asset]

	DataInterval     time.Duration
	IdentityInterval time.Duration
	// NewTimer overrides the scheduler clock in tests.
	NewTimer poll.TimerFactory

	Log logging.Logger
}

type Controller struct {
	session *session.Store
	clients *mirror.Mirror[types.Client]
	tickets *mirror.Mirror[types.Ticket]
	assets  *mirror.Mirror[types.Asset]
	sched   *poll.Scheduler
	log     logging.Logger

	mu          sync.Mutex
	loading     bool
	lastErr     error
	lastRefresh time.Time

	now func() time.Time
}

func New(deps Deps) *Controller {
	log := deps.Log
	if log == nil {
		log = logging.Nop()
	}
	c := &Controller{
		session: deps.Session,
		clients: deps.Clients,
		tickets: deps.Tickets,
		assets:  deps.Assets,
		log:     log.With(logging.F("component", "dashboard")),
		now:     time.Now,
	}
	c.sched = poll.New(poll.Config{
		DataInterval:     deps.DataInterval,
		IdentityInterval: deps.IdentityInterval,
		RefreshData:      c.refreshSilently,
		RefreshIdentity:  func(ctx context.Context) { c.session.RefreshIdentity(ctx) },
		NewTimer:         deps.NewTimer,
		Log:              log,
	})

	// Any 401 observed by any mirror invalidates the session; session
	// invalidation halts scheduling and drops the now-stale collections.
	c.clients.OnAuthFailure(c.session.Invalidate)
	c.tickets.OnAuthFailure(c.session.Invalidate)
	c.assets.OnAuthFailure(c.session.Invalidate)
	c.session.OnInvalidate(func() {
		c.sched.Stop()
		c.clearMirrors()
	})
	return c
}

// Start restores a persisted session and, when valid, performs the one
// user-visible full load before handing refresh duty to the scheduler.
func (c *Controller) Start(ctx context.Context) (session.RestoreResult, error) {
	result := c.session.Restore(ctx)
	if result.Status != session.RestoreValid {
		return result, nil
	}
	err := c.Load(ctx)
	c.sched.Start()
	return result, err
}

// Login authenticates, then performs the same visible load Start does.
func (c *Controller) Login(ctx context.Context, username, password string) (*types.User, error) {
	identity, err := c.session.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	loadErr := c.Load(ctx)
	c.sched.Start()
	return identity, loadErr
}

func (c *Controller) LoginWithGoogle(ctx context.Context, providerToken string) (*types.User, error) {
	identity, err := c.session.LoginWithGoogle(ctx, providerToken)
	if err != nil {
		return nil, err
	}
	loadErr := c.Load(ctx)
	c.sched.Start()
	return identity, loadErr
}

// Load is the visible full load: it toggles the loading flag, surfaces
// failure through State, and records the refresh time on success.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.lastErr = nil
	c.mu.Unlock()

	err := c.listAll(ctx)

	c.mu.Lock()
	c.loading = false
	if err != nil {
		c.lastErr = err
	} else {
		c.lastRefresh = c.now()
	}
	c.mu.Unlock()
	return err
}

// Retry repeats the visible full load. Wired to the error banner.
func (c *Controller) Retry(ctx context.Context) error {
	return c.Load(ctx)
}

// Logout stops scheduling, destroys the session, and clears all three
// mirrors so a later login never flashes the previous user's data.
func (c *Controller) Logout() {
	c.sched.Stop()
	c.session.Logout()
	c.clearMirrors()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{Loading: c.loading, LastError: c.lastErr, LastRefresh: c.lastRefresh}
}

func (c *Controller) Identity() *types.User { return c.session.Identity() }

func (c *Controller) Valid() bool { return c.session.Valid() }

func (c *Controller) Clients() []types.Client { return c.clients.Snapshot() }

func (c *Controller) Tickets() []types.Ticket { return c.tickets.Snapshot() }

func (c *Controller) Assets() []types.Asset { return c.assets.Snapshot() }

// Scheduler is exposed for the UI's status line.
func (c *Controller) Scheduler() *poll.Scheduler { return c.sched }

func (c *Controller) AddClient(ctx context.Context, draft types.Client) (types.Client, error) {
	created, err := c.clients.Add(ctx, draft)
	if err != nil {
		return types.Client{}, err
	}
	c.backstop(ctx, "clients")
	return created, nil
}

func (c *Controller) UpdateClient(ctx context.Context, record types.Client) (types.Client, error) {
	updated, err := c.clients.Update(ctx, record)
	if err != nil {
		return types.Client{}, err
	}
	c.backstop(ctx, "clients")
	return updated, nil
}

// DeleteClient removes the client and cascades locally: tickets and assets
// referencing it disappear immediately rather than lingering as orphaned
// rows until the next poll. The backend is trusted to cascade server-side;
// the follow-up refresh reconciles whatever it actually did.
func (c *Controller) DeleteClient(ctx context.Context, id string) error {
	if err := c.clients.Remove(ctx, id); err != nil {
		return err
	}
	c.tickets.RemoveMatching(func(t types.Ticket) bool { return t.ClientID == id })
	c.assets.RemoveMatching(func(a types.Asset) bool { return a.ClientID == id })
	c.backstop(ctx, "clients", "tickets", "assets")
	return nil
}

func (c *Controller) AddTicket(ctx context.Context, draft types.Ticket) (types.Ticket, error) {
	created, err := c.tickets.Add(ctx, draft)
	if err != nil {
		return types.Ticket{}, err
	}
	c.backstop(ctx, "tickets")
	return created, nil
}

func (c *Controller) UpdateTicket(ctx context.Context, record types.Ticket) (types.Ticket, error) {
	updated, err := c.tickets.Update(ctx, record)
	if err != nil {
		return types.Ticket{}, err
	}
	c.backstop(ctx, "tickets")
	return updated, nil
}

func (c *Controller) DeleteTicket(ctx context.Context, id string) error {
	if err := c.tickets.Remove(ctx, id); err != nil {
		return err
	}
	c.backstop(ctx, "tickets")
	return nil
}

func (c *Controller) AddAsset(ctx context.Context, draft types.Asset) (types.Asset, error) {
	created, err := c.assets.Add(ctx, draft)
	if err != nil {
		return types.Asset{}, err
	}
	c.backstop(ctx, "assets")
	return created, nil
}

func (c *Controller) UpdateAsset(ctx context.Context, record types.Asset) (types.Asset, error) {
	updated, err := c.assets.Update(ctx, record)
	if err != nil {
		return types.Asset{}, err
	}
	c.backstop(ctx, "assets")
	return updated, nil
}

func (c *Controller) DeleteAsset(ctx context.Context, id string) error {
	if err := c.assets.Remove(ctx, id); err != nil {
		return err
	}
	c.backstop(ctx, "assets")
	return nil
}

// backstop re-lists the named mirrors silently after a successful mutation.
// It covers server-side effects the mutation response cannot carry, like
// computed fields on related rows or the server's own cascade. Failures are
// logged, not returned: the mutation itself already succeeded.
func (c *Controller) backstop(ctx context.Context, names ...string) {
	for _, name := range names {
		var err error
		switch name {
		case "clients":
			_, err = c.clients.List(ctx)
		case "tickets":
			_, err = c.tickets.List(ctx)
		case "assets":
			_, err = c.assets.List(ctx)
		}
		if err != nil {
			c.log.Warn("backstop refresh failed", logging.F("mirror", name), logging.F("err", err))
		}
	}
}

// refreshSilently is the scheduler's data tick: no loading flag, no error
// state. Transient failures surface only in the log.
func (c *Controller) refreshSilently(ctx context.Context) error {
	if !c.session.Valid() {
		return nil
	}
	err := c.listAll(ctx)
	if err == nil {
		c.mu.Lock()
		c.lastRefresh = c.now()
		c.mu.Unlock()
	}
	return err
}

func (c *Controller) listAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := c.clients.List(ctx)
		return err
	})
	g.Go(func() error {
		_, err := c.tickets.List(ctx)
		return err
	})
	g.Go(func() error {
		_, err := c.assets.List(ctx)
		return err
	})
	return g.Wait()
}

func (c *Controller) clearMirrors() {
	c.clients.Clear()
	c.tickets.Clear()
	c.assets.Clear()
}
