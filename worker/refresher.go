package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/xyaoaf/flight-route-map/airports"
	"github.com/xyaoaf/flight-route-map/pkg/logger"
	"github.com/xyaoaf/flight-route-map/render"
	"github.com/xyaoaf/flight-route-map/routes"
)

// RouteSource yields the current default flight log. *flightlog.Source
// satisfies it.
type RouteSource interface {
	Load(ctx context.Context) ([]routes.Route, error)
	Describe() string
}

// Snapshot is a rendered default log.
type Snapshot struct {
	Routes      []routes.Route
	Map         *render.Map
	RefreshedAt time.Time
}

// Refresher keeps a rendered snapshot of the default log and rebuilds it on a
// cron schedule, so the default map endpoints never parse on the request path.
type Refresher struct {
	source  RouteSource
	table   func() *airports.Table
	opts    render.Options
	timeout time.Duration

	current atomic.Pointer[Snapshot]
	lastErr atomic.Pointer[error]

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
}

// NewRefresher creates a refresher. table is consulted on every rebuild so a
// reloaded airport table takes effect without a restart.
func NewRefresher(source RouteSource, table func() *airports.Table, opts render.Options, timeout time.Duration) *Refresher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Refresher{
		source:  source,
		table:   table,
		opts:    opts,
		timeout: timeout,
	}
}

// Refresh reloads and re-renders the default log. On failure the previous
// snapshot stays in place.
func (r *Refresher) Refresh(ctx context.Context) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	rs, err := r.source.Load(ctx)
	if err != nil {
		r.fail(err)
		return nil, fmt.Errorf("load %s: %w", r.source.Describe(), err)
	}
	m, err := render.Build(ctx, rs, r.table(), r.opts)
	if err != nil {
		r.fail(err)
		return nil, fmt.Errorf("render %s: %w", r.source.Describe(), err)
	}

	snap := &Snapshot{Routes: rs, Map: m, RefreshedAt: time.Now()}
	r.current.Store(snap)
	r.lastErr.Store(nil)

	logger.WithFields(map[string]interface{}{
		"source":   r.source.Describe(),
		"flights":  m.Stats.Flights,
		"routes":   len(m.Routes),
		"missing":  len(m.Stats.Missing),
		"duration": time.Since(start),
	}).Info("Default flight log refreshed")
	return snap, nil
}

func (r *Refresher) fail(err error) {
	// A caller going away says nothing about the source.
	if errors.Is(err, context.Canceled) {
		return
	}
	r.lastErr.Store(&err)
	logger.WithField("source", r.source.Describe()).Error(err, "Default flight log refresh failed")
}

// Snapshot returns the latest snapshot, refreshing synchronously when none
// exists yet. The first load outlives ctx's cancellation so that a caller
// disconnecting midway does not throw the work away.
func (r *Refresher) Snapshot(ctx context.Context) (*Snapshot, error) {
	if snap := r.current.Load(); snap != nil {
		return snap, nil
	}
	return r.Refresh(context.WithoutCancel(ctx))
}

// LastError returns the error of the most recent failed refresh, or nil once
// a later refresh succeeds.
func (r *Refresher) LastError() error {
	if p := r.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// Start schedules periodic refreshes using a standard cron expression or a
// descriptor such as "@every 5m".
func (r *Refresher) Start(schedule string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron != nil {
		return fmt.Errorf("refresher already started")
	}

	c := cron.New()
	id, err := c.AddFunc(schedule, func() {
		_, _ = r.Refresh(context.Background())
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	c.Start()
	r.cron, r.entryID = c, id

	logger.WithFields(map[string]interface{}{
		"schedule": schedule,
		"source":   r.source.Describe(),
	}).Info("Refresher started")
	return nil
}

// NextRun reports when the next scheduled refresh fires.
func (r *Refresher) NextRun() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cron == nil {
		return time.Time{}, false
	}
	return r.cron.Entry(r.entryID).Next, true
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	r.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	logger.Info("Refresher stopped")
}
