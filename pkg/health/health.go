package health

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// Status represents the health status of a component
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Check represents a single health check. Critical checks decide readiness;
// the rest only inform.
type Check struct {
	Name      string            `json:"name"`
	Status    Status            `json:"status"`
	Message   string            `json:"message,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	Duration  time.Duration     `json:"duration"`
	Timestamp time.Time         `json:"timestamp"`
	Critical  bool              `json:"critical"`
}

// HealthReport represents the overall health of the application
type HealthReport struct {
	Status    Status            `json:"status"`
	Version   string            `json:"version"`
	Build     map[string]string `json:"build,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]Check  `json:"checks"`
	Uptime    time.Duration     `json:"uptime"`
}

// Checker defines the interface for health checks
type Checker interface {
	Check(ctx context.Context) Check
}

// Pinger is satisfied by *pgxpool.Pool and the db store.
type Pinger interface {
	Ping(ctx context.Context) error
}

func newCheck(name string, critical bool) Check {
	return Check{
		Name:      name,
		Timestamp: time.Now(),
		Details:   make(map[string]string),
		Critical:  critical,
	}
}

func (c *Check) finish(err error, okMsg, failMsg string) {
	c.Duration = time.Since(c.Timestamp)
	c.Details["response_time"] = c.Duration.String()
	if err != nil {
		c.Status = StatusDown
		c.Message = fmt.Sprintf("%s: %v", failMsg, err)
		c.Details["error"] = err.Error()
		return
	}
	c.Status = StatusUp
	c.Message = okMsg
}

// PostgresChecker checks PostgreSQL connectivity
type PostgresChecker struct {
	DB   Pinger
	Name string
}

func (c *PostgresChecker) Check(ctx context.Context) Check {
	check := newCheck(c.Name, true)
	check.finish(c.DB.Ping(ctx), "Database connection successful", "Database connection failed")
	return check
}

// RedisChecker checks Redis connectivity
type RedisChecker struct {
	Client *redis.Client
	Name   string
}

func (c *RedisChecker) Check(ctx context.Context) Check {
	check := newCheck(c.Name, true)
	pong, err := c.Client.Ping(ctx).Result()
	check.finish(err, "Redis connection successful", "Redis connection failed")
	if err == nil {
		check.Details["ping_response"] = pong
	}
	return check
}

// FlightLogChecker reports whether the default flight log is readable. A
// missing log is not fatal: the map simply renders empty.
type FlightLogChecker struct {
	Path string
	Name string
}

func (c *FlightLogChecker) Check(ctx context.Context) Check {
	check := newCheck(c.Name, false)
	info, err := os.Stat(c.Path)
	check.finish(err, "Flight log available", "Flight log unavailable")
	check.Details["path"] = c.Path
	if err == nil {
		check.Details["size"] = fmt.Sprintf("%d", info.Size())
		check.Details["modified"] = info.ModTime().UTC().Format(time.RFC3339)
	}
	return check
}

// HealthChecker orchestrates multiple health checks
type HealthChecker struct {
	checkers  []Checker
	version   string
	build     map[string]string
	startTime time.Time
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(version string, build map[string]string) *HealthChecker {
	return &HealthChecker{
		version:   version,
		build:     build,
		startTime: time.Now(),
	}
}

// AddChecker adds a health checker
func (h *HealthChecker) AddChecker(checker Checker) {
	h.checkers = append(h.checkers, checker)
}

// CheckHealth runs every check concurrently. Overall status is down only when a critical
// check fails.
func (h *HealthChecker) CheckHealth(ctx context.Context) HealthReport {
	return h.run(ctx, false)
}

// CheckReadiness runs only the critical checks.
func (h *HealthChecker) CheckReadiness(ctx context.Context) HealthReport {
	return h.run(ctx, true)
}

// CheckLiveness reports that the process is serving.
func (h *HealthChecker) CheckLiveness(context.Context) HealthReport {
	now := time.Now()
	return HealthReport{
		Status:    StatusUp,
		Version:   h.version,
		Build:     h.build,
		Timestamp: now,
		Checks: map[string]Check{
			"application": {
				Name:      "application",
				Status:    StatusUp,
				Message:   "Application is running",
				Timestamp: now,
			},
		},
		Uptime: time.Since(h.startTime),
	}
}

func (h *HealthChecker) run(ctx context.Context, criticalOnly bool) HealthReport {
	results := make([]Check, len(h.checkers))
	var g errgroup.Group
	for i, checker := range h.checkers {
		g.Go(func() error {
			results[i] = checker.Check(ctx)
			return nil
		})
	}
	_ = g.Wait()

	checks := make(map[string]Check, len(results))
	overall := StatusUp
	for _, check := range results {
		if criticalOnly && !check.Critical {
			continue
		}
		checks[check.Name] = check
		if check.Critical && check.Status == StatusDown {
			overall = StatusDown
		}
	}
	return HealthReport{
		Status:    overall,
		Version:   h.version,
		Build:     h.build,
		Timestamp: time.Now(),
		Checks:    checks,
		Uptime:    time.Since(h.startTime),
	}
}
