package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/xyaoaf/flight-route-map/pkg/logger"
	"github.com/xyaoaf/flight-route-map/routes"
)

// HitRecorder receives cache hit and miss events. *metrics.Collector
// satisfies it.
type HitRecorder interface {
	CacheHit()
	CacheMiss()
}

// ContentKey derives the cache key of an uploaded log from its bytes.
func ContentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return "routes:" + hex.EncodeToString(sum[:])
}

// DefaultLogKey keys the on-disk default log by path and modification time,
// so editing the file invalidates the entry.
func DefaultLogKey(path string, modTime time.Time) string {
	return fmt.Sprintf("routes:default:%s:%d", path, modTime.UnixNano())
}

// RouteCache memoizes parsed route lists. Cache failures are logged and the
// log is parsed again; they never fail the request.
type RouteCache struct {
	manager  *CacheManager
	ttl      time.Duration
	recorder HitRecorder
}

// NewRouteCache wraps c. A nil recorder disables hit accounting.
func NewRouteCache(c Cache, ttl time.Duration, recorder HitRecorder) *RouteCache {
	if c == nil {
		c = NoopCache{}
	}
	return &RouteCache{manager: NewCacheManager(c), ttl: ttl, recorder: recorder}
}

// Routes returns the cached list for key, or runs parse and stores its result.
func (rc *RouteCache) Routes(ctx context.Context, key string, parse func() ([]routes.Route, error)) ([]routes.Route, error) {
	var cached []routes.Route
	err := rc.manager.GetJSON(ctx, key, &cached)
	switch {
	case err == nil:
		rc.hit()
		return cached, nil
	case !errors.Is(err, ErrCacheMiss):
		logger.WithContext(ctx).WithField("cache_key", key).Error(err, "Route cache read failed")
	}
	rc.miss()

	rs, err := parse()
	if err != nil {
		return nil, err
	}
	if err := rc.manager.SetJSON(ctx, key, rs, rc.ttl); err != nil {
		logger.WithContext(ctx).WithField("cache_key", key).Error(err, "Route cache write failed")
	}
	return rs, nil
}

// Invalidate drops a cached list.
func (rc *RouteCache) Invalidate(ctx context.Context, key string) error {
	return rc.manager.Delete(ctx, key)
}

func (rc *RouteCache) hit() {
	if rc.recorder != nil {
		rc.recorder.CacheHit()
	}
}

func (rc *RouteCache) miss() {
	if rc.recorder != nil {
		rc.recorder.CacheMiss()
	}
}
