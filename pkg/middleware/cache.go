package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xyaoaf/flight-route-map/pkg/cache"
	"github.com/xyaoaf/flight-route-map/pkg/logger"
)

// CacheConfig holds cache middleware configuration
type CacheConfig struct {
	TTL         time.Duration
	KeyPrefix   string
	SkipPaths   []string
	OnlyMethods []string
}

// bodyRecorder tees the response body so it can be stored after the handler runs.
type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyRecorder) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

// CachedResponse represents a cached HTTP response
type CachedResponse struct {
	StatusCode  int       `json:"status_code"`
	Body        []byte    `json:"body"`
	ContentType string    `json:"content_type"`
	CachedAt    time.Time `json:"cached_at"`
}

// ResponseCache serves repeated reads of static data (the airport table,
// airport-to-airport distances) from the cache. Only 2xx JSON responses are
// stored; X-Cache reports HIT or MISS.
func ResponseCache(cacheManager *cache.CacheManager, config CacheConfig) gin.HandlerFunc {
	if config.OnlyMethods == nil {
		config.OnlyMethods = []string{http.MethodGet}
	}

	return func(c *gin.Context) {
		if !slices.Contains(config.OnlyMethods, c.Request.Method) {
			c.Next()
			return
		}
		for _, skipPath := range config.SkipPaths {
			if strings.HasPrefix(c.Request.URL.Path, skipPath) {
				c.Next()
				return
			}
		}

		key := responseKey(config.KeyPrefix, c.Request)
		log := logger.WithContext(c.Request.Context()).WithField("cache_key", key)

		var cached CachedResponse
		err := cacheManager.GetJSON(c.Request.Context(), key, &cached)
		if err == nil {
			c.Header("X-Cache", "HIT")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Error(err, "Response cache read failed")
		}

		c.Header("X-Cache", "MISS")
		rec := &bodyRecorder{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = rec

		c.Next()

		status := c.Writer.Status()
		contentType := c.Writer.Header().Get("Content-Type")
		if status < 200 || status >= 300 || !strings.Contains(contentType, "application/json") {
			return
		}
		resp := CachedResponse{
			StatusCode:  status,
			Body:        rec.body.Bytes(),
			ContentType: contentType,
			CachedAt:    time.Now(),
		}
		if err := cacheManager.SetJSON(c.Request.Context(), key, resp, config.TTL); err != nil {
			log.Error(err, "Response cache write failed")
		}
	}
}

func responseKey(prefix string, req *http.Request) string {
	sum := sha256.Sum256([]byte(req.Method + " " + req.URL.Path + "?" + req.URL.RawQuery))
	key := "response:" + hex.EncodeToString(sum[:])
	if prefix != "" {
		key = prefix + ":" + key
	}
	return key
}
