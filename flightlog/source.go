// Package flightlog loads the default flight log, from a local CSV file or a
// remote URL, through the parsed-route cache.
package flightlog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xyaoaf/flight-route-map/pkg/cache"
	"github.com/xyaoaf/flight-route-map/routes"
)

// Fetcher downloads a remote log. *routes.Fetcher satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Source is the default flight log. When URL is set it wins over Path.
type Source struct {
	Path    string
	URL     string
	fetcher Fetcher
	cache   *cache.RouteCache
}

// NewSource builds a source. A nil route cache parses on every load.
func NewSource(path, url string, fetcher Fetcher, rc *cache.RouteCache) *Source {
	if rc == nil {
		rc = cache.NewRouteCache(nil, 0, nil)
	}
	return &Source{Path: path, URL: url, fetcher: fetcher, cache: rc}
}

// Describe names where the log comes from, for logs and health output.
func (s *Source) Describe() string {
	if s.URL != "" {
		return s.URL
	}
	return s.Path
}

// Load returns the routes of the default log. A missing local file yields an
// empty list rather than an error so the map still renders.
func (s *Source) Load(ctx context.Context) ([]routes.Route, error) {
	if s.URL != "" {
		return s.loadRemote(ctx)
	}
	return s.loadFile(ctx)
}

func (s *Source) loadRemote(ctx context.Context) ([]routes.Route, error) {
	if s.fetcher == nil {
		return nil, errors.New("flight log URL configured without a fetcher")
	}
	body, err := s.fetcher.Fetch(ctx, s.URL)
	if err != nil {
		return nil, err
	}
	return Parse(ctx, s.cache, body)
}

func (s *Source) loadFile(ctx context.Context) ([]routes.Route, error) {
	info, err := os.Stat(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat flight log: %w", err)
	}

	return s.cache.Routes(ctx, cache.DefaultLogKey(s.Path, info.ModTime()), func() ([]routes.Route, error) {
		f, err := os.Open(s.Path)
		if err != nil {
			return nil, fmt.Errorf("open flight log: %w", err)
		}
		defer f.Close()
		return routes.ParseCSV(f)
	})
}

// Parse parses uploaded log bytes through the cache, keyed by content hash.
func Parse(ctx context.Context, rc *cache.RouteCache, body []byte) ([]routes.Route, error) {
	return rc.Routes(ctx, cache.ContentKey(body), func() ([]routes.Route, error) {
		return routes.ParseCSV(bytes.NewReader(body))
	})
}
