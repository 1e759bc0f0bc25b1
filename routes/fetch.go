package routes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// maxLogBytes caps how much of a remote flight log is read.
const maxLogBytes = 8 << 20

type httpClient interface {
	Do(req *retryablehttp.Request) (*http.Response, error)
}

// Fetcher downloads flight logs over HTTP with retries.
type Fetcher struct {
	client httpClient
}

// NewFetcher creates a fetcher with a bounded retry policy.
func NewFetcher(timeout time.Duration) *Fetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 500 * time.Millisecond
	client.Logger = nil
	client.HTTPClient.Timeout = timeout
	return &Fetcher{client: client}
}

// Fetch returns the raw bytes of the log at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch flight log: build request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain, */*")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch flight log: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch flight log: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLogBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch flight log: read body: %w", err)
	}
	if len(body) > maxLogBytes {
		return nil, fmt.Errorf("fetch flight log: body exceeds %d bytes", maxLogBytes)
	}
	return body, nil
}

// Load fetches and parses the log at url.
func (f *Fetcher) Load(ctx context.Context, url string) ([]Route, error) {
	body, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return ParseCSV(bytes.NewReader(body))
}
