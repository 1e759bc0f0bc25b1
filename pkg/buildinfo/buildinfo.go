// Package buildinfo carries version metadata stamped in at link time:
//
//	go build -ldflags "-X github.com/xyaoaf/flight-route-map/pkg/buildinfo.Version=v1.2.3 \
//	  -X github.com/xyaoaf/flight-route-map/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/xyaoaf/flight-route-map/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info returns the build metadata as a map for health and MCP responses.
func Info() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  Commit,
		"date":    Date,
	}
}

// String renders a one-line version banner.
func String() string {
	return fmt.Sprintf("flightmap %s (%s, built %s)", Version, Commit, Date)
}
