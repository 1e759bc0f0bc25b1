// Package render turns a flight log into the payload a map front end draws:
// one gapped polyline per undirected route, one marker per known airport, and
// the summary statistics.
package render

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/xyaoaf/flight-route-map/airports"
	"github.com/xyaoaf/flight-route-map/pkg/geo"
	"github.com/xyaoaf/flight-route-map/pkg/style"
	"github.com/xyaoaf/flight-route-map/routes"
	"github.com/xyaoaf/flight-route-map/stats"
)

// ArcObserver is notified of every arc built. *metrics.Collector satisfies it.
type ArcObserver interface {
	ObserveArc(breaks int)
}

// Options control map construction.
type Options struct {
	// ArcPoints is the number of intermediate samples per arc. Zero selects
	// geo.DefaultArcPoints; negative means endpoints only.
	ArcPoints int
	// ScaleWidth makes frequently flown routes thicker and more opaque.
	ScaleWidth bool
	// Workers bounds concurrent arc construction. Zero selects GOMAXPROCS.
	Workers int
	// Observer, when set, receives one call per arc.
	Observer ArcObserver
}

// ExplicitArcPoints converts a user-chosen sample count, where 0 means
// straight endpoint-to-endpoint segments, into an Options.ArcPoints value.
func ExplicitArcPoints(n int) int {
	if n == 0 {
		return -1
	}
	return n
}

func (o Options) arcPoints() int {
	switch {
	case o.ArcPoints == 0:
		return geo.DefaultArcPoints
	case o.ArcPoints < 0:
		return 0
	default:
		return o.ArcPoints
	}
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// RouteTrace is one drawable route.
type RouteTrace struct {
	Pair  routes.Pair     `json:"pair"`
	Count int             `json:"count"`
	Path  geo.ArcPath     `json:"path"`
	Style style.LineStyle `json:"style"`
	Label string          `json:"label"`
}

// AirportMarker is one drawable airport.
type AirportMarker struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Point  geo.Coordinates `json:"point"`
	Visits int             `json:"visits"`
	Size   int             `json:"size"`
	Label  string          `json:"label"`
}

// Map is the full render payload.
type Map struct {
	Routes   []RouteTrace    `json:"routes"`
	Airports []AirportMarker `json:"airports"`
	Stats    stats.Stats     `json:"stats"`
}

// Build computes the map for a route list. Routes with an unknown endpoint are
// left off the map but still appear in the statistics. Traces come back in
// descending traversal order and markers in code order.
func Build(ctx context.Context, rs []routes.Route, table *airports.Table, opts Options) (*Map, error) {
	pairs := routes.Normalize(rs).Sorted()

	drawable := make([]routes.PairCount, 0, len(pairs))
	for _, pc := range pairs {
		if table.Has(pc.Pair.A) && table.Has(pc.Pair.B) {
			drawable = append(drawable, pc)
		}
	}

	traces := make([]RouteTrace, len(drawable))
	n := opts.arcPoints()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, pc := range drawable {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			traces[i] = buildTrace(pc, table, n, opts.ScaleWidth)
			if opts.Observer != nil {
				opts.Observer.ObserveArc(traces[i].Path.Breaks())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s := stats.Compute(rs, table)
	return &Map{
		Routes:   traces,
		Airports: markers(s.Visits, table),
		Stats:    s,
	}, nil
}

func buildTrace(pc routes.PairCount, table *airports.Table, n int, scale bool) RouteTrace {
	a, _ := table.Lookup(pc.Pair.A)
	b, _ := table.Lookup(pc.Pair.B)
	return RouteTrace{
		Pair:  pc.Pair,
		Count: pc.Count,
		Path:  geo.BuildArc(a.Coordinates(), b.Coordinates(), n),
		Style: style.LineStyleFor(pc.Count, scale),
		Label: style.RouteLabel(pc.Pair.A, pc.Pair.B, pc.Count),
	}
}

func markers(visits map[string]int, table *airports.Table) []AirportMarker {
	out := make([]AirportMarker, 0, len(visits))
	for _, a := range table.All() {
		count, ok := visits[a.Code]
		if !ok {
			continue
		}
		out = append(out, AirportMarker{
			Code:   a.Code,
			Name:   a.Name,
			Point:  a.Coordinates(),
			Visits: count,
			Size:   style.MarkerSize(count),
			Label:  style.AirportLabel(a.Code, a.Name, count),
		})
	}
	return out
}
