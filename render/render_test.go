package render

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyaoaf/flight-route-map/airports"
	"github.com/xyaoaf/flight-route-map/pkg/geo"
	"github.com/xyaoaf/flight-route-map/pkg/style"
	"github.com/xyaoaf/flight-route-map/routes"
)

type countingObserver struct {
	mu     sync.Mutex
	arcs   int
	breaks int
}

func (o *countingObserver) ObserveArc(breaks int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.arcs++
	o.breaks += breaks
}

var sample = []routes.Route{
	{Origin: "HGH", Destination: "PVG"},
	{Origin: "PVG", Destination: "HGH"},
	{Origin: "HGH", Destination: "SFO"},
	{Origin: "HGH", Destination: "XXX"},
}

func TestBuild_TracesAndMarkers(t *testing.T) {
	obs := &countingObserver{}
	m, err := Build(context.Background(), sample, airports.Default(), Options{ScaleWidth: true, Workers: 2, Observer: obs})
	require.NoError(t, err)

	require.Len(t, m.Routes, 2, "route to unknown airport is not drawn")
	assert.Equal(t, routes.NewPair("HGH", "PVG"), m.Routes[0].Pair)
	assert.Equal(t, 2, m.Routes[0].Count)
	assert.Equal(t, style.LineStyleFor(2, true), m.Routes[0].Style)
	assert.Equal(t, "✈ HGH → PVG  ×2", m.Routes[0].Label)
	assert.Len(t, m.Routes[0].Path, geo.DefaultArcPoints+2)

	assert.Equal(t, routes.NewPair("HGH", "SFO"), m.Routes[1].Pair)
	assert.Equal(t, 1, m.Routes[1].Path.Breaks())

	codes := make([]string, 0, len(m.Airports))
	for _, a := range m.Airports {
		codes = append(codes, a.Code)
	}
	assert.Equal(t, []string{"HGH", "PVG", "SFO"}, codes)
	assert.Equal(t, 4, m.Airports[0].Visits)
	assert.Equal(t, style.MarkerSmall, m.Airports[0].Size)

	assert.Equal(t, 4, m.Stats.Flights)
	assert.Equal(t, []string{"XXX"}, m.Stats.Missing)

	assert.Equal(t, 2, obs.arcs)
	assert.Equal(t, 1, obs.breaks)
}

func TestBuild_FixedStyleAndSparseArcs(t *testing.T) {
	m, err := Build(context.Background(), sample, airports.Default(), Options{ArcPoints: -1})
	require.NoError(t, err)
	for _, r := range m.Routes {
		assert.Equal(t, style.LineStyle{Width: style.FixedWidth, Opacity: style.FixedOpacity}, r.Style)
	}
	assert.Len(t, m.Routes[0].Path, 2)
}

func TestBuild_Empty(t *testing.T) {
	m, err := Build(context.Background(), nil, airports.Default(), Options{})
	require.NoError(t, err)
	assert.Empty(t, m.Routes)
	assert.Empty(t, m.Airports)
	assert.Zero(t, m.Stats.TotalKm)
}

func TestBuild_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, sample, airports.Default(), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMap_JSONShape(t *testing.T) {
	m, err := Build(context.Background(), sample[:1], airports.Default(), Options{ArcPoints: 1})
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded struct {
		Routes []struct {
			Pair string `json:"pair"`
			Path struct {
				Lon []*float64 `json:"lon"`
				Lat []*float64 `json:"lat"`
			} `json:"path"`
		} `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Routes, 1)
	assert.Equal(t, "HGH-PVG", decoded.Routes[0].Pair)
	assert.Len(t, decoded.Routes[0].Path.Lon, 3)
}

func TestMap_FeatureCollection(t *testing.T) {
	m, err := Build(context.Background(), sample, airports.Default(), Options{ArcPoints: 10})
	require.NoError(t, err)

	fc := m.FeatureCollection()
	require.Len(t, fc.Features, 2+3)

	var routesSeen, airportsSeen int
	for _, f := range fc.Features {
		switch f.Properties["kind"] {
		case KindRoute:
			routesSeen++
			assert.Equal(t, "MultiLineString", f.Geometry.GeoJSONType())
		case KindAirport:
			airportsSeen++
			assert.Equal(t, "Point", f.Geometry.GeoJSONType())
		}
	}
	assert.Equal(t, 2, routesSeen)
	assert.Equal(t, 3, airportsSeen)

	data, err := fc.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"FeatureCollection"`)
}

func TestExplicitArcPoints(t *testing.T) {
	assert.Equal(t, -1, ExplicitArcPoints(0))
	assert.Equal(t, 7, ExplicitArcPoints(7))

	m, err := Build(context.Background(), sample[:1], airports.Default(), Options{ArcPoints: ExplicitArcPoints(0)})
	require.NoError(t, err)
	require.Len(t, m.Routes, 1)
	assert.Len(t, m.Routes[0].Path, 2)
}
