package geo

import (
	"encoding/json"
	"math"

	"github.com/paulmach/orb"
)

// DefaultArcPoints is the number of intermediate samples used for a route
// arc when the caller does not choose one. Sparse sampling of very long arcs
// can misplace the antimeridian break, so callers may raise it.
const DefaultArcPoints = 100

// ArcPoint is one entry of an ArcPath. When Break is set the entry carries no
// coordinate and tells the renderer not to connect its neighbours.
type ArcPoint struct {
	Lon   float64
	Lat   float64
	Break bool
}

// BreakPoint is the sentinel inserted where an arc crosses the antimeridian.
var BreakPoint = ArcPoint{Break: true}

// ArcPath is a renderable polyline. Breaks never lead, trail, or repeat.
type ArcPath []ArcPoint

// BuildArc samples the geodesic between two points and inserts a break
// wherever consecutive samples are more than 180 degrees of longitude apart.
// Identical endpoints yield a single point.
func BuildArc(from, to Coordinates, n int) ArcPath {
	return WGS84.BuildArc(from, to, n)
}

// BuildArc is BuildArc on a specific ellipsoid.
func (e Ellipsoid) BuildArc(from, to Coordinates, n int) ArcPath {
	if from == to {
		return ArcPath{{Lon: from.Lon, Lat: from.Lat}}
	}

	samples := make([]Coordinates, 0, n+2)
	samples = append(samples, from)
	samples = append(samples, e.IntermediatePoints(from, to, n)...)
	samples = append(samples, to)

	path := make(ArcPath, 0, len(samples)+1)
	path = append(path, ArcPoint{Lon: samples[0].Lon, Lat: samples[0].Lat})
	for i := 1; i < len(samples); i++ {
		if math.Abs(samples[i].Lon-samples[i-1].Lon) > 180 {
			path = append(path, BreakPoint)
		}
		path = append(path, ArcPoint{Lon: samples[i].Lon, Lat: samples[i].Lat})
	}
	return path
}

// Breaks counts the break sentinels in the path.
func (p ArcPath) Breaks() int {
	n := 0
	for _, pt := range p {
		if pt.Break {
			n++
		}
	}
	return n
}

// Points returns the real coordinates of the path, breaks removed.
func (p ArcPath) Points() []Coordinates {
	out := make([]Coordinates, 0, len(p))
	for _, pt := range p {
		if !pt.Break {
			out = append(out, Coordinates{Lon: pt.Lon, Lat: pt.Lat})
		}
	}
	return out
}

// Segments splits the path at its breaks. A single-point path becomes a
// one-point line string.
func (p ArcPath) Segments() orb.MultiLineString {
	var (
		out     orb.MultiLineString
		current orb.LineString
	)
	for _, pt := range p {
		if pt.Break {
			if len(current) > 0 {
				out = append(out, current)
			}
			current = nil
			continue
		}
		current = append(current, orb.Point{pt.Lon, pt.Lat})
	}
	if len(current) > 0 {
		out = append(out, current)
	}
	return out
}

// Columns returns parallel longitude and latitude slices with nil entries at
// breaks, the shape charting libraries expect for gapped line traces.
func (p ArcPath) Columns() (lons, lats []*float64) {
	lons = make([]*float64, len(p))
	lats = make([]*float64, len(p))
	for i := range p {
		if p[i].Break {
			continue
		}
		lon, lat := p[i].Lon, p[i].Lat
		lons[i], lats[i] = &lon, &lat
	}
	return lons, lats
}

// MarshalJSON encodes the path as {"lon": [...], "lat": [...]} with null at breaks.
func (p ArcPath) MarshalJSON() ([]byte, error) {
	lons, lats := p.Columns()
	return json.Marshal(struct {
		Lon []*float64 `json:"lon"`
		Lat []*float64 `json:"lat"`
	}{Lon: lons, Lat: lats})
}

// UnmarshalJSON decodes the column form written by MarshalJSON.
func (p *ArcPath) UnmarshalJSON(data []byte) error {
	var cols struct {
		Lon []*float64 `json:"lon"`
		Lat []*float64 `json:"lat"`
	}
	if err := json.Unmarshal(data, &cols); err != nil {
		return err
	}
	out := make(ArcPath, 0, len(cols.Lon))
	for i := range cols.Lon {
		if cols.Lon[i] == nil || i >= len(cols.Lat) || cols.Lat[i] == nil {
			out = append(out, BreakPoint)
			continue
		}
		out = append(out, ArcPoint{Lon: *cols.Lon[i], Lat: *cols.Lat[i]})
	}
	*p = out
	return nil
}
