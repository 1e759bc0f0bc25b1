package render

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature kinds written to the "kind" property.
const (
	KindRoute   = "route"
	KindAirport = "airport"
)

// FeatureCollection exports the map as GeoJSON. Each route becomes a
// MultiLineString split at the antimeridian, each airport a Point.
func (m *Map) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, r := range m.Routes {
		f := geojson.NewFeature(r.Path.Segments())
		f.Properties["kind"] = KindRoute
		f.Properties["pair"] = r.Pair.String()
		f.Properties["count"] = r.Count
		f.Properties["width"] = r.Style.Width
		f.Properties["opacity"] = r.Style.Opacity
		f.Properties["label"] = r.Label
		fc.Append(f)
	}
	for _, a := range m.Airports {
		f := geojson.NewFeature(orb.Point{a.Point.Lon, a.Point.Lat})
		f.ID = a.Code
		f.Properties["kind"] = KindAirport
		f.Properties["code"] = a.Code
		f.Properties["name"] = a.Name
		f.Properties["visits"] = a.Visits
		f.Properties["size"] = a.Size
		f.Properties["label"] = a.Label
		fc.Append(f)
	}
	return fc
}
