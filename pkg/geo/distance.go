// Package geo provides geodesic calculations on the WGS84 ellipsoid and the
// arc paths used to draw flight routes on a map.
package geo

import (
	"math"

	"github.com/tidwall/geodesic"
)

// EarthRadiusKm is the mean radius of Earth in kilometers.
const EarthRadiusKm = 6371.0088

// Ellipsoid is a reference ellipsoid given by its equatorial radius in
// meters and its flattening. Geodesics are solved with Karney's algorithm,
// which converges for every pair of points including antipodes.
type Ellipsoid struct {
	A float64
	F float64

	g *geodesic.Ellipsoid
}

// NewEllipsoid returns the ellipsoid with equatorial radius a (meters) and
// flattening f.
func NewEllipsoid(a, f float64) Ellipsoid {
	return Ellipsoid{A: a, F: f, g: geodesic.NewEllipsoid(a, f)}
}

// WGS84 is the ellipsoid used for all distances in this module.
var WGS84 = NewEllipsoid(6378137.0, 1/298.257223563)

// B returns the polar radius in meters.
func (e Ellipsoid) B() float64 {
	return e.A * (1 - e.F)
}

func (e Ellipsoid) solver() *geodesic.Ellipsoid {
	if e.g == nil {
		return geodesic.NewEllipsoid(e.A, e.F)
	}
	return e.g
}

// Coordinates represents a geographic point in decimal degrees.
type Coordinates struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// IsValid returns true if the coordinates are within valid ranges.
// Latitude must be between -90 and 90, longitude between -180 and 180.
func (c Coordinates) IsValid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// IsZero returns true if both coordinates are zero (likely unset).
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lon == 0
}

// Solution is the result of the inverse geodesic problem.
type Solution struct {
	Meters   float64
	Azimuth1 float64 // forward azimuth at the start, degrees
	Azimuth2 float64 // forward azimuth at the end, degrees
}

// Km returns the solution distance in kilometers.
func (s Solution) Km() float64 {
	return s.Meters / 1000
}

// Inverse solves the inverse geodesic problem between two points. The
// shortest geodesic is always chosen, so points on either side of the
// antimeridian are joined across it. For exact antipodes, where several
// geodesics tie, the one returned is deterministic.
func (e Ellipsoid) Inverse(from, to Coordinates) Solution {
	if from == to {
		return Solution{}
	}

	var s12, azi1, azi2 float64
	e.solver().Inverse(from.Lat, from.Lon, to.Lat, to.Lon, &s12, &azi1, &azi2)
	return Solution{
		Meters:   s12,
		Azimuth1: normalizeAzimuth(azi1),
		Azimuth2: normalizeAzimuth(azi2),
	}
}

// Direct solves the direct geodesic problem: the point reached by travelling
// meters along the geodesic leaving from at the given azimuth (degrees).
// The returned longitude is normalized into [-180, 180].
func (e Ellipsoid) Direct(from Coordinates, azimuth, meters float64) Coordinates {
	if meters == 0 {
		return from
	}

	var lat2, lon2 float64
	e.solver().Direct(from.Lat, from.Lon, azimuth, meters, &lat2, &lon2, nil)
	return Coordinates{Lon: wrapLongitude(lon2), Lat: lat2}
}

// DistanceKm returns the geodesic distance between two points in kilometers.
func (e Ellipsoid) DistanceKm(from, to Coordinates) float64 {
	return e.Inverse(from, to).Km()
}

// IntermediatePoints returns n points spaced evenly by distance along the
// geodesic from one endpoint to the other, excluding both endpoints.
func (e Ellipsoid) IntermediatePoints(from, to Coordinates, n int) []Coordinates {
	if n <= 0 {
		return nil
	}

	sol := e.Inverse(from, to)
	step := sol.Meters / float64(n+1)
	points := make([]Coordinates, 0, n)
	for i := 1; i <= n; i++ {
		points = append(points, e.Direct(from, sol.Azimuth1, step*float64(i)))
	}
	return points
}

// DistanceKm calculates the WGS84 geodesic distance in kilometers.
func DistanceKm(lon1, lat1, lon2, lat2 float64) float64 {
	return WGS84.DistanceKm(Coordinates{Lon: lon1, Lat: lat1}, Coordinates{Lon: lon2, Lat: lat2})
}

// DistanceBetween calculates the distance in kilometers between two coordinate points.
func DistanceBetween(from, to Coordinates) float64 {
	return WGS84.DistanceKm(from, to)
}

// IntermediatePoints returns n evenly spaced points on the WGS84 geodesic
// between two coordinates, endpoints excluded.
func IntermediatePoints(lon1, lat1, lon2, lat2 float64, n int) []Coordinates {
	return WGS84.IntermediatePoints(Coordinates{Lon: lon1, Lat: lat1}, Coordinates{Lon: lon2, Lat: lat2}, n)
}

// HaversineKm calculates the great-circle distance on a sphere of mean
// Earth radius, in kilometers.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	return HaversineWithRadius(lat1, lon1, lat2, lon2, EarthRadiusKm)
}

// HaversineWithRadius calculates the great-circle distance using a custom radius.
func HaversineWithRadius(lat1, lon1, lat2, lon2, radius float64) float64 {
	lat1Rad := degreesToRadians(lat1)
	lat2Rad := degreesToRadians(lat2)
	deltaLat := degreesToRadians(lat2 - lat1)
	deltaLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return radius * c
}

// wrapLongitude maps any longitude into [-180, 180].
func wrapLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

func normalizeAzimuth(az float64) float64 {
	az = math.Mod(az, 360)
	if az < 0 {
		az += 360
	}
	return az
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
