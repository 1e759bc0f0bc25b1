package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Known airport coordinates for testing
var (
	// JFK - New York John F. Kennedy International Airport
	JFK = Coordinates{Lat: 40.6413, Lon: -73.7781}
	// LAX - Los Angeles International Airport
	LAX = Coordinates{Lat: 33.9425, Lon: -118.4081}
	// LHR - London Heathrow Airport
	LHR = Coordinates{Lat: 51.4700, Lon: -0.4543}
	// SYD - Sydney Kingsford Smith Airport
	SYD = Coordinates{Lat: -33.9461, Lon: 151.1772}
	// NRT - Tokyo Narita International Airport
	NRT = Coordinates{Lat: 35.7668, Lon: 140.3929}
	// HGH - Hangzhou Xiaoshan
	HGH = Coordinates{Lat: 30.2295, Lon: 120.4333}
	// SFO - San Francisco International Airport
	SFO = Coordinates{Lat: 37.6189, Lon: -122.375}
)

func TestDistanceKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		from      Coordinates
		to        Coordinates
		expected  float64 // expected distance in km
		tolerance float64 // acceptable error margin
	}{
		{
			name:      "JFK to LAX",
			from:      JFK,
			to:        LAX,
			expected:  3983,
			tolerance: 15,
		},
		{
			name:      "LHR to JFK",
			from:      LHR,
			to:        JFK,
			expected:  5555,
			tolerance: 25,
		},
		{
			name:      "LHR to SYD",
			from:      LHR,
			to:        SYD,
			expected:  17016,
			tolerance: 40,
		},
		{
			name:      "HGH to SFO",
			from:      HGH,
			to:        SFO,
			expected:  10040,
			tolerance: 80,
		},
		{
			name:      "Same location (JFK to JFK)",
			from:      JFK,
			to:        JFK,
			expected:  0,
			tolerance: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance := DistanceBetween(tt.from, tt.to)
			assert.InDelta(t, tt.expected, distance, tt.tolerance,
				"Distance %f should be within %f of %f", distance, tt.tolerance, tt.expected)
		})
	}
}

func TestInverse_ReferenceLine(t *testing.T) {
	// Flinders Peak to Buninyong.
	flinders := Coordinates{Lat: -37.95103341666667, Lon: 144.42486788888889}
	buninyong := Coordinates{Lat: -37.65282113888889, Lon: 143.92649552777777}

	sol := WGS84.Inverse(flinders, buninyong)
	assert.InDelta(t, 54972.271, sol.Meters, 0.01)
	assert.InDelta(t, 306.8681583, sol.Azimuth1, 1e-4)
}

func TestDistanceKm_Symmetry(t *testing.T) {
	pairs := [][2]Coordinates{
		{JFK, LAX},
		{LHR, SYD},
		{HGH, SFO},
		{{Lon: 179, Lat: 10}, {Lon: -179, Lat: -10}},
	}
	for _, p := range pairs {
		ab := DistanceBetween(p[0], p[1])
		ba := DistanceBetween(p[1], p[0])
		assert.InDelta(t, ab, ba, 1e-6, "Distance should be symmetric")
	}
}

func TestDistanceKm_ZeroForIdenticalPoints(t *testing.T) {
	for _, c := range []Coordinates{JFK, SYD, {Lon: 180, Lat: 0}, {Lon: 0, Lat: 89.9}} {
		assert.Equal(t, 0.0, DistanceKm(c.Lon, c.Lat, c.Lon, c.Lat))
	}
}

func TestDistanceKm_AcrossAntimeridian(t *testing.T) {
	// Two degrees of equator, not 358.
	d := DistanceKm(179, 0, -179, 0)
	assert.InDelta(t, 222.64, d, 0.1)
}

// halfMeridianKm is the longest geodesic on WGS84.
const halfMeridianKm = 20003.931458625

func TestInverse_NearAntipodalStaysEllipsoidal(t *testing.T) {
	origin := Coordinates{Lon: 0, Lat: 0}
	prev := 0.0
	for lon := 179.0; lon <= 180.0+1e-9; lon += 0.05 {
		d := WGS84.Inverse(origin, Coordinates{Lon: lon, Lat: 0}).Km()
		require.False(t, math.IsNaN(d), "lon %v", lon)
		assert.Greater(t, d, prev, "distance must grow as lon moves to %v", lon)
		assert.LessOrEqual(t, d, halfMeridianKm+1e-6, "lon %v", lon)
		prev = d
	}
	assert.InDelta(t, halfMeridianKm, prev, 1e-3)

	// Either side of the point where the equator stops being the shortest path.
	assert.Less(t,
		WGS84.Inverse(origin, Coordinates{Lon: 179.39, Lat: 0}).Km(),
		WGS84.Inverse(origin, Coordinates{Lon: 179.4, Lat: 0}).Km())
}

func TestIntermediatePoints_Antipodal(t *testing.T) {
	from, to := Coordinates{Lon: 0, Lat: 0}, Coordinates{Lon: 180, Lat: 0}
	pts := WGS84.IntermediatePoints(from, to, 9)
	require.Len(t, pts, 9)

	total := WGS84.Inverse(from, to).Meters
	for i, p := range pts {
		assert.False(t, math.IsNaN(p.Lon) || math.IsNaN(p.Lat))
		assert.True(t, p.IsValid(), "point %+v out of range", p)
		assert.InDelta(t, total*float64(i+1)/10, WGS84.Inverse(from, p).Meters, 1)
	}
}

func TestIntermediatePoints_EvenlySpaced(t *testing.T) {
	const n = 9
	total := DistanceBetween(JFK, NRT)
	pts := WGS84.IntermediatePoints(JFK, NRT, n)
	require.Len(t, pts, n)

	for i, p := range pts {
		expected := total * float64(i+1) / float64(n+1)
		assert.InDelta(t, expected, DistanceBetween(JFK, p), 1e-3)
	}
	assert.NotEqual(t, JFK, pts[0])
	assert.NotEqual(t, NRT, pts[n-1])
}

func TestIntermediatePoints_ShortWayAroundSeam(t *testing.T) {
	pts := IntermediatePoints(179, 0, -179, 0, 1)
	require.Len(t, pts, 1)
	assert.InDelta(t, 180, math.Abs(pts[0].Lon), 1e-6)
	assert.InDelta(t, 0, pts[0].Lat, 1e-6)
}

func TestIntermediatePoints_NonPositiveCount(t *testing.T) {
	assert.Nil(t, WGS84.IntermediatePoints(JFK, LAX, 0))
	assert.Nil(t, WGS84.IntermediatePoints(JFK, LAX, -3))
}

func TestDirect_RoundTrip(t *testing.T) {
	sol := WGS84.Inverse(LHR, SYD)
	end := WGS84.Direct(LHR, sol.Azimuth1, sol.Meters)
	assert.InDelta(t, SYD.Lat, end.Lat, 1e-6)
	assert.InDelta(t, SYD.Lon, end.Lon, 1e-6)
}

func TestHaversineKm(t *testing.T) {
	// JFK to LAX on the sphere should be approximately 3,983 km
	distance := HaversineKm(JFK.Lat, JFK.Lon, LAX.Lat, LAX.Lon)
	assert.InDelta(t, 3983, distance, 50, "JFK to LAX should be ~3,983 km")
}

func TestWrapLongitude(t *testing.T) {
	tests := []struct {
		in, out float64
	}{
		{0, 0},
		{180, 180},
		{-180, -180},
		{181, -179},
		{-181, 179},
		{358, -2},
		{-358, 2},
		{540, -180},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.out, wrapLongitude(tt.in), 1e-9, "wrap(%v)", tt.in)
	}
}

func TestCoordinates_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		coords   Coordinates
		expected bool
	}{
		{"Valid JFK", JFK, true},
		{"Valid Sydney (negative lat)", SYD, true},
		{"Valid origin", Coordinates{0, 0}, true},
		{"Invalid latitude too high", Coordinates{Lat: 91}, false},
		{"Invalid latitude too low", Coordinates{Lat: -91}, false},
		{"Invalid longitude too high", Coordinates{Lon: 181}, false},
		{"Invalid longitude too low", Coordinates{Lon: -181}, false},
		{"Edge case max lat", Coordinates{Lat: 90}, true},
		{"Edge case min lon", Coordinates{Lon: -180}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.coords.IsValid())
		})
	}
}

func TestCoordinates_IsZero(t *testing.T) {
	assert.True(t, Coordinates{0, 0}.IsZero())
	assert.False(t, JFK.IsZero())
	assert.False(t, Coordinates{Lon: 0, Lat: 1}.IsZero())
}

func BenchmarkInverse(b *testing.B) {
	for i := 0; i < b.N; i++ {
		WGS84.Inverse(JFK, LAX)
	}
}

func BenchmarkIntermediatePoints(b *testing.B) {
	for i := 0; i < b.N; i++ {
		WGS84.IntermediatePoints(HGH, SFO, DefaultArcPoints)
	}
}
