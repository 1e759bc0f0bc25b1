package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyaoaf/flight-route-map/airports"
	"github.com/xyaoaf/flight-route-map/routes"
)

func TestMilestonesFor(t *testing.T) {
	m := MilestonesFor(40075)
	assert.InDelta(t, 1.0, m.EarthCircumferences, 1e-12)
	assert.InDelta(t, 40075.0/384400*100, m.MoonPercent, 1e-12)
	assert.InDelta(t, 40075.0/870, m.HoursAirborne, 1e-12)
	assert.InDelta(t, 40075*0.19/1000, m.CO2Tonnes, 1e-12)

	assert.Equal(t, Milestones{}, MilestonesFor(0))
}

func TestFormatKm(t *testing.T) {
	tests := []struct {
		km   float64
		want string
	}{
		{0, "0 km"},
		{999.4, "999 km"},
		{12345.2, "12,345 km"},
		{1234567, "1,234,567 km"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatKm(tt.km))
	}
}

func TestRouteLog(t *testing.T) {
	table := airports.Default()
	rows := RouteLog([]routes.Route{
		{Origin: "HGH", Destination: "PVG"},
		{Origin: "HGH", Destination: "XXX"},
		{Origin: "SFO", Destination: "SFO"},
	}, table)
	require.Len(t, rows, 3)

	assert.Equal(t, "Hangzhou Xiaoshan", rows[0].OriginName)
	assert.Equal(t, "Shanghai Pudong", rows[0].DestinationName)
	require.NotNil(t, rows[0].DistanceKm)
	assert.NotEqual(t, Placeholder, rows[0].Distance)

	assert.Equal(t, Placeholder, rows[1].DestinationName)
	assert.Nil(t, rows[1].DistanceKm)
	assert.Equal(t, Placeholder, rows[1].Distance)

	require.NotNil(t, rows[2].DistanceKm)
	assert.Zero(t, *rows[2].DistanceKm)
	assert.Equal(t, Placeholder, rows[2].Distance)
}
