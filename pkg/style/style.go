// Package style maps traversal and visit counts to the visual weight of map
// elements: marker sizes, line widths and opacities, and hover labels.
package style

import (
	"fmt"
	"math"
)

// Marker sizes, one per bucket.
const (
	MarkerSmall  = 8
	MarkerMedium = 12
	MarkerLarge  = 16
	MarkerXLarge = 20
)

// Line style constants.
const (
	FixedWidth     = 2.0
	FixedOpacity   = 0.65
	BaseWidth      = 1.5
	WidthPerExtra  = 0.7
	BaseOpacity    = 0.45
	OpacityPerHit  = 0.12
	MaxLineOpacity = 0.95
)

// MarkerSize buckets a visit count into one of four sizes. Linear scaling
// lets transit hubs swamp the map.
func MarkerSize(count int) int {
	switch {
	case count <= 5:
		return MarkerSmall
	case count <= 10:
		return MarkerMedium
	case count <= 15:
		return MarkerLarge
	default:
		return MarkerXLarge
	}
}

// LineStyle is the stroke of one route trace.
type LineStyle struct {
	Width   float64 `json:"width"`
	Opacity float64 `json:"opacity"`
}

// LineStyleFor returns the stroke for a route flown count times. With scaling
// off every route looks the same; with it on, width grows linearly past the
// first traversal and opacity grows until it is capped below fully opaque.
func LineStyleFor(count int, scale bool) LineStyle {
	if !scale {
		return LineStyle{Width: FixedWidth, Opacity: FixedOpacity}
	}
	return LineStyle{
		Width:   BaseWidth + WidthPerExtra*float64(count-1),
		Opacity: math.Min(BaseOpacity+OpacityPerHit*float64(count), MaxLineOpacity),
	}
}

// RouteLabel is the hover text of a route trace.
func RouteLabel(a, b string, count int) string {
	label := fmt.Sprintf("✈ %s → %s", a, b)
	if count > 1 {
		label += fmt.Sprintf("  ×%d", count)
	}
	return label
}

// AirportLabel is the hover text of an airport marker.
func AirportLabel(code, name string, visits int) string {
	return fmt.Sprintf("<b>%s</b> – %s<br>Visited %d×", code, name, visits)
}
