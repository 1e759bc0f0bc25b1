package stats

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Reference lengths for the distance milestones.
const (
	EarthCircumferenceKm = 40075.0
	EarthMoonKm          = 384400.0
	CruiseSpeedKmh       = 870.0
	CO2KgPerKm           = 0.19
)

// Placeholder shown where a value is unavailable.
const Placeholder = "—"

// Milestones restates a total distance in more familiar terms.
type Milestones struct {
	EarthCircumferences float64 `json:"earth_circumferences"`
	MoonPercent         float64 `json:"moon_percent"`
	HoursAirborne       float64 `json:"hours_airborne"`
	CO2Tonnes           float64 `json:"co2_tonnes"`
}

// MilestonesFor converts a distance in kilometers.
func MilestonesFor(km float64) Milestones {
	return Milestones{
		EarthCircumferences: km / EarthCircumferenceKm,
		MoonPercent:         km / EarthMoonKm * 100,
		HoursAirborne:       km / CruiseSpeedKmh,
		CO2Tonnes:           km * CO2KgPerKm / 1000,
	}
}

var printer = message.NewPrinter(language.English)

// FormatKm renders a distance with thousands separators, e.g. "12,345 km".
func FormatKm(km float64) string {
	return printer.Sprintf("%.0f km", km)
}

// FormatNumber renders a value with thousands separators and no decimals.
func FormatNumber(v float64) string {
	return printer.Sprintf("%.0f", v)
}

// Formatted is the human-readable form of a Stats record and its milestones.
type Formatted struct {
	TotalDistance       string `json:"total_distance"`
	EarthCircumferences string `json:"earth_circumferences"`
	WayToMoon           string `json:"way_to_moon"`
	HoursInAir          string `json:"hours_in_air"`
	CO2                 string `json:"co2"`
}

// Format renders the headline numbers for display.
func Format(s Stats) Formatted {
	m := MilestonesFor(s.TotalKm)
	return Formatted{
		TotalDistance:       FormatKm(s.TotalKm),
		EarthCircumferences: printer.Sprintf("%.2f ×", m.EarthCircumferences),
		WayToMoon:           printer.Sprintf("%.1f %%", m.MoonPercent),
		HoursInAir:          printer.Sprintf("%.0f h", m.HoursAirborne),
		CO2:                 printer.Sprintf("%.1f t", m.CO2Tonnes),
	}
}
