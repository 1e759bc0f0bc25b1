package stats

import (
	"github.com/xyaoaf/flight-route-map/airports"
	"github.com/xyaoaf/flight-route-map/routes"
)

// LogRow is one line of the full route log table.
type LogRow struct {
	Origin          string   `json:"origin"`
	OriginName      string   `json:"origin_name"`
	Destination     string   `json:"destination"`
	DestinationName string   `json:"destination_name"`
	DistanceKm      *float64 `json:"distance_km"`
	Distance        string   `json:"distance"`
}

// RouteLog lists every logged flight in input order with airport names and
// distance. Unknown airports and zero-length hops show the placeholder.
func RouteLog(rs []routes.Route, table *airports.Table) []LogRow {
	rows := make([]LogRow, 0, len(rs))
	for _, r := range rs {
		row := LogRow{
			Origin:          r.Origin,
			OriginName:      airportName(table, r.Origin),
			Destination:     r.Destination,
			DestinationName: airportName(table, r.Destination),
			Distance:        Placeholder,
		}
		if km, ok := RouteDistance(r, table); ok {
			row.DistanceKm = &km
			if km > 0 {
				row.Distance = FormatNumber(km)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func airportName(table *airports.Table, code string) string {
	if a, ok := table.Lookup(code); ok {
		return a.Name
	}
	return Placeholder
}
