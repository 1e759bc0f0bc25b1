// Package stats computes summary metrics over a flight log: flight and airport
// counts, total geodesic distance, regions visited and unknown airports.
package stats

import (
	"sort"

	"github.com/xyaoaf/flight-route-map/airports"
	"github.com/xyaoaf/flight-route-map/pkg/geo"
	"github.com/xyaoaf/flight-route-map/routes"
)

// Stats is the aggregate record for one route snapshot.
type Stats struct {
	Flights     int            `json:"n_flights"`
	Airports    int            `json:"n_airports"`
	TotalKm     float64        `json:"total_km"`
	RegionCount int            `json:"n_regions"`
	Regions     []string       `json:"regions"`
	Visits      map[string]int `json:"visits"`
	Missing     []string       `json:"missing"`
}

// Compute derives every field from the same routes slice. Routes touching an
// unknown airport add nothing to the distance but still count as flights, and
// their unknown codes are listed in Missing. Airports counts every distinct
// code seen, known or not.
func Compute(rs []routes.Route, table *airports.Table) Stats {
	visits := routes.VisitCounts(rs)

	var totalKm float64
	for _, r := range rs {
		if km, ok := RouteDistance(r, table); ok {
			totalKm += km
		}
	}

	regionSet := make(map[string]struct{})
	missingSet := make(map[string]struct{})
	for code := range visits {
		if a, ok := table.Lookup(code); ok {
			regionSet[a.Region] = struct{}{}
		} else {
			missingSet[code] = struct{}{}
		}
	}

	regions := sortedKeys(regionSet)
	return Stats{
		Flights:     len(rs),
		Airports:    len(visits),
		TotalKm:     totalKm,
		RegionCount: len(regions),
		Regions:     regions,
		Visits:      visits,
		Missing:     sortedKeys(missingSet),
	}
}

// RouteDistance returns the geodesic length of a route in kilometers, or
// false when either endpoint is not in the table.
func RouteDistance(r routes.Route, table *airports.Table) (float64, bool) {
	o, ok := table.Lookup(r.Origin)
	if !ok {
		return 0, false
	}
	d, ok := table.Lookup(r.Destination)
	if !ok {
		return 0, false
	}
	return geo.WGS84.DistanceKm(o.Coordinates(), d.Coordinates()), true
}

// RankedAirport is an entry of the most-visited ranking.
type RankedAirport struct {
	Code   string `json:"code"`
	Label  string `json:"label"`
	Visits int    `json:"visits"`
}

// TopAirports ranks the n most visited airports. Known airports are labelled
// "CODE  Name"; unknown ones by code alone.
func (s Stats) TopAirports(table *airports.Table, n int) []RankedAirport {
	top := routes.TopVisits(s.Visits, n)
	out := make([]RankedAirport, 0, len(top))
	for _, v := range top {
		label := v.Code
		if a, ok := table.Lookup(v.Code); ok {
			label = v.Code + "  " + a.Name
		}
		out = append(out, RankedAirport{Code: v.Code, Label: label, Visits: v.Count})
	}
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
