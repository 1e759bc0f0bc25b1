// Package routes aggregates a flight log into undirected route counts and
// per-airport visit counts.
package routes

import (
	"fmt"
	"sort"
	"strings"
)

// Route is one logged flight, origin to destination.
type Route struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// Pair is an undirected route in canonical form: A <= B.
type Pair struct {
	A string
	B string
}

// NewPair returns the canonical pair for two codes in either order.
func NewPair(x, y string) Pair {
	if y < x {
		x, y = y, x
	}
	return Pair{A: x, B: y}
}

// Pair returns the canonical pair of the route.
func (r Route) Pair() Pair {
	return NewPair(r.Origin, r.Destination)
}

func (p Pair) String() string {
	return fmt.Sprintf("%s-%s", p.A, p.B)
}

// MarshalText encodes the pair as "A-B" so it can key JSON objects.
func (p Pair) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses the "A-B" form.
func (p *Pair) UnmarshalText(text []byte) error {
	a, b, ok := strings.Cut(string(text), "-")
	if !ok || a == "" || b == "" {
		return fmt.Errorf("invalid route pair %q", text)
	}
	*p = NewPair(a, b)
	return nil
}

// Normalized maps canonical pairs to traversal counts (always >= 1).
type Normalized map[Pair]int

// PairCount is one entry of a Normalized map.
type PairCount struct {
	Pair  Pair `json:"pair"`
	Count int  `json:"count"`
}

// Normalize collapses both travel directions of each route into one pair and
// counts how many times either direction was flown.
func Normalize(routes []Route) Normalized {
	out := make(Normalized, len(routes))
	for _, r := range routes {
		out[r.Pair()]++
	}
	return out
}

// Sorted returns the entries ordered by count descending, then by pair.
func (n Normalized) Sorted() []PairCount {
	out := make([]PairCount, 0, len(n))
	for p, c := range n {
		out = append(out, PairCount{Pair: p, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Pair.A != out[j].Pair.A {
			return out[i].Pair.A < out[j].Pair.A
		}
		return out[i].Pair.B < out[j].Pair.B
	})
	return out
}

// VisitCounts counts every appearance of a code as origin or destination, so
// a round trip through an airport counts it twice.
func VisitCounts(routes []Route) map[string]int {
	out := make(map[string]int)
	for _, r := range routes {
		out[r.Origin]++
		out[r.Destination]++
	}
	return out
}

// Visit is one airport's visit total.
type Visit struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

// TopVisits returns the n most visited airports, ties broken by code. A
// non-positive n returns all of them.
func TopVisits(visits map[string]int, n int) []Visit {
	out := make([]Visit, 0, len(visits))
	for code, c := range visits {
		out = append(out, Visit{Code: code, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
