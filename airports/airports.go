// Package airports holds the static airport table used to place flight
// routes on the map. A Table is immutable once built and safe for concurrent
// reads without locking.
package airports

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/anyascii/go"
	"github.com/xyaoaf/flight-route-map/pkg/geo"
)

// Region tags used by the built-in table.
const (
	RegionEastAsia      = "East Asia"
	RegionSoutheastAsia = "Southeast Asia"
	RegionCentralAsia   = "Central Asia"
	RegionOceania       = "Oceania"
	RegionEurope        = "Europe"
	RegionNorthAmerica  = "North America"
)

// ErrInvalidAirport is returned when a table row fails validation. It always
// indicates a configuration defect, never bad user input.
var ErrInvalidAirport = errors.New("invalid airport")

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Airport is one row of the table.
type Airport struct {
	Code   string  `json:"code"`
	Lon    float64 `json:"lon"`
	Lat    float64 `json:"lat"`
	Name   string  `json:"name"`
	Region string  `json:"region"`
}

// Coordinates returns the airport position.
func (a Airport) Coordinates() geo.Coordinates {
	return geo.Coordinates{Lon: a.Lon, Lat: a.Lat}
}

// Validate checks the code format and coordinate ranges.
func (a Airport) Validate() error {
	if !codePattern.MatchString(a.Code) {
		return fmt.Errorf("%w: code %q is not three uppercase letters", ErrInvalidAirport, a.Code)
	}
	if !a.Coordinates().IsValid() {
		return fmt.Errorf("%w: %s has coordinates out of range (lon=%v, lat=%v)", ErrInvalidAirport, a.Code, a.Lon, a.Lat)
	}
	return nil
}

// Table maps airport codes to airports.
type Table struct {
	byCode map[string]Airport
	sorted []Airport
	folded []string // ASCII-folded lowercase names, parallel to sorted
}

// New validates rows and builds a table. Later rows replace earlier ones with
// the same code.
func New(rows []Airport) (*Table, error) {
	byCode := make(map[string]Airport, len(rows))
	for _, a := range rows {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		byCode[a.Code] = a
	}

	sorted := make([]Airport, 0, len(byCode))
	for _, a := range byCode {
		sorted = append(sorted, a)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	folded := make([]string, len(sorted))
	for i, a := range sorted {
		folded[i] = foldName(a.Name)
	}

	return &Table{byCode: byCode, sorted: sorted, folded: folded}, nil
}

// MustNew is New for tables compiled into the binary; it panics on invalid rows.
func MustNew(rows []Airport) *Table {
	t, err := New(rows)
	if err != nil {
		panic(err)
	}
	return t
}

var (
	defaultTable *Table
	defaultOnce  sync.Once
)

// Default returns the built-in table.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = MustNew(builtin)
	})
	return defaultTable
}

// Lookup returns the airport for a code. Unknown codes are not an error.
func (t *Table) Lookup(code string) (Airport, bool) {
	a, ok := t.byCode[code]
	return a, ok
}

// Has reports whether the code is in the table.
func (t *Table) Has(code string) bool {
	_, ok := t.byCode[code]
	return ok
}

// Len returns the number of airports.
func (t *Table) Len() int {
	return len(t.byCode)
}

// All returns every airport ordered by code. The slice is a copy.
func (t *Table) All() []Airport {
	out := make([]Airport, len(t.sorted))
	copy(out, t.sorted)
	return out
}

// Merge returns a new table with extra rows added or replacing existing ones.
func (t *Table) Merge(extra []Airport) (*Table, error) {
	rows := make([]Airport, 0, len(t.sorted)+len(extra))
	rows = append(rows, t.sorted...)
	rows = append(rows, extra...)
	return New(rows)
}

// Search returns airports whose code equals the query or whose name contains
// it. Names are compared after ASCII folding, so "bao'an" and "Bao’an" match.
func (t *Table) Search(query string) []Airport {
	q := strings.TrimSpace(query)
	if q == "" {
		return t.All()
	}
	code := strings.ToUpper(q)
	needle := foldName(q)

	var out []Airport
	for i, a := range t.sorted {
		if a.Code == code || strings.Contains(t.folded[i], needle) {
			out = append(out, a)
		}
	}
	return out
}

func foldName(s string) string {
	return strings.ToLower(anyascii.Transliterate(s))
}
