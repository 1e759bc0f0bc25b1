package routes

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Column names expected in a flight log header (matched case-insensitively).
const (
	OriginColumn      = "origin"
	DestinationColumn = "destination"
)

var (
	// ErrMissingColumn is returned when the header lacks origin or destination.
	ErrMissingColumn = errors.New("missing column")
	// ErrMalformedCSV wraps reader errors such as bad quoting.
	ErrMalformedCSV = errors.New("malformed csv")
)

// ParseCSV reads a flight log with a header row. Codes are trimmed and
// uppercased; rows whose codes are not exactly three characters, or that
// hold a NaN placeholder, are dropped rather than reported.
func ParseCSV(r io.Reader) ([]Route, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", ErrMalformedCSV, err)
	}

	originIdx, destIdx := -1, -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		switch name {
		case OriginColumn:
			originIdx = i
		case DestinationColumn:
			destIdx = i
		}
	}
	if originIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, OriginColumn)
	}
	if destIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, DestinationColumn)
	}

	var out []Route
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read line %d: %w", ErrMalformedCSV, line, err)
		}
		origin, ok := cleanCode(field(record, originIdx))
		if !ok {
			continue
		}
		dest, ok := cleanCode(field(record, destIdx))
		if !ok {
			continue
		}
		out = append(out, Route{Origin: origin, Destination: dest})
	}
	return out, nil
}

func field(record []string, idx int) string {
	if idx >= len(record) {
		return ""
	}
	return record[idx]
}

func cleanCode(raw string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if utf8.RuneCountInString(code) != 3 || code == "NAN" {
		return "", false
	}
	return code, true
}
