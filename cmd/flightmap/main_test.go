package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "log.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_Summary(t *testing.T) {
	path := writeLog(t, "origin,destination\nHGH,PVG\nPVG,HGH\nHGH,SFO\nHGH,XXX\n")

	var out bytes.Buffer
	err := run(context.Background(), options{logPath: path, format: "summary", top: 3}, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Flights")
	assert.Contains(t, text, "Not on the map")
	assert.Contains(t, text, "XXX")
	assert.Contains(t, text, "HGH  Hangzhou Xiaoshan")
}

func TestRun_JSONAndGeoJSON(t *testing.T) {
	path := writeLog(t, "origin,destination\nHGH,SFO\n")

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), options{logPath: path, format: "json", n: 10, scale: true}, &out))
	var m struct {
		Routes []json.RawMessage `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &m))
	assert.Len(t, m.Routes, 1)

	out.Reset()
	require.NoError(t, run(context.Background(), options{logPath: path, format: "GeoJSON", n: 0}, &out))
	assert.Contains(t, out.String(), `"FeatureCollection"`)
	assert.Contains(t, out.String(), `"MultiLineString"`)
}

func TestRun_MissingLogIsEmpty(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), options{logPath: filepath.Join(t.TempDir(), "none.csv"), format: "summary"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "0 km")
	assert.NotContains(t, out.String(), "Most visited")
}

func TestRun_Errors(t *testing.T) {
	path := writeLog(t, "origin,destination\nHGH,PVG\n")

	err := run(context.Background(), options{logPath: path, format: "svg"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown format")

	err = run(context.Background(), options{logPath: path, format: "json", n: -1}, &bytes.Buffer{})
	assert.Error(t, err)

	bad := writeLog(t, "from,to\nHGH,PVG\n")
	err = run(context.Background(), options{logPath: bad, format: "summary"}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "missing column")
}
