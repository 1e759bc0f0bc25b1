package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := "date,Origin,Destination,airline\n" +
		"2024-01-02, hgh , pvg ,MU\n" +
		"2024-01-05,PVG,HGH,MU\n" +
		"2024-02-01,HGH,\n" +
		"2024-02-02,nan,SFO,UA\n" +
		"2024-02-03,KSFO,HGH,UA\n" +
		"2024-02-04,HGH,SFO,UA\n"

	got, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []Route{
		{Origin: "HGH", Destination: "PVG"},
		{Origin: "PVG", Destination: "HGH"},
		{Origin: "HGH", Destination: "SFO"},
	}, got)
}

func TestParseCSV_ByteOrderMark(t *testing.T) {
	got, err := ParseCSV(strings.NewReader("\ufefforigin,destination\nHGH,PVG\n"))
	require.NoError(t, err)
	assert.Equal(t, []Route{{Origin: "HGH", Destination: "PVG"}}, got)
}

func TestParseCSV_Empty(t *testing.T) {
	got, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ParseCSV(strings.NewReader("origin,destination\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseCSV_MissingColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("from,to\nHGH,PVG\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))

	_, err = ParseCSV(strings.NewReader("origin,to\nHGH,PVG\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), DestinationColumn)
}

func TestFetcher_Load(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/log.csv" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte("origin,destination\nHGH,SFO\n"))
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)

	got, err := f.Load(context.Background(), srv.URL+"/log.csv")
	require.NoError(t, err)
	assert.Equal(t, []Route{{Origin: "HGH", Destination: "SFO"}}, got)

	_, err = f.Load(context.Background(), srv.URL+"/missing.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
