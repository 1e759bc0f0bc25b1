package airports

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_BuiltinTableIsValid(t *testing.T) {
	table := Default()
	assert.Equal(t, len(builtin), table.Len())

	hgh, ok := table.Lookup("HGH")
	require.True(t, ok)
	assert.Equal(t, "Hangzhou Xiaoshan", hgh.Name)
	assert.Equal(t, RegionEastAsia, hgh.Region)
	assert.InDelta(t, 120.4333, hgh.Coordinates().Lon, 1e-9)
	assert.InDelta(t, 30.2295, hgh.Coordinates().Lat, 1e-9)

	_, ok = table.Lookup("XXX")
	assert.False(t, ok)
	assert.False(t, table.Has("XXX"))
	assert.True(t, table.Has("SFO"))
}

func TestNew_RejectsInvalidRows(t *testing.T) {
	tests := []struct {
		name string
		row  Airport
	}{
		{"latitude out of range", Airport{Code: "AAA", Lon: 0, Lat: 91}},
		{"longitude out of range", Airport{Code: "AAA", Lon: -180.5, Lat: 0}},
		{"lowercase code", Airport{Code: "aaa"}},
		{"short code", Airport{Code: "AA"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]Airport{tt.row})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidAirport))
		})
	}
}

func TestMustNew_PanicsOnInvalidRow(t *testing.T) {
	assert.Panics(t, func() {
		MustNew([]Airport{{Code: "BAD", Lat: 100}})
	})
}

func TestAll_SortedCopy(t *testing.T) {
	table := MustNew([]Airport{
		{Code: "SFO", Lon: -122.375, Lat: 37.6189, Name: "San Francisco Intl"},
		{Code: "HGH", Lon: 120.4333, Lat: 30.2295, Name: "Hangzhou Xiaoshan"},
	})
	all := table.All()
	require.Len(t, all, 2)
	assert.Equal(t, "HGH", all[0].Code)
	assert.Equal(t, "SFO", all[1].Code)

	all[0].Name = "mutated"
	again, _ := table.Lookup("HGH")
	assert.Equal(t, "Hangzhou Xiaoshan", again.Name)
}

func TestMerge_OverridesAndAdds(t *testing.T) {
	base := Default()
	merged, err := base.Merge([]Airport{
		{Code: "HNL", Lon: -157.9224, Lat: 21.3187, Name: "Honolulu", Region: "Oceania"},
		{Code: "TXL", Lon: 13.5033, Lat: 52.3667, Name: "Berlin Brandenburg", Region: RegionEurope},
	})
	require.NoError(t, err)

	assert.Equal(t, base.Len()+1, merged.Len())
	txl, _ := merged.Lookup("TXL")
	assert.Equal(t, "Berlin Brandenburg", txl.Name)

	orig, _ := base.Lookup("TXL")
	assert.Equal(t, "Berlin Tegel", orig.Name, "base table must not change")
}

func TestSearch(t *testing.T) {
	table := Default()

	byCode := table.Search("pvg")
	require.Len(t, byCode, 1)
	assert.Equal(t, "PVG", byCode[0].Code)

	byName := table.Search("shanghai")
	codes := make([]string, 0, len(byName))
	for _, a := range byName {
		codes = append(codes, a.Code)
	}
	assert.Equal(t, []string{"PVG", "SHA"}, codes)

	folded := table.Search("Bao’an")
	require.Len(t, folded, 1)
	assert.Equal(t, "SZX", folded[0].Code)

	assert.Len(t, table.Search("  "), table.Len())
	assert.Empty(t, table.Search("zzzz"))
}

func TestHolder(t *testing.T) {
	h := NewHolder(nil)
	assert.Same(t, Default(), h.Table())

	merged, err := Default().Merge([]Airport{{Code: "HNL", Lon: -157.9224, Lat: 21.3187, Name: "Honolulu"}})
	require.NoError(t, err)
	h.Store(merged)
	assert.True(t, h.Table().Has("HNL"))
}
