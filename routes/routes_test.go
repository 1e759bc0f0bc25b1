package routes

import (
	"encoding/json"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPair_Canonical(t *testing.T) {
	assert.Equal(t, Pair{A: "HGH", B: "PVG"}, NewPair("PVG", "HGH"))
	assert.Equal(t, NewPair("HGH", "PVG"), NewPair("PVG", "HGH"))
	assert.Equal(t, Pair{A: "SFO", B: "SFO"}, NewPair("SFO", "SFO"))
}

func TestNormalize_CollapsesDirections(t *testing.T) {
	tests := []struct {
		name   string
		routes []Route
	}{
		{"A then B", []Route{{"AAA", "BBB"}, {"BBB", "AAA"}}},
		{"B then A", []Route{{"BBB", "AAA"}, {"AAA", "BBB"}}},
		{"same direction twice", []Route{{"BBB", "AAA"}, {"BBB", "AAA"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.routes)
			assert.Equal(t, Normalized{{A: "AAA", B: "BBB"}: 2}, got)
		})
	}
}

func TestAggregation_Scenario(t *testing.T) {
	routes := []Route{{"HGH", "PVG"}, {"PVG", "HGH"}, {"HGH", "SFO"}}

	normalized := Normalize(routes)
	if diff := deep.Equal(normalized, Normalized{
		{A: "HGH", B: "PVG"}: 2,
		{A: "HGH", B: "SFO"}: 1,
	}); diff != nil {
		t.Error(diff)
	}

	visits := VisitCounts(routes)
	if diff := deep.Equal(visits, map[string]int{"HGH": 3, "PVG": 2, "SFO": 1}); diff != nil {
		t.Error(diff)
	}

	assert.Equal(t, []PairCount{
		{Pair: Pair{A: "HGH", B: "PVG"}, Count: 2},
		{Pair: Pair{A: "HGH", B: "SFO"}, Count: 1},
	}, normalized.Sorted())
}

func TestAggregation_EmptyInput(t *testing.T) {
	assert.Empty(t, Normalize(nil))
	assert.Empty(t, VisitCounts(nil))
	assert.Empty(t, Normalize(nil).Sorted())
	assert.Empty(t, TopVisits(nil, 10))
}

func TestAggregation_KeepsUnknownCodes(t *testing.T) {
	routes := []Route{{"XXX", "HGH"}}
	assert.Equal(t, Normalized{{A: "HGH", B: "XXX"}: 1}, Normalize(routes))
	assert.Equal(t, map[string]int{"XXX": 1, "HGH": 1}, VisitCounts(routes))
}

func TestTopVisits(t *testing.T) {
	visits := map[string]int{"HGH": 3, "PVG": 2, "SFO": 2, "LAX": 5}

	assert.Equal(t, []Visit{{"LAX", 5}, {"HGH", 3}}, TopVisits(visits, 2))
	assert.Equal(t, []Visit{{"LAX", 5}, {"HGH", 3}, {"PVG", 2}, {"SFO", 2}}, TopVisits(visits, 0))
}

func TestPair_JSONKeys(t *testing.T) {
	data, err := json.Marshal(Normalized{{A: "HGH", B: "PVG"}: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"HGH-PVG":2}`, string(data))

	var decoded Normalized
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Normalized{{A: "HGH", B: "PVG"}: 2}, decoded)

	var bad Pair
	assert.Error(t, bad.UnmarshalText([]byte("HGH")))
}
