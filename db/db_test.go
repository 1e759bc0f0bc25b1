package db

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyaoaf/flight-route-map/airports"
	"github.com/xyaoaf/flight-route-map/routes"
)

func TestMigrations_EmbeddedInOrder(t *testing.T) {
	ms, err := Migrations()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(ms), 2)

	for i, m := range ms {
		assert.True(t, strings.HasSuffix(m.Version, ".sql"), m.Version)
		assert.Len(t, m.Checksum, 64)
		assert.NotEmpty(t, strings.TrimSpace(m.SQL))
		if i > 0 {
			assert.Less(t, ms[i-1].Version, m.Version)
		}
	}
	assert.Contains(t, ms[0].SQL, "flight_logs")
}

// testStore connects to the database named by FLIGHTMAP_TEST_DATABASE_URL,
// skipping when it is unset.
func testStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("FLIGHTMAP_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("FLIGHTMAP_TEST_DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	require.NoError(t, RunMigrations(ctx, dsn))
	// Second run must be a no-op.
	require.NoError(t, RunMigrations(ctx, dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return NewStore(pool)
}

func TestStore_FlightLogLifecycle(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	rs := []routes.Route{{Origin: "HGH", Destination: "PVG"}, {Origin: "HGH", Destination: "SFO"}}
	saved, err := store.SaveLog(ctx, "2024 trips", []byte("raw"), rs)
	require.NoError(t, err)
	assert.Equal(t, 2, saved.Flights)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := store.GetLog(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, rs, got.Routes)
	assert.Equal(t, saved.SHA256, got.SHA256)

	list, err := store.ListLogs(ctx, 10)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	assert.Equal(t, saved.ID, list[0].ID)

	require.NoError(t, store.DeleteLog(ctx, saved.ID))
	_, err = store.GetLog(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrLogNotFound)
	assert.ErrorIs(t, store.DeleteLog(ctx, saved.ID), ErrLogNotFound)
}

func TestStore_GetLogUnknownID(t *testing.T) {
	store := testStore(t)
	_, err := store.GetLog(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrLogNotFound)
}

func TestStore_AirportOverrides(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	hnl := airports.Airport{Code: "HNL", Lon: -157.9224, Lat: 21.3187, Name: "Honolulu", Region: airports.RegionOceania}
	require.NoError(t, store.UpsertAirports(ctx, []airports.Airport{hnl}))
	hnl.Name = "Daniel K. Inouye"
	require.NoError(t, store.UpsertAirports(ctx, []airports.Airport{hnl}))

	rows, err := store.AirportOverrides(ctx)
	require.NoError(t, err)
	assert.Contains(t, rows, hnl)

	err = store.UpsertAirports(ctx, []airports.Airport{{Code: "bad"}})
	assert.ErrorIs(t, err, airports.ErrInvalidAirport)
}
