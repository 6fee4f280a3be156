package offline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmate-app/travelmate-client/types"
)

// tickingClock returns a fake time source that advances one second per call
// so queued actions get distinct ids.
func tickingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Second)
		return t
	}
}

func testTrip(id, title string) types.Trip {
	return types.Trip{
		ID:          id,
		Title:       title,
		Destination: "Lisbon",
		StartDate:   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 7, 8, 0, 0, 0, 0, time.UTC),
		Budget:      decimal.NewFromInt(1500),
	}
}

func TestCacheTripsStampsLastSync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offline_data.json")
	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	cache, err := Open(path, WithClock(tickingClock(start)))
	require.NoError(t, err)

	_, ok := cache.LastSync()
	assert.False(t, ok)

	require.NoError(t, cache.CacheTrips([]types.Trip{testTrip("trip-1", "A")}))

	lastSync, ok := cache.LastSync()
	require.True(t, ok)
	assert.Equal(t, start, lastSync)
	assert.Len(t, cache.CachedTrips(), 1)
}

func TestCacheTripUpsertPreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offline_data.json")
	cache, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, cache.CacheTrip(testTrip("trip-1", "First")))
	require.NoError(t, cache.CacheTrip(testTrip("trip-2", "Second")))

	// Updating trip-1 replaces it in place; the list stays [trip-1, trip-2]
	require.NoError(t, cache.CacheTrip(testTrip("trip-1", "First renamed")))

	trips := cache.CachedTrips()
	require.Len(t, trips, 2)
	assert.Equal(t, "trip-1", trips[0].ID)
	assert.Equal(t, "First renamed", trips[0].Title)
	assert.Equal(t, "trip-2", trips[1].ID)
}

func TestCachedTripLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offline_data.json")
	cache, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, cache.CacheTrip(testTrip("trip-1", "A")))

	trip, ok := cache.CachedTrip("trip-1")
	require.True(t, ok)
	assert.Equal(t, "A", trip.Title)

	_, ok = cache.CachedTrip("missing")
	assert.False(t, ok)
}

func TestRemoveCachedTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offline_data.json")
	cache, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, cache.CacheTrip(testTrip("trip-1", "A")))
	require.NoError(t, cache.RemoveCachedTrip("trip-1"))
	assert.Empty(t, cache.CachedTrips())

	// Removing an absent trip is a no-op
	require.NoError(t, cache.RemoveCachedTrip("trip-1"))
}

func TestPendingActionQueueFIFO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offline_data.json")
	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	cache, err := Open(path, WithClock(tickingClock(start)))
	require.NoError(t, err)

	a, err := cache.AddPendingAction(types.ActionCreateTrip, ActionPayload{Trip: &types.TripCreate{Title: "A"}})
	require.NoError(t, err)
	b, err := cache.AddPendingAction(types.ActionDeleteTrip, ActionPayload{TripID: "trip-9"})
	require.NoError(t, err)

	queued := cache.PendingActions()
	require.Len(t, queued, 2)
	assert.Equal(t, a.ID, queued[0].ID)
	assert.Equal(t, b.ID, queued[1].ID)
	assert.Equal(t, types.ActionCreateTrip, queued[0].Type)

	require.NoError(t, cache.RemovePendingAction(a.ID))
	queued = cache.PendingActions()
	require.Len(t, queued, 1)
	assert.Equal(t, b.ID, queued[0].ID)

	// Removing an already removed action is a no-op
	require.NoError(t, cache.RemovePendingAction(a.ID))
	assert.Len(t, cache.PendingActions(), 1)

	require.NoError(t, cache.ClearPendingActions())
	assert.Empty(t, cache.PendingActions())
}

func TestCachePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offline_data.json")
	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	cache, err := Open(path, WithClock(tickingClock(start)))
	require.NoError(t, err)
	require.NoError(t, cache.CacheTrips([]types.Trip{testTrip("trip-1", "A")}))
	_, err = cache.AddPendingAction(types.ActionDeleteTrip, ActionPayload{TripID: "trip-2"})
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Len(t, reopened.CachedTrips(), 1)
	assert.Len(t, reopened.PendingActions(), 1)

	lastSync, ok := reopened.LastSync()
	require.True(t, ok)
	assert.Equal(t, start, lastSync)
}

func TestCacheFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offline_data.json")
	start := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	cache, err := Open(path, WithClock(tickingClock(start)))
	require.NoError(t, err)
	require.NoError(t, cache.CacheTrips([]types.Trip{testTrip("trip-1", "A")}))
	_, err = cache.AddPendingAction(types.ActionCreateTrip, ActionPayload{Trip: &types.TripCreate{Title: "B"}})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Contains(t, doc, "trips")
	assert.Contains(t, doc, "pending_actions")
	assert.Contains(t, doc, "last_sync")

	var actions []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["pending_actions"], &actions))
	require.Len(t, actions, 1)
	assert.Contains(t, actions[0], "id")
	assert.Contains(t, actions[0], "type")
	assert.Contains(t, actions[0], "data")
	assert.Contains(t, actions[0], "timestamp")
}

func TestCacheCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offline_data.json")
	require.NoError(t, os.WriteFile(path, []byte("not json at all"), 0o600))

	cache, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, cache.CachedTrips())
	assert.Empty(t, cache.PendingActions())
}
