package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmate-app/travelmate-client/types"
)

func TestSessionLifecycle(t *testing.T) {
	state := NewState()
	assert.False(t, state.Active())
	assert.Nil(t, state.CurrentUser())

	state.BeginSession(&types.User{ID: "user-1", Email: "alice@example.com"})
	assert.True(t, state.Active())
	require.NotNil(t, state.CurrentUser())
	assert.Equal(t, "user-1", state.CurrentUser().ID)

	state.SetCurrentTrip(&types.Trip{ID: "trip-1", Title: "A"})
	state.SetNavigationTarget("trip_detail")

	state.EndSession()
	assert.False(t, state.Active())
	assert.Nil(t, state.CurrentUser())
	assert.Nil(t, state.CurrentTrip())
	assert.Empty(t, state.NavigationTarget())
}

func TestNavigationTargetReadsOnce(t *testing.T) {
	state := NewState()
	state.SetNavigationTarget("budget")

	assert.Equal(t, "budget", state.NavigationTarget())
	assert.Empty(t, state.NavigationTarget())
}

func TestApplyTripUpdate(t *testing.T) {
	state := NewState()

	// No selected trip: update is ignored
	state.ApplyTripUpdate(&types.Trip{ID: "trip-1", Title: "New"})
	assert.Nil(t, state.CurrentTrip())

	state.SetCurrentTrip(&types.Trip{ID: "trip-1", Title: "Old"})

	// Update for a different trip is ignored
	state.ApplyTripUpdate(&types.Trip{ID: "trip-2", Title: "Other"})
	assert.Equal(t, "Old", state.CurrentTrip().Title)

	updated := &types.Trip{ID: "trip-1", Title: "New"}
	state.ApplyTripUpdate(updated)
	assert.Equal(t, "New", state.CurrentTrip().Title)

	// Applying the same echo twice leaves the same result
	state.ApplyTripUpdate(updated)
	assert.Equal(t, "New", state.CurrentTrip().Title)
}
