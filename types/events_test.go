package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventValidate(t *testing.T) {
	ev := Event{
		Type:      EventTypeTripUpdated,
		Data:      json.RawMessage(`{"id": "trip-1"}`),
		Timestamp: time.Now(),
	}
	assert.NoError(t, ev.Validate())

	assert.Error(t, Event{Timestamp: time.Now()}.Validate())
	assert.Error(t, Event{Type: EventTypeExpenseCreated}.Validate())
}

func TestEventWireFormat(t *testing.T) {
	raw := `{"type": "ACTIVITY_CREATED", "data": {"title": "Museum"}, "timestamp": "2026-08-30T10:00:00Z"}`
	var ev Event
	require.NoError(t, json.Unmarshal([]byte(raw), &ev))
	assert.Equal(t, EventTypeActivityCreated, ev.Type)
	assert.Equal(t, 2026, ev.Timestamp.Year())
	assert.JSONEq(t, `{"title": "Museum"}`, string(ev.Data))
}

func TestNewPendingAction(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	action := NewPendingAction(ActionCreateTrip, json.RawMessage(`{"title":"t"}`), now)

	assert.Equal(t, "create_trip_1788091200000000000", action.ID)
	assert.Equal(t, ActionCreateTrip, action.Type)
	assert.Equal(t, now, action.CreatedAt)
}

func TestActivityValidateForTrip(t *testing.T) {
	trip := validTrip() // 7 days

	act := Activity{Title: "Tram ride", Day: 3}
	assert.NoError(t, act.ValidateForTrip(&trip))

	act.Day = 0
	assert.Error(t, act.ValidateForTrip(&trip))

	act.Day = 8
	assert.Error(t, act.ValidateForTrip(&trip))

	act = Activity{Day: 1}
	assert.Error(t, act.ValidateForTrip(&trip), "title required")
}
