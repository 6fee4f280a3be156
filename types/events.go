package types

import (
	"encoding/json"
	"time"

	"github.com/travelmate-app/travelmate-client/errors"
)

type EventType string

const (
	CategoryTrip     = "TRIP"
	CategoryActivity = "ACTIVITY"
	CategoryExpense  = "EXPENSE"
	CategoryPacking  = "PACKING"
	CategoryMember   = "MEMBER"
)

const (
	// Trip events
	EventTypeTripUpdated EventType = CategoryTrip + "_UPDATED"
	EventTypeTripDeleted EventType = CategoryTrip + "_DELETED"

	// Itinerary events
	EventTypeActivityCreated EventType = CategoryActivity + "_CREATED"
	EventTypeActivityUpdated EventType = CategoryActivity + "_UPDATED"
	EventTypeActivityDeleted EventType = CategoryActivity + "_DELETED"

	// Expense events
	EventTypeExpenseCreated EventType = CategoryExpense + "_CREATED"
	EventTypeExpenseUpdated EventType = CategoryExpense + "_UPDATED"
	EventTypeExpenseDeleted EventType = CategoryExpense + "_DELETED"

	// Packing events
	EventTypePackingUpdated EventType = CategoryPacking + "_UPDATED"

	// Member events
	EventTypeMemberJoined EventType = CategoryMember + "_JOINED"
	EventTypeMemberLeft   EventType = CategoryMember + "_LEFT"
)

// Event is a single realtime frame pushed over the per-trip channel.
// Wire format: {"type": ..., "data": ..., "timestamp": ...}. The id is
// assigned on the originating side and lets receivers apply duplicate
// echoes of the same logical change idempotently.
type Event struct {
	ID        string          `json:"id,omitempty"`
	Type      EventType       `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Validate checks the minimal shape of an inbound frame.
func (e Event) Validate() error {
	if e.Type == "" {
		return errors.ValidationFailed("invalid event", "event type is required")
	}
	if e.Timestamp.IsZero() {
		return errors.ValidationFailed("invalid event", "timestamp is required")
	}
	return nil
}
