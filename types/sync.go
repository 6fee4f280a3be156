package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// ActionType names a queued mutation awaiting replay against the backend.
type ActionType string

const (
	ActionCreateTrip        ActionType = "create_trip"
	ActionUpdateTrip        ActionType = "update_trip"
	ActionDeleteTrip        ActionType = "delete_trip"
	ActionCreateActivity    ActionType = "create_activity"
	ActionUpdateActivity    ActionType = "update_activity"
	ActionDeleteActivity    ActionType = "delete_activity"
	ActionCreateExpense     ActionType = "create_expense"
	ActionUpdateExpense     ActionType = "update_expense"
	ActionDeleteExpense     ActionType = "delete_expense"
	ActionCreatePackingItem ActionType = "create_packing_item"
	ActionUpdatePackingItem ActionType = "update_packing_item"
	ActionTogglePackingItem ActionType = "toggle_packing_item"
	ActionDeletePackingItem ActionType = "delete_packing_item"
)

// PendingAction is a locally queued mutation created when a write fails
// with a connectivity error. Replay is strictly FIFO; the entry is removed
// once the remote accepts it.
type PendingAction struct {
	ID        string          `json:"id"`
	Type      ActionType      `json:"type"`
	Payload   json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"timestamp"`
}

// NewPendingAction builds a queue entry with a synthetic id of the form
// "<type>_<timestamp>".
func NewPendingAction(actionType ActionType, payload json.RawMessage, now time.Time) PendingAction {
	return PendingAction{
		ID:        fmt.Sprintf("%s_%d", actionType, now.UnixNano()),
		Type:      actionType,
		Payload:   payload,
		CreatedAt: now.UTC(),
	}
}
