package offline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/travelmate-app/travelmate-client/errors"
	"github.com/travelmate-app/travelmate-client/internal/apiclient"
	"github.com/travelmate-app/travelmate-client/types"
)

// ActionPayload is the envelope stored with each pending action: which trip
// and entity it targets plus the original request body. Exactly one of the
// body fields is set, matching the action type.
type ActionPayload struct {
	TripID   string             `json:"trip_id,omitempty"`
	EntityID string             `json:"entity_id,omitempty"`
	Trip     *types.TripCreate  `json:"trip,omitempty"`
	Activity *types.Activity    `json:"activity,omitempty"`
	Expense  *types.Expense     `json:"expense,omitempty"`
	Item     *types.PackingItem `json:"item,omitempty"`
}

// ClientDispatcher replays pending actions through the API client.
type ClientDispatcher struct {
	client *apiclient.Client
}

// NewClientDispatcher wraps an API client for replay.
func NewClientDispatcher(client *apiclient.Client) *ClientDispatcher {
	return &ClientDispatcher{client: client}
}

// Dispatch executes one queued mutation against the backend.
func (d *ClientDispatcher) Dispatch(ctx context.Context, action types.PendingAction) error {
	var p ActionPayload
	if err := json.Unmarshal(action.Payload, &p); err != nil {
		return errors.Wrap(err, errors.ValidationError, "malformed pending action payload")
	}

	switch action.Type {
	case types.ActionCreateTrip:
		if p.Trip == nil {
			return errors.ValidationFailed("malformed pending action", "create_trip requires a trip body")
		}
		_, err := d.client.CreateTrip(ctx, *p.Trip)
		return err
	case types.ActionUpdateTrip:
		if p.Trip == nil {
			return errors.ValidationFailed("malformed pending action", "update_trip requires a trip body")
		}
		_, err := d.client.UpdateTrip(ctx, p.TripID, *p.Trip)
		return err
	case types.ActionDeleteTrip:
		return d.client.DeleteTrip(ctx, p.TripID)

	case types.ActionCreateActivity:
		if p.Activity == nil {
			return errors.ValidationFailed("malformed pending action", "create_activity requires an activity body")
		}
		_, err := d.client.CreateActivity(ctx, p.TripID, *p.Activity)
		return err
	case types.ActionUpdateActivity:
		if p.Activity == nil {
			return errors.ValidationFailed("malformed pending action", "update_activity requires an activity body")
		}
		_, err := d.client.UpdateActivity(ctx, p.TripID, p.EntityID, *p.Activity)
		return err
	case types.ActionDeleteActivity:
		return d.client.DeleteActivity(ctx, p.TripID, p.EntityID)

	case types.ActionCreateExpense:
		if p.Expense == nil {
			return errors.ValidationFailed("malformed pending action", "create_expense requires an expense body")
		}
		_, err := d.client.CreateExpense(ctx, p.TripID, *p.Expense)
		return err
	case types.ActionUpdateExpense:
		if p.Expense == nil {
			return errors.ValidationFailed("malformed pending action", "update_expense requires an expense body")
		}
		_, err := d.client.UpdateExpense(ctx, p.TripID, p.EntityID, *p.Expense)
		return err
	case types.ActionDeleteExpense:
		return d.client.DeleteExpense(ctx, p.TripID, p.EntityID)

	case types.ActionCreatePackingItem:
		if p.Item == nil {
			return errors.ValidationFailed("malformed pending action", "create_packing_item requires an item body")
		}
		_, err := d.client.CreatePackingItem(ctx, p.TripID, *p.Item)
		return err
	case types.ActionUpdatePackingItem:
		if p.Item == nil {
			return errors.ValidationFailed("malformed pending action", "update_packing_item requires an item body")
		}
		_, err := d.client.UpdatePackingItem(ctx, p.TripID, p.EntityID, *p.Item)
		return err
	case types.ActionTogglePackingItem:
		_, err := d.client.TogglePackingItem(ctx, p.TripID, p.EntityID)
		return err
	case types.ActionDeletePackingItem:
		return d.client.DeletePackingItem(ctx, p.TripID, p.EntityID)

	default:
		return errors.ValidationFailed("malformed pending action", fmt.Sprintf("unknown action type %q", action.Type))
	}
}
