package offline

import (
	"context"

	"github.com/travelmate-app/travelmate-client/errors"
	"github.com/travelmate-app/travelmate-client/logger"
	"github.com/travelmate-app/travelmate-client/types"
)

// Dispatcher executes a single pending action against the backend.
type Dispatcher interface {
	Dispatch(ctx context.Context, action types.PendingAction) error
}

// Replayer drains the pending queue once connectivity is restored.
//
// Replay is strictly FIFO. A connectivity failure stops the pass (the
// remote is still unreachable); any other remote rejection also stops the
// pass so later actions are never applied ahead of an earlier one, except
// a not-found rejection, which means the target entity was deleted
// server-side while offline. Those actions are dropped: there is nothing
// left to apply them to.
type Replayer struct {
	cache      *Cache
	dispatcher Dispatcher
}

// NewReplayer creates a replayer over the given cache and dispatcher.
func NewReplayer(cache *Cache, dispatcher Dispatcher) *Replayer {
	return &Replayer{
		cache:      cache,
		dispatcher: dispatcher,
	}
}

// ReplayResult summarizes a replay pass.
type ReplayResult struct {
	Replayed  int
	Dropped   int
	Remaining int
}

// Replay runs a single pass over the pending queue in insertion order.
// Successfully dispatched actions are removed as they go, so a pass
// interrupted partway leaves only the unapplied tail queued.
func (r *Replayer) Replay(ctx context.Context) (ReplayResult, error) {
	log := logger.GetLogger()
	var result ReplayResult

	actions := r.cache.PendingActions()
	if len(actions) == 0 {
		return result, nil
	}

	log.Infow("Replaying pending actions", "count", len(actions))

	for _, action := range actions {
		err := r.dispatcher.Dispatch(ctx, action)
		if err == nil {
			if err := r.cache.RemovePendingAction(action.ID); err != nil {
				return result, err
			}
			result.Replayed++
			continue
		}

		if errors.IsConnectivity(err) {
			log.Infow("Still offline, stopping replay pass",
				"action", action.ID,
				"replayed", result.Replayed)
			break
		}

		if errors.IsNotFound(err) {
			log.Warnw("Dropping pending action, entity no longer exists",
				"action", action.ID,
				"type", action.Type,
				"error", err)
			if err := r.cache.RemovePendingAction(action.ID); err != nil {
				return result, err
			}
			result.Dropped++
			continue
		}

		// The remote rejected the mutation. Leave it queued and stop so
		// later actions don't overtake it.
		log.Errorw("Pending action rejected, leaving queued",
			"action", action.ID,
			"type", action.Type,
			"error", err)
		break
	}

	result.Remaining = len(r.cache.PendingActions())
	log.Infow("Replay pass finished",
		"replayed", result.Replayed,
		"dropped", result.Dropped,
		"remaining", result.Remaining)
	return result, nil
}
