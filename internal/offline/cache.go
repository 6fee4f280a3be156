// Package offline provides continuity when the backend is unreachable:
// cached reads from a local JSON document and a FIFO queue of pending
// mutations replayed once connectivity returns.
package offline

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/travelmate-app/travelmate-client/errors"
	"github.com/travelmate-app/travelmate-client/logger"
	"github.com/travelmate-app/travelmate-client/types"
)

// document is the on-disk cache format: the full trip list, the pending
// action queue, and the last successful sync time.
type document struct {
	Trips          []types.Trip          `json:"trips"`
	PendingActions []types.PendingAction `json:"pending_actions"`
	LastSync       *time.Time            `json:"last_sync"`
}

// Cache is the offline store. The whole document is read into memory at
// open and rewritten on every mutation; data volumes are a single user's
// trip list, so this stays cheap.
type Cache struct {
	path string
	mu   sync.Mutex
	doc  document
	now  func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock overrides the cache's time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// Open loads the cache file at path, starting from an empty document if the
// file does not exist or cannot be parsed.
func Open(path string, opts ...Option) (*Cache, error) {
	c := &Cache{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, errors.Wrap(err, errors.ServerError, "failed to read cache file")
	}

	if err := json.Unmarshal(raw, &c.doc); err != nil {
		logger.GetLogger().Warnw("Cache file is corrupt, starting fresh",
			"path", path,
			"error", err)
		c.doc = document{}
	}
	return c, nil
}

// CacheTrips overwrites the full cached trip list and stamps last_sync.
func (c *Cache) CacheTrips(trips []types.Trip) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now().UTC()
	c.doc.Trips = trips
	c.doc.LastSync = &now
	return c.save()
}

// CachedTrips returns the cached trip list. Always available regardless of
// connectivity.
func (c *Cache) CachedTrips() []types.Trip {
	c.mu.Lock()
	defer c.mu.Unlock()
	trips := make([]types.Trip, len(c.doc.Trips))
	copy(trips, c.doc.Trips)
	return trips
}

// CacheTrip upserts a single trip by id: a matching trip is replaced in
// place preserving list order, otherwise the trip is appended.
func (c *Cache) CacheTrip(trip types.Trip) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	updated := false
	for i, cached := range c.doc.Trips {
		if cached.ID == trip.ID {
			c.doc.Trips[i] = trip
			updated = true
			break
		}
	}
	if !updated {
		c.doc.Trips = append(c.doc.Trips, trip)
	}
	return c.save()
}

// CachedTrip returns the cached trip with the given id.
func (c *Cache) CachedTrip(tripID string) (*types.Trip, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.doc.Trips {
		if c.doc.Trips[i].ID == tripID {
			trip := c.doc.Trips[i]
			return &trip, true
		}
	}
	return nil, false
}

// RemoveCachedTrip drops a trip from the cache. No-op if absent.
func (c *Cache) RemoveCachedTrip(tripID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	trips := c.doc.Trips[:0]
	for _, t := range c.doc.Trips {
		if t.ID != tripID {
			trips = append(trips, t)
		}
	}
	c.doc.Trips = trips
	return c.save()
}

// AddPendingAction appends a mutation to the pending queue. Entries are
// never deduplicated: repeated offline edits to the same entity produce
// multiple queued actions, replayed in FIFO order.
func (c *Cache) AddPendingAction(actionType types.ActionType, payload interface{}) (types.PendingAction, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return types.PendingAction{}, errors.Wrap(err, errors.ValidationError, "failed to encode pending action payload")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	action := types.NewPendingAction(actionType, data, c.now())
	c.doc.PendingActions = append(c.doc.PendingActions, action)
	if err := c.save(); err != nil {
		return types.PendingAction{}, err
	}

	logger.GetLogger().Infow("Queued pending action",
		"type", actionType,
		"id", action.ID,
		"queued", len(c.doc.PendingActions))
	return action, nil
}

// PendingActions returns the queue in insertion order.
func (c *Cache) PendingActions() []types.PendingAction {
	c.mu.Lock()
	defer c.mu.Unlock()
	actions := make([]types.PendingAction, len(c.doc.PendingActions))
	copy(actions, c.doc.PendingActions)
	return actions
}

// RemovePendingAction removes exactly the matching entry. No-op if absent.
func (c *Cache) RemovePendingAction(actionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	actions := c.doc.PendingActions[:0]
	for _, a := range c.doc.PendingActions {
		if a.ID != actionID {
			actions = append(actions, a)
		}
	}
	c.doc.PendingActions = actions
	return c.save()
}

// ClearPendingActions empties the queue.
func (c *Cache) ClearPendingActions() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc.PendingActions = nil
	return c.save()
}

// LastSync returns the time of the last full trip list refresh.
func (c *Cache) LastSync() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.doc.LastSync == nil {
		return time.Time{}, false
	}
	return *c.doc.LastSync, true
}

func (c *Cache) save() error {
	data, err := json.MarshalIndent(c.doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ServerError, "failed to encode cache")
	}
	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		logger.GetLogger().Errorw("Failed to save cache file",
			"path", c.path,
			"error", err)
		return errors.Wrap(err, errors.ServerError, "failed to save cache")
	}
	return nil
}
