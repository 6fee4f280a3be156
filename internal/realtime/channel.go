// Package realtime maintains the long-lived per-trip WebSocket subscription
// that pushes other participants' edits to the client without polling.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/travelmate-app/travelmate-client/errors"
	"github.com/travelmate-app/travelmate-client/logger"
	"github.com/travelmate-app/travelmate-client/types"
)

// ConnState is the channel's connection state.
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
)

func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// Scheduler redelivers work onto the application's single-threaded event
// loop. The channel's listener goroutine never invokes the event handler
// directly; every inbound event goes through the scheduler.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc adapts a plain function to the Scheduler interface.
type SchedulerFunc func(fn func())

func (f SchedulerFunc) Schedule(fn func()) { f(fn) }

// EventHandler receives inbound realtime events on the scheduler's loop.
type EventHandler func(event types.Event)

// ChannelConfig contains tunables for the realtime channel.
type ChannelConfig struct {
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
}

// DefaultChannelConfig returns sensible defaults.
func DefaultChannelConfig() ChannelConfig {
	return ChannelConfig{
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     10 * time.Second,
	}
}

// Channel is a per-trip publish/subscribe connection.
//
// State machine: Disconnected -> Connecting -> Connected -> Disconnected.
// Transport errors log and transition back to Disconnected; there is no
// automatic reconnect. The caller observes State and decides whether to
// call Connect again.
type Channel struct {
	wsBaseURL string
	dialer    *websocket.Dialer
	log       *zap.SugaredLogger
	cfg       ChannelConfig

	state atomic.Int32

	mu     sync.Mutex // guards conn and writes to it
	conn   *websocket.Conn
	tripID string
}

// NewChannel creates a channel for the given ws:// or wss:// base URL.
func NewChannel(wsBaseURL string, cfg ...ChannelConfig) *Channel {
	config := DefaultChannelConfig()
	if len(cfg) > 0 {
		config = cfg[0]
	}
	return &Channel{
		wsBaseURL: wsBaseURL,
		dialer: &websocket.Dialer{
			HandshakeTimeout: config.HandshakeTimeout,
		},
		log: logger.GetLogger().Named("realtime"),
		cfg: config,
	}
}

// State returns the current connection state.
func (c *Channel) State() ConnState {
	return ConnState(c.state.Load())
}

// Connect dials the trip's channel and starts the background listener.
// handler is invoked, via sched, once per inbound event.
func (c *Channel) Connect(ctx context.Context, tripID string, handler EventHandler, sched Scheduler) error {
	if !c.state.CompareAndSwap(int32(StateDisconnected), int32(StateConnecting)) {
		return errors.ValidationFailed("channel busy",
			fmt.Sprintf("cannot connect while %s", c.State()))
	}

	wsURL := fmt.Sprintf("%s/ws/%s", c.wsBaseURL, tripID)
	conn, _, err := c.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		c.state.Store(int32(StateDisconnected))
		c.log.Warnw("WebSocket dial failed",
			"tripID", tripID,
			"url", wsURL,
			"error", err)
		return errors.ConnectionFailed(err)
	}

	c.mu.Lock()
	c.conn = conn
	c.tripID = tripID
	c.mu.Unlock()

	c.state.Store(int32(StateConnected))
	c.log.Infow("Connected to trip channel", "tripID", tripID)

	go c.listen(conn, tripID, handler, sched)
	return nil
}

// listen pumps inbound frames until the connection drops. It runs on its
// own goroutine and only touches application state through the scheduler.
func (c *Channel) listen(conn *websocket.Conn, tripID string, handler EventHandler, sched Scheduler) {
	defer func() {
		// Only transition if this connection is still the current one; a
		// Disconnect followed by a fresh Connect may already have replaced it.
		c.mu.Lock()
		if c.conn == conn {
			c.conn = nil
			c.state.Store(int32(StateDisconnected))
		}
		c.mu.Unlock()
		c.log.Infow("Trip channel closed", "tripID", tripID)
	}()

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Warnw("WebSocket read error",
					"tripID", tripID,
					"error", err)
			}
			return
		}

		var event types.Event
		if err := json.Unmarshal(message, &event); err != nil {
			c.log.Warnw("Dropping malformed frame",
				"tripID", tripID,
				"error", err)
			continue
		}

		if handler != nil && sched != nil {
			ev := event
			sched.Schedule(func() {
				handler(ev)
			})
		}
	}
}

// Send writes an event to the channel. When not connected the message is
// dropped and logged; there is no outbound queue or delivery guarantee.
func (c *Channel) Send(event types.Event) error {
	if c.State() != StateConnected {
		c.log.Debugw("Dropping outbound message, channel not connected",
			"type", event.Type,
			"state", c.State())
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout)); err != nil {
		return errors.ConnectionFailed(err)
	}
	if err := c.conn.WriteJSON(event); err != nil {
		c.log.Warnw("WebSocket write failed",
			"tripID", c.tripID,
			"error", err)
		return errors.ConnectionFailed(err)
	}
	return nil
}

// Broadcast wraps data in the wire envelope and sends it.
func (c *Channel) Broadcast(eventType types.EventType, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, errors.ValidationError, "failed to encode broadcast data")
	}
	return c.Send(types.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Data:      payload,
		Timestamp: time.Now().UTC(),
	})
}

// Disconnect closes the connection. Safe to call on an already-closed or
// never-opened channel.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	c.state.Store(int32(StateDisconnected))
	if conn == nil {
		return
	}

	deadline := time.Now().Add(c.cfg.WriteTimeout)
	if err := conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline); err != nil {
		c.log.Debugw("Error sending close message", "error", err)
	}
	if err := conn.Close(); err != nil {
		c.log.Debugw("Error closing WebSocket", "error", err)
	}
}
