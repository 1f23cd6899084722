// Package hub implements the change-notification broadcaster. It keeps a
// registry of connected listeners and fans mutation events out to all of
// them with best-effort, at-most-once delivery per listener.
package hub

import (
	"log/slog"
	"sync"
)

// Wire names for the events delivered to listeners. These are kept stable
// for existing clients even though the REST surface speaks of "records".
const (
	EventConnected     = "Connected"
	EventUserAdded     = "UserAdded"
	EventUserUpdated   = "UserUpdated"
	EventUserDeleted   = "UserDeleted"
	EventDatabaseReset = "DatabaseReset"
)

// defaultBuffer is the per-subscriber channel capacity. A subscriber that
// falls this many events behind starts losing events rather than blocking
// the broadcast fan-out.
const defaultBuffer = 16

// Event is a named notification with an optional payload.
type Event struct {
	Name    string
	Payload any
}

// Hub owns the listener registry. All methods are safe for concurrent use;
// connect, disconnect, and broadcast may be called from any goroutine.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]chan Event
	nextID uint64
	buffer int
}

// New creates a Hub with the given per-subscriber buffer size.
// A non-positive buffer falls back to the default.
func New(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	return &Hub{
		subs:   make(map[uint64]chan Event),
		buffer: buffer,
	}
}

// Subscribe registers a new listener and returns its handle and receive
// channel. The channel already carries the Connected acknowledgment when
// Subscribe returns, before any broadcast can reach the listener.
func (h *Hub) Subscribe() (uint64, <-chan Event) {
	ch := make(chan Event, h.buffer)
	ch <- Event{Name: EventConnected, Payload: "connected to event hub"}

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.subs[id] = ch
	h.mu.Unlock()

	slog.Info("listener connected", "listener_id", id)
	return id, ch
}

// Unsubscribe removes a listener and closes its channel. It is idempotent;
// unsubscribing an unknown or already-removed handle is a no-op.
func (h *Hub) Unsubscribe(id uint64) {
	h.mu.Lock()
	ch, ok := h.subs[id]
	if ok {
		delete(h.subs, id)
	}
	h.mu.Unlock()

	if ok {
		close(ch)
		slog.Info("listener disconnected", "listener_id", id)
	}
}

// Broadcast delivers the event to every currently-registered listener.
// Delivery is best effort: a listener whose buffer is full loses the event,
// and that never blocks the caller or the remaining listeners.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, ch := range h.subs {
		select {
		case ch <- ev:
		default:
			slog.Warn("listener too slow, dropping event", "listener_id", id, "event", ev.Name)
		}
	}
}

// Len returns the number of currently-connected listeners.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
