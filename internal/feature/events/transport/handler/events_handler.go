// Package handler provides the HTTP transport for the events feature.
package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	"record_backend/internal/feature/events/hub"
)

// EventStream is the subscription side of the broadcaster.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (hub).
type EventStream interface {
	// Subscribe registers a listener and returns its handle and receive channel.
	Subscribe() (uint64, <-chan hub.Event)
	// Unsubscribe removes a listener; idempotent.
	Unsubscribe(id uint64)
}

// EventsHandler streams mutation events to connected clients over
// server-sent events.
type EventsHandler struct {
	stream EventStream
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(stream EventStream) *EventsHandler {
	return &EventsHandler{stream: stream}
}

// Stream handles GET /events. It subscribes the client to the hub, relays
// events until the client goes away, and always unsubscribes on exit. The
// Connected acknowledgment is the first event on the wire.
func (h *EventsHandler) Stream(c *gin.Context) {
	id, ch := h.stream.Subscribe()
	defer h.stream.Unsubscribe(id)

	c.Header("Cache-Control", "no-store")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev.Payload)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
