package v1

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"meup-backend/internal/events"
)

type EventsHandler struct {
	bus *events.Bus
}

// NewEventsHandler registers the server-sent events stream. Clients receive
// one event per store change and re-fetch whatever views they render.
func NewEventsHandler(group *gin.RouterGroup, bus *events.Bus) {
	handler := &EventsHandler{bus: bus}

	group.GET("/events", handler.Stream)
}

func (h *EventsHandler) Stream(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.AbortWithStatus(http.StatusNotImplemented)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	ch, cancel := h.bus.Subscribe()
	defer cancel()

	fmt.Fprint(c.Writer, ": connected\n\n")
	flusher.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case change, open := <-ch:
			if !open {
				return
			}
			payload, err := json.Marshal(change)
			if err != nil {
				continue
			}
			fmt.Fprintf(c.Writer, "event: change\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
