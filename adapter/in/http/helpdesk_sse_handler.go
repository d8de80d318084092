package http

import (
	"bufio"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"helpdesk_server/adapter/out/realtime"
)

// =============================================================================
// SSE Handler - Ticket Event Stream
// =============================================================================

const heartbeatInterval = 30 * time.Second

// SSEHandler streams ticket lifecycle events to admin dashboards.
type SSEHandler struct {
	adapter *realtime.SSEAdapter
	log     zerolog.Logger
}

// NewSSEHandler creates a new SSE handler.
func NewSSEHandler(adapter *realtime.SSEAdapter, log zerolog.Logger) *SSEHandler {
	return &SSEHandler{
		adapter: adapter,
		log:     log.With().Str("handler", "sse").Logger(),
	}
}

// Register registers SSE routes.
func (h *SSEHandler) Register(router fiber.Router) {
	router.Get("/events", h.Stream)
	router.Get("/events/status", h.Status)
}

// Stream handles SSE connections.
func (h *SSEHandler) Stream(c *fiber.Ctx) error {
	events := h.adapter.Subscribe()

	h.log.Info().Msg("SSE client connected")

	// Set SSE headers
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")
	c.Set("X-Accel-Buffering", "no") // disable Nginx buffering

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		ticker := time.NewTicker(heartbeatInterval)
		defer ticker.Stop()
		defer func() {
			h.adapter.Unsubscribe(events)
			h.log.Info().Msg("SSE client disconnected")
		}()

		// Send initial connection event
		w.WriteString("event: connected\n")
		w.WriteString("data: {\"status\":\"connected\"}\n\n")
		w.Flush()

		for {
			select {
			case event, ok := <-events:
				if !ok {
					return
				}

				data, err := realtime.SerializeEvent(event)
				if err != nil {
					h.log.Error().Err(err).Msg("failed to serialize event")
					continue
				}

				// Write SSE format
				w.WriteString("event: ")
				w.WriteString(string(event.Type))
				w.WriteString("\n")
				w.WriteString("data: ")
				w.Write(data)
				w.WriteString("\n\n")

				if err := w.Flush(); err != nil {
					h.log.Debug().Err(err).Msg("client disconnected during write")
					return
				}

			case <-ticker.C:
				// Heartbeat
				w.WriteString(": heartbeat\n\n")
				if err := w.Flush(); err != nil {
					h.log.Debug().Err(err).Msg("client disconnected during heartbeat")
					return
				}
			}
		}
	})

	return nil
}

// Status returns SSE connection status.
func (h *SSEHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.adapter.GetMetrics())
}
