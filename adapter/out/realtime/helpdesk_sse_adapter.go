// Package realtime provides real-time communication adapters.
package realtime

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/rs/zerolog"

	"helpdesk_server/core/domain"
	"helpdesk_server/core/port/out"
)

// =============================================================================
// SSE Adapter
// =============================================================================

// SSEAdapter implements out.TicketEventPublisher using Server-Sent Events.
// The dashboard stream is a broadcast: every subscriber sees every ticket
// event.
type SSEAdapter struct {
	subscribers map[chan *domain.TicketEvent]struct{}
	mu          sync.RWMutex
	log         zerolog.Logger

	// Metrics
	messagesSent    int64
	messagesDropped int64
	seqCounter      int64
}

// NewSSEAdapter creates a new SSE adapter.
func NewSSEAdapter(log zerolog.Logger) *SSEAdapter {
	return &SSEAdapter{
		subscribers: make(map[chan *domain.TicketEvent]struct{}),
		log:         log.With().Str("component", "sse_adapter").Logger(),
	}
}

// Subscribe registers a new dashboard connection.
func (a *SSEAdapter) Subscribe() <-chan *domain.TicketEvent {
	a.mu.Lock()
	defer a.mu.Unlock()

	ch := make(chan *domain.TicketEvent, 256) // Buffer for backpressure
	a.subscribers[ch] = struct{}{}

	a.log.Debug().
		Int("total_connections", len(a.subscribers)).
		Msg("client subscribed")

	return ch
}

// Unsubscribe removes a dashboard connection.
func (a *SSEAdapter) Unsubscribe(ch <-chan *domain.TicketEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for c := range a.subscribers {
		if c == ch {
			delete(a.subscribers, c)
			close(c)
			break
		}
	}

	a.log.Debug().
		Int("total_connections", len(a.subscribers)).
		Msg("client unsubscribed")
}

// PublishTicketCreated broadcasts a creation event.
func (a *SSEAdapter) PublishTicketCreated(ticket *domain.Ticket) {
	a.broadcast(domain.EventTicketCreated, ticket)
}

// PublishTicketUpdated broadcasts an update event.
func (a *SSEAdapter) PublishTicketUpdated(ticket *domain.Ticket) {
	a.broadcast(domain.EventTicketUpdated, ticket)
}

func (a *SSEAdapter) broadcast(eventType domain.TicketEventType, ticket *domain.Ticket) {
	event := &domain.TicketEvent{
		Type:      eventType,
		Seq:       atomic.AddInt64(&a.seqCounter, 1),
		Ticket:    ticket,
		Timestamp: time.Now().UTC(),
	}

	a.mu.RLock()
	// Copy channels to avoid holding lock during send
	chList := make([]chan *domain.TicketEvent, 0, len(a.subscribers))
	for ch := range a.subscribers {
		chList = append(chList, ch)
	}
	a.mu.RUnlock()

	for _, ch := range chList {
		select {
		case ch <- event:
			atomic.AddInt64(&a.messagesSent, 1)
		default:
			// Channel full, drop message (backpressure)
			atomic.AddInt64(&a.messagesDropped, 1)
			a.log.Warn().
				Str("event_type", string(eventType)).
				Int64("seq", event.Seq).
				Msg("dropped event due to full buffer")
		}
	}
}

// ConnectedCount returns the number of connected dashboards.
func (a *SSEAdapter) ConnectedCount() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.subscribers)
}

// GetMetrics returns adapter metrics.
func (a *SSEAdapter) GetMetrics() SSEMetrics {
	a.mu.RLock()
	connections := len(a.subscribers)
	a.mu.RUnlock()

	return SSEMetrics{
		TotalConnections: connections,
		MessagesSent:     atomic.LoadInt64(&a.messagesSent),
		MessagesDropped:  atomic.LoadInt64(&a.messagesDropped),
	}
}

// SSEMetrics holds SSE adapter metrics.
type SSEMetrics struct {
	TotalConnections int   `json:"total_connections"`
	MessagesSent     int64 `json:"messages_sent"`
	MessagesDropped  int64 `json:"messages_dropped"`
}

// SerializeEvent converts a TicketEvent to the SSE data payload.
func SerializeEvent(event *domain.TicketEvent) ([]byte, error) {
	return json.Marshal(event)
}

// =============================================================================
// Interface Compliance
// =============================================================================

var _ out.TicketEventPublisher = (*SSEAdapter)(nil)
