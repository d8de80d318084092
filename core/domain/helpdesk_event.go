package domain

import "time"

// TicketEventType identifies a ticket lifecycle event on the event stream.
type TicketEventType string

const (
	EventTicketCreated TicketEventType = "ticket.created"
	EventTicketUpdated TicketEventType = "ticket.updated"
)

// TicketEvent is one dashboard stream message. Seq is assigned by the
// publisher and increases monotonically across all events.
type TicketEvent struct {
	Type      TicketEventType `json:"type"`
	Seq       int64           `json:"seq"`
	Ticket    *Ticket         `json:"ticket"`
	Timestamp time.Time       `json:"timestamp"`
}
