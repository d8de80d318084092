// Package in defines the inbound ports consumed by the HTTP handlers.
package in

import (
	"context"

	"helpdesk_server/core/domain"
)

// AnalysisService runs the enrichment pipeline over raw text.
type AnalysisService interface {
	// Analyze fans out to the hosted models and returns a fully populated
	// record. It never fails because of a remote model: every axis has a
	// local fallback.
	Analyze(ctx context.Context, text string, existingPriority domain.Priority) *domain.EnrichmentRecord
}

// CreateTicketCommand carries the fields of the public ticket form.
type CreateTicketCommand struct {
	Subject        string `json:"subject"`
	Description    string `json:"description"`
	RequesterName  string `json:"requester_name"`
	RequesterEmail string `json:"requester_email"`
	Priority       string `json:"priority"`
}

// UpdateTicketCommand carries the mutable admin fields. Empty strings mean
// "leave unchanged".
type UpdateTicketCommand struct {
	Status   string `json:"status"`
	Priority string `json:"priority"`
}

// TicketService is the ticket lifecycle flow: enrichment on create, admin
// review operations afterwards.
type TicketService interface {
	Create(ctx context.Context, cmd *CreateTicketCommand) (*domain.Ticket, error)
	Get(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter *domain.TicketFilter) ([]*domain.Ticket, int64, error)
	Update(ctx context.Context, id string, cmd *UpdateTicketCommand) (*domain.Ticket, error)
	Delete(ctx context.Context, id string) error
	Reanalyze(ctx context.Context, id string) (*domain.Ticket, error)
	Stats(ctx context.Context) (*domain.TicketStats, error)
}

// ChatTurn is the response to one chat widget message.
type ChatTurn struct {
	Reply       string                   `json:"reply"`
	Suggestions []string                 `json:"suggestions"`
	Enrichment  *domain.EnrichmentRecord `json:"enrichment"`
}

// ChatService handles free-text chat widget messages.
type ChatService interface {
	HandleMessage(ctx context.Context, sessionID, message string) (*ChatTurn, error)
	History(ctx context.Context, sessionID string, n int64) ([]string, error)
}
