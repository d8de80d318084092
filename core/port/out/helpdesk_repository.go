package out

import (
	"context"
	"time"

	"helpdesk_server/core/domain"
)

// TicketRepository persists tickets and their enrichment fields.
type TicketRepository interface {
	Insert(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter *domain.TicketFilter) ([]*domain.Ticket, int64, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*domain.TicketStats, error)
}

// EnrichmentCache stores analysis results keyed by a hash of the input text.
// Only the deterministic record is cached; a miss is never an error condition.
type EnrichmentCache interface {
	Get(ctx context.Context, key string) (*domain.EnrichmentRecord, bool, error)
	Set(ctx context.Context, key string, record *domain.EnrichmentRecord, ttl time.Duration) error
}

// ChatHistory keeps a short rolling transcript per chat session.
type ChatHistory interface {
	Append(ctx context.Context, sessionID, message string) error
	Recent(ctx context.Context, sessionID string, n int64) ([]string, error)
}

// TicketEventPublisher pushes ticket lifecycle events to connected dashboards.
type TicketEventPublisher interface {
	PublishTicketCreated(ticket *domain.Ticket)
	PublishTicketUpdated(ticket *domain.Ticket)
}
