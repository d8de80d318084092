// Package ticket implements the ticket lifecycle service.
package ticket

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"helpdesk_server/core/domain"
	"helpdesk_server/core/port/in"
	"helpdesk_server/core/port/out"
	"helpdesk_server/core/service/analysis"
	"helpdesk_server/pkg/apperr"
	"helpdesk_server/pkg/logger"
)

// =============================================================================
// Ticket Service
// =============================================================================

const defaultListLimit = 50

// Service implements in.TicketService.
type Service struct {
	repo     out.TicketRepository
	analyzer in.AnalysisService
	events   out.TicketEventPublisher
	log      *logger.Logger
}

// NewService creates the ticket service. events may be nil when no dashboard
// stream is wired.
func NewService(
	repo out.TicketRepository,
	analyzer in.AnalysisService,
	events out.TicketEventPublisher,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{
		repo:     repo,
		analyzer: analyzer,
		events:   events,
		log:      log,
	}
}

// Create validates the form, runs enrichment, and stores the ticket. A failed
// analysis never blocks creation: the ticket is stored with the default
// record instead.
func (s *Service) Create(ctx context.Context, cmd *in.CreateTicketCommand) (*domain.Ticket, error) {
	subject := strings.TrimSpace(cmd.Subject)
	description := strings.TrimSpace(cmd.Description)
	if subject == "" {
		return nil, apperr.BadRequest("subject must be non-empty")
	}
	if description == "" {
		return nil, apperr.BadRequest("description must be non-empty")
	}

	requestedPriority := domain.Priority(cmd.Priority)
	if cmd.Priority != "" && !domain.IsValidPriority(requestedPriority) {
		return nil, apperr.BadRequest(fmt.Sprintf("invalid priority %q", cmd.Priority))
	}

	record := s.analyze(ctx, subject+"\n"+description, requestedPriority)

	priority := record.AISuggestedPriority
	if requestedPriority != "" {
		priority = requestedPriority
	}

	now := time.Now().UTC()
	t := &domain.Ticket{
		ID:             uuid.NewString(),
		Subject:        subject,
		Description:    description,
		RequesterName:  strings.TrimSpace(cmd.RequesterName),
		RequesterEmail: strings.TrimSpace(cmd.RequesterEmail),
		Status:         domain.StatusOpen,
		Priority:       priority,
		Enrichment:     record,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]any{
		"ticket_id": t.ID,
		"category":  string(record.PredictedCategory),
		"priority":  string(t.Priority),
		"escalate":  record.ShouldEscalate,
	}).Info("ticket created")

	if s.events != nil {
		s.events.PublishTicketCreated(t)
	}

	return t, nil
}

// Get retrieves one ticket.
func (s *Service) Get(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.repo.GetByID(ctx, id)
}

// List retrieves tickets matching the filter plus the total count. A missing
// limit is capped to the default page size.
func (s *Service) List(ctx context.Context, filter *domain.TicketFilter) ([]*domain.Ticket, int64, error) {
	if filter == nil {
		filter = &domain.TicketFilter{}
	}
	if filter.Status != "" && !domain.IsValidStatus(filter.Status) {
		return nil, 0, apperr.BadRequest(fmt.Sprintf("invalid status %q", filter.Status))
	}
	if filter.Category != "" && !domain.IsValidCategory(filter.Category) {
		return nil, 0, apperr.BadRequest(fmt.Sprintf("invalid category %q", filter.Category))
	}
	if filter.Priority != "" && !domain.IsValidPriority(filter.Priority) {
		return nil, 0, apperr.BadRequest(fmt.Sprintf("invalid priority %q", filter.Priority))
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}

	return s.repo.List(ctx, filter)
}

// Update applies the admin-mutable fields and bumps UpdatedAt.
func (s *Service) Update(ctx context.Context, id string, cmd *in.UpdateTicketCommand) (*domain.Ticket, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false
	if cmd.Status != "" {
		status := domain.TicketStatus(cmd.Status)
		if !domain.IsValidStatus(status) {
			return nil, apperr.BadRequest(fmt.Sprintf("invalid status %q", cmd.Status))
		}
		t.Status = status
		changed = true
	}
	if cmd.Priority != "" {
		priority := domain.Priority(cmd.Priority)
		if !domain.IsValidPriority(priority) {
			return nil, apperr.BadRequest(fmt.Sprintf("invalid priority %q", cmd.Priority))
		}
		t.Priority = priority
		changed = true
	}

	if !changed {
		return t, nil
	}

	t.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishTicketUpdated(t)
	}

	return t, nil
}

// Delete removes a ticket.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Reanalyze re-runs enrichment over the stored text and replaces the
// enrichment block. The admin-set priority is kept as the existing priority
// hint so re-analysis does not silently downgrade a reviewed ticket.
func (s *Service) Reanalyze(ctx context.Context, id string) (*domain.Ticket, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	record := s.analyze(ctx, t.Subject+"\n"+t.Description, t.Priority)
	t.Enrichment = record
	t.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}

	s.log.WithFields(map[string]any{
		"ticket_id": t.ID,
		"category":  string(record.PredictedCategory),
	}).Info("ticket re-analyzed")

	if s.events != nil {
		s.events.PublishTicketUpdated(t)
	}

	return t, nil
}

// Stats returns the aggregate dashboard view.
func (s *Service) Stats(ctx context.Context) (*domain.TicketStats, error) {
	return s.repo.Stats(ctx)
}

// analyze runs the enrichment pipeline with a panic guard. Analysis must
// never take down a ticket write, so a panicking pipeline yields the default
// record.
func (s *Service) analyze(ctx context.Context, text string, existingPriority domain.Priority) (record *domain.EnrichmentRecord) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("panic", fmt.Sprintf("%v", r)).Error("analysis panicked, using default record")
			record = analysis.DefaultRecord()
		}
	}()

	return s.analyzer.Analyze(ctx, text, existingPriority)
}

// =============================================================================
// Interface Compliance
// =============================================================================

var _ in.TicketService = (*Service)(nil)
