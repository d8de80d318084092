// Package chat implements the chat widget flow: enrichment with caching,
// session history, and best-effort LLM replies.
package chat

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"helpdesk_server/core/domain"
	"helpdesk_server/core/port/in"
	"helpdesk_server/core/port/out"
	"helpdesk_server/core/service/analysis"
	"helpdesk_server/pkg/apperr"
	"helpdesk_server/pkg/logger"
)

// =============================================================================
// Chat Service
// =============================================================================

// enrichmentTTL bounds how long a cached analysis stays valid. Chat messages
// repeat heavily (greetings, short problem statements), so even a short TTL
// removes most model calls.
const enrichmentTTL = time.Hour

// Service implements in.ChatService.
type Service struct {
	analyzer in.AnalysisService
	cache    out.EnrichmentCache
	history  out.ChatHistory
	replies  out.ReplyGenerator
	log      *logger.Logger
}

// NewService creates the chat service. cache, history, and replies may each be
// nil; the flow degrades gracefully without them.
func NewService(
	analyzer in.AnalysisService,
	cache out.EnrichmentCache,
	history out.ChatHistory,
	replies out.ReplyGenerator,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{
		analyzer: analyzer,
		cache:    cache,
		history:  history,
		replies:  replies,
		log:      log,
	}
}

// HandleMessage enriches one chat message and produces a reply. The reply is
// LLM-generated when a generator is wired and healthy, otherwise the canned
// per-category response.
func (s *Service) HandleMessage(ctx context.Context, sessionID, message string) (*in.ChatTurn, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperr.BadRequest("message must be non-empty")
	}
	if sessionID == "" {
		return nil, apperr.BadRequest("session id must be non-empty")
	}

	record := s.enrich(ctx, message)

	s.appendHistory(ctx, sessionID, "user: "+message)

	reply := s.generateReply(ctx, message, record)
	s.appendHistory(ctx, sessionID, "assistant: "+reply)

	return &in.ChatTurn{
		Reply:       reply,
		Suggestions: record.ChatbotSuggestions,
		Enrichment:  record,
	}, nil
}

// History returns the last n transcript lines for a session.
func (s *Service) History(ctx context.Context, sessionID string, n int64) ([]string, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Recent(ctx, sessionID, n)
}

// enrich runs analysis with a cache in front, keyed by the normalized text.
// Cache failures only cost a model round-trip, never the request.
func (s *Service) enrich(ctx context.Context, message string) *domain.EnrichmentRecord {
	key := cacheKey(message)

	if s.cache != nil {
		record, found, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.WithError(err).Warn("enrichment cache read failed")
		} else if found {
			return record
		}
	}

	record := s.analyze(ctx, message)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, record, enrichmentTTL); err != nil {
			s.log.WithError(err).Warn("enrichment cache write failed")
		}
	}

	return record
}

// analyze runs the pipeline with a panic guard. A chat turn must always get
// some enrichment record, so a panicking pipeline yields the default.
func (s *Service) analyze(ctx context.Context, message string) (record *domain.EnrichmentRecord) {
	defer func() {
		if r := recover(); r != nil {
			s.log.WithField("panic", fmt.Sprintf("%v", r)).Error("analysis panicked, using default record")
			record = analysis.DefaultRecord()
		}
	}()

	return s.analyzer.Analyze(ctx, message, "")
}

// generateReply prefers the LLM reply and falls back to the canned response.
func (s *Service) generateReply(ctx context.Context, message string, record *domain.EnrichmentRecord) string {
	if s.replies == nil {
		return record.AutomatedResponse
	}

	reply, err := s.replies.GenerateReply(ctx, message, record)
	if err != nil {
		s.log.WithError(err).
			WithField("category", string(record.PredictedCategory)).
			Warn("reply generation failed, using canned response")
		return record.AutomatedResponse
	}
	if strings.TrimSpace(reply) == "" {
		return record.AutomatedResponse
	}

	return reply
}

// appendHistory is best-effort: a transcript write failure never fails the
// turn.
func (s *Service) appendHistory(ctx context.Context, sessionID, line string) {
	if s.history == nil {
		return
	}
	if err := s.history.Append(ctx, sessionID, line); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Warn("chat history append failed")
	}
}

// cacheKey hashes the normalized message so trivial formatting differences
// share one cache entry.
func cacheKey(message string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(message)), " ")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// =============================================================================
// Interface Compliance
// =============================================================================

var _ in.ChatService = (*Service)(nil)
