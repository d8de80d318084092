// Package out defines the outbound ports of the helpdesk server.
package out

import (
	"context"

	"helpdesk_server/core/domain"
)

// ZeroShotClassifier issues one call to a hosted zero-shot text-classification
// model with a fixed candidate label set. Results come back sorted descending
// by confidence. The client performs no retries: a failed call is terminal for
// the caller, which substitutes the local heuristic instead.
type ZeroShotClassifier interface {
	Classify(ctx context.Context, text string, labels []domain.TicketCategory) ([]domain.ClassificationResult, error)
}

// SentimentModel issues one call to a hosted sentiment model and returns the
// primary label plus score, already translated to the canonical 3-way enum.
type SentimentModel interface {
	AnalyzeSentiment(ctx context.Context, text string) (*domain.SentimentResult, error)
}

// EmotionModel issues one call to a hosted emotion model and returns the
// primary emotion plus the full per-label distribution.
type EmotionModel interface {
	DetectEmotion(ctx context.Context, text string) (*domain.EmotionResult, error)
}

// ReplyGenerator produces a conversational reply for the chat widget. It is
// best-effort: callers fall back to the canned per-category response when it
// errors or the protecting circuit breaker is open.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, message string, record *domain.EnrichmentRecord) (string, error)
}
