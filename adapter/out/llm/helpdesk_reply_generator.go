// Package llm implements the OpenAI-backed chat reply generator.
package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"helpdesk_server/core/domain"
	"helpdesk_server/pkg/logger"
)

// =============================================================================
// Reply Generator
// =============================================================================

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "gpt-4o-mini"

const systemPrompt = `You are the assistant of an IT helpdesk chat widget.
Answer the customer's message in 2-4 sentences, using the supplied category
and troubleshooting guidance. Stay factual: never promise resolution times
other than the provided estimate, and never ask for passwords.`

// Config holds the reply generator configuration.
type Config struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// ReplyGenerator implements out.ReplyGenerator. Calls run behind a circuit
// breaker: when the LLM misbehaves the chat flow degrades to the canned
// per-category response without waiting out repeated failures.
type ReplyGenerator struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
	cb          *gobreaker.CircuitBreaker
	log         *logger.Logger
}

// NewReplyGenerator creates the generator. Returns nil when no API key is
// configured; callers treat a nil generator as "canned responses only".
func NewReplyGenerator(cfg Config, log *logger.Logger) *ReplyGenerator {
	if cfg.APIKey == "" {
		return nil
	}
	if log == nil {
		log = logger.Default()
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 512
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.7
	}

	cbSettings := gobreaker.Settings{
		Name:        "chat-llm",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.ConsecutiveFailures > 5 ||
				(counts.Requests >= 10 && failureRatio >= 0.6)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(map[string]any{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	}

	return &ReplyGenerator{
		client:      openai.NewClient(cfg.APIKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: float32(temperature),
		cb:          gobreaker.NewCircuitBreaker(cbSettings),
		log:         log,
	}
}

// GenerateReply produces a conversational reply grounded in the enrichment
// record. Any failure (including an open circuit) is returned to the caller,
// which substitutes the canned response.
func (g *ReplyGenerator) GenerateReply(ctx context.Context, message string, record *domain.EnrichmentRecord) (string, error) {
	userPrompt := fmt.Sprintf(
		"Customer message: %s\n\nDetected category: %s\nSentiment: %s\nEstimated resolution time: %s\nGuidance: %s",
		message,
		record.PredictedCategory,
		record.Sentiment,
		record.EstimatedResolutionTime,
		record.AutomatedResponse,
	)

	result, err := g.cb.Execute(func() (interface{}, error) {
		resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       g.model,
			MaxTokens:   g.maxTokens,
			Temperature: g.temperature,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("empty completion response")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}
