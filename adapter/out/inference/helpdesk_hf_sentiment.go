package inference

import (
	"context"
	"fmt"
	"strings"

	"helpdesk_server/core/domain"
	"helpdesk_server/pkg/apperr"
)

// =============================================================================
// Sentiment Adapter
// =============================================================================

// DefaultSentimentModel is the hosted sentiment model used when none is
// configured.
const DefaultSentimentModel = "cardiffnlp/twitter-roberta-base-sentiment-latest"

// SentimentAdapter implements out.SentimentModel. Provider label vocabularies
// differ between models (LABEL_0/LABEL_2, lowercase names, star ratings);
// translation to the canonical enum happens here so provider drift stays out
// of the orchestrator.
type SentimentAdapter struct {
	client  *Client
	modelID string
}

// NewSentimentAdapter creates the adapter. Empty modelID selects the default.
func NewSentimentAdapter(client *Client, modelID string) *SentimentAdapter {
	if modelID == "" {
		modelID = DefaultSentimentModel
	}
	return &SentimentAdapter{client: client, modelID: modelID}
}

type textRequest struct {
	Inputs string `json:"inputs"`
}

// AnalyzeSentiment sends one sentiment call and returns the primary label
// translated to the 3-way enum.
func (a *SentimentAdapter) AnalyzeSentiment(ctx context.Context, text string) (*domain.SentimentResult, error) {
	if text == "" {
		return nil, apperr.BadRequest("sentiment text must be non-empty")
	}

	raw, err := a.client.post(ctx, a.modelID, textRequest{Inputs: text})
	if err != nil {
		return nil, err
	}

	scores, err := decodeLabelScores(raw, a.modelID)
	if err != nil {
		return nil, err
	}

	// First element is primary: the provider sorts descending by score.
	primary := scores[0]
	label, ok := translateSentimentLabel(primary.Label)
	if !ok {
		return nil, fmt.Errorf("%w: %s: unknown sentiment label %q", apperr.ErrMalformedResponse, a.modelID, primary.Label)
	}

	return &domain.SentimentResult{
		Label:  label,
		Score:  clamp01(primary.Score),
		Source: domain.SourceRemote,
	}, nil
}

// translateSentimentLabel maps provider-specific label vocabularies onto the
// canonical enum.
func translateSentimentLabel(label string) (domain.Sentiment, bool) {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "LABEL_0", "NEGATIVE", "NEG":
		return domain.SentimentNegative, true
	case "LABEL_1", "NEUTRAL", "NEU":
		return domain.SentimentNeutral, true
	case "LABEL_2", "POSITIVE", "POS":
		return domain.SentimentPositive, true
	}

	// Star-rating models: "1 star" .. "5 stars".
	switch {
	case strings.HasPrefix(label, "1 ") || strings.HasPrefix(label, "2 "):
		return domain.SentimentNegative, true
	case strings.HasPrefix(label, "3 "):
		return domain.SentimentNeutral, true
	case strings.HasPrefix(label, "4 ") || strings.HasPrefix(label, "5 "):
		return domain.SentimentPositive, true
	}

	return "", false
}
