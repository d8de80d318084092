package inference

import (
	"context"
	"strings"

	"helpdesk_server/core/domain"
	"helpdesk_server/pkg/apperr"
)

// =============================================================================
// Emotion Adapter
// =============================================================================

// DefaultEmotionModel is the hosted emotion model used when none is
// configured.
const DefaultEmotionModel = "j-hartmann/emotion-english-distilroberta-base"

// EmotionAdapter implements out.EmotionModel. The emotion label set is open:
// labels pass through lowercased but otherwise untouched.
type EmotionAdapter struct {
	client  *Client
	modelID string
}

// NewEmotionAdapter creates the adapter. Empty modelID selects the default.
func NewEmotionAdapter(client *Client, modelID string) *EmotionAdapter {
	if modelID == "" {
		modelID = DefaultEmotionModel
	}
	return &EmotionAdapter{client: client, modelID: modelID}
}

// DetectEmotion sends one emotion call and returns the primary emotion plus
// the full distribution. Distribution scores are independent per label and
// need not sum to 1.
func (a *EmotionAdapter) DetectEmotion(ctx context.Context, text string) (*domain.EmotionResult, error) {
	if text == "" {
		return nil, apperr.BadRequest("emotion text must be non-empty")
	}

	raw, err := a.client.post(ctx, a.modelID, textRequest{Inputs: text})
	if err != nil {
		return nil, err
	}

	scores, err := decodeLabelScores(raw, a.modelID)
	if err != nil {
		return nil, err
	}

	distribution := make(map[domain.Emotion]float64, len(scores))
	for _, s := range scores {
		distribution[domain.Emotion(strings.ToLower(s.Label))] = clamp01(s.Score)
	}

	primary := scores[0]
	return &domain.EmotionResult{
		Label:        domain.Emotion(strings.ToLower(primary.Label)),
		Intensity:    clamp01(primary.Score),
		Distribution: distribution,
		Source:       domain.SourceRemote,
	}, nil
}
