package inference

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"helpdesk_server/core/domain"
	"helpdesk_server/pkg/apperr"
)

// =============================================================================
// Zero-Shot Classification Adapter
// =============================================================================

// DefaultClassifierModel is the hosted zero-shot model used when none is
// configured.
const DefaultClassifierModel = "facebook/bart-large-mnli"

// ClassifierAdapter implements out.ZeroShotClassifier against the hosted
// zero-shot endpoint.
type ClassifierAdapter struct {
	client  *Client
	modelID string
}

// NewClassifierAdapter creates the adapter. Empty modelID selects the default.
func NewClassifierAdapter(client *Client, modelID string) *ClassifierAdapter {
	if modelID == "" {
		modelID = DefaultClassifierModel
	}
	return &ClassifierAdapter{client: client, modelID: modelID}
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

// zeroShotResponse is the provider shape: parallel label/score arrays sorted
// descending by score.
type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// Classify sends one zero-shot call and returns ranked results. The label
// set must be non-empty and text non-blank.
func (a *ClassifierAdapter) Classify(ctx context.Context, text string, labels []domain.TicketCategory) ([]domain.ClassificationResult, error) {
	if text == "" {
		return nil, apperr.BadRequest("classification text must be non-empty")
	}
	if len(labels) == 0 {
		return nil, apperr.BadRequest("candidate label set must be non-empty")
	}

	candidates := make([]string, len(labels))
	for i, l := range labels {
		candidates[i] = string(l)
	}

	raw, err := a.client.post(ctx, a.modelID, zeroShotRequest{
		Inputs:     text,
		Parameters: zeroShotParameters{CandidateLabels: candidates},
	})
	if err != nil {
		return nil, err
	}

	var resp zeroShotResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrMalformedResponse, a.modelID, err)
	}
	if len(resp.Labels) == 0 || len(resp.Labels) != len(resp.Scores) {
		return nil, fmt.Errorf("%w: %s: label/score arrays mismatched", apperr.ErrMalformedResponse, a.modelID)
	}

	results := make([]domain.ClassificationResult, len(resp.Labels))
	for i, label := range resp.Labels {
		results[i] = domain.ClassificationResult{
			Category:   domain.TicketCategory(label),
			Confidence: clamp01(resp.Scores[i]),
			Source:     domain.SourceRemote,
		}
	}
	return results, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
