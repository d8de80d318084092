// Package inference implements clients for the hosted Hugging Face
// inference endpoints and the normalization of their response shapes into
// the canonical axis result types.
package inference

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"helpdesk_server/pkg/apperr"
	"helpdesk_server/pkg/httputil"
	"helpdesk_server/pkg/logger"
)

// =============================================================================
// Shared Inference Client
// =============================================================================

// Config holds the connection settings shared by the three model clients.
type Config struct {
	BaseURL string // e.g. https://api-inference.huggingface.co
	APIKey  string
	Timeout time.Duration
}

// Client performs raw calls against the inference API. One Client is shared
// by all model adapters; each call is a single POST with no retries. Failed
// calls are terminal for the caller, which substitutes its local heuristic.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates the shared inference client. A missing API key is logged
// as a warning but does not block construction: calls will fail remotely and
// the pipeline falls back locally.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Default()
	}
	if cfg.APIKey == "" {
		log.Warn("no inference API key configured; all model calls will use local fallbacks")
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httputil.NewClient(httputil.InferenceClientConfig(cfg.Timeout)),
		log:        log,
	}
}

// post sends one request to /models/<modelID> and returns the raw response
// body. Transport failures and non-2xx statuses wrap ErrRemoteUnavailable.
func (c *Client) post(ctx context.Context, modelID string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal inference request: %w", err)
	}

	url := c.baseURL + "/models/" + modelID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperr.ErrRemoteUnavailable, modelID, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", apperr.ErrRemoteUnavailable, modelID, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s: status %d", apperr.ErrRemoteUnavailable, modelID, resp.StatusCode)
	}

	return raw, nil
}

// labelScore is the {label, score} element used by the sentiment and emotion
// models.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// decodeLabelScores normalizes the two shapes the hosted models return for
// label distributions: a flat array, or a singly-nested array wrapping it.
func decodeLabelScores(raw []byte, modelID string) ([]labelScore, error) {
	var nested [][]labelScore
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested) > 0 {
		// An empty inner distribution ([[]]) is still malformed: callers
		// index the primary element.
		if len(nested[0]) == 0 {
			return nil, fmt.Errorf("%w: %s: empty distribution", apperr.ErrMalformedResponse, modelID)
		}
		return nested[0], nil
	}

	var flat []labelScore
	if err := json.Unmarshal(raw, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}

	return nil, fmt.Errorf("%w: %s: unrecognized distribution shape", apperr.ErrMalformedResponse, modelID)
}
