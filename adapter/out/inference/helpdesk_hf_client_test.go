package inference

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"helpdesk_server/core/domain"
	"helpdesk_server/pkg/apperr"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	}, nil)
}

func TestClassifierAdapter(t *testing.T) {
	var gotPath string
	var gotBody zeroShotRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)

		json.NewEncoder(w).Encode(zeroShotResponse{
			Labels: []string{"network connectivity", "printer issue"},
			Scores: []float64{0.91, 0.04},
		})
	})

	adapter := NewClassifierAdapter(client, "test/model")
	results, err := adapter.Classify(context.Background(), "wifi is down",
		[]domain.TicketCategory{domain.CategoryNetwork, domain.CategoryPrinterIssue})
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}

	if gotPath != "/models/test/model" {
		t.Errorf("request path = %q, want /models/test/model", gotPath)
	}
	if gotBody.Inputs != "wifi is down" {
		t.Errorf("request inputs = %q", gotBody.Inputs)
	}
	if len(gotBody.Parameters.CandidateLabels) != 2 {
		t.Errorf("candidate labels = %v", gotBody.Parameters.CandidateLabels)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Category != domain.CategoryNetwork || results[0].Confidence != 0.91 {
		t.Errorf("primary result = %+v", results[0])
	}
	if results[0].Source != domain.SourceRemote {
		t.Errorf("source = %q, want remote", results[0].Source)
	}
}

func TestClassifierAdapterErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantErr: apperr.ErrRemoteUnavailable,
		},
		{
			name: "unparseable body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte("model is loading"))
			},
			wantErr: apperr.ErrMalformedResponse,
		},
		{
			name: "mismatched label and score arrays",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				json.NewEncoder(w).Encode(zeroShotResponse{
					Labels: []string{"a", "b"},
					Scores: []float64{0.9},
				})
			},
			wantErr: apperr.ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := NewClassifierAdapter(newTestClient(t, tt.handler), "test/model")
			_, err := adapter.Classify(context.Background(), "text", domain.AllCategories)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClassifierAdapterValidation(t *testing.T) {
	adapter := NewClassifierAdapter(newTestClient(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("server must not be called on invalid input")
	}), "")

	if _, err := adapter.Classify(context.Background(), "", domain.AllCategories); err == nil {
		t.Error("empty text must be rejected")
	}
	if _, err := adapter.Classify(context.Background(), "text", nil); err == nil {
		t.Error("empty label set must be rejected")
	}
}

func TestSentimentAdapter(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantLabel domain.Sentiment
		wantScore float64
	}{
		{
			name:      "nested shape with LABEL vocabulary",
			body:      `[[{"label":"LABEL_0","score":0.93},{"label":"LABEL_2","score":0.04}]]`,
			wantLabel: domain.SentimentNegative,
			wantScore: 0.93,
		},
		{
			name:      "flat shape with lowercase names",
			body:      `[{"label":"positive","score":0.88}]`,
			wantLabel: domain.SentimentPositive,
			wantScore: 0.88,
		},
		{
			name:      "star-rating vocabulary low",
			body:      `[[{"label":"1 star","score":0.7}]]`,
			wantLabel: domain.SentimentNegative,
			wantScore: 0.7,
		},
		{
			name:      "star-rating vocabulary mid",
			body:      `[[{"label":"3 stars","score":0.6}]]`,
			wantLabel: domain.SentimentNeutral,
			wantScore: 0.6,
		},
		{
			name:      "star-rating vocabulary high",
			body:      `[[{"label":"5 stars","score":0.95}]]`,
			wantLabel: domain.SentimentPositive,
			wantScore: 0.95,
		},
		{
			name:      "out-of-range score is clamped",
			body:      `[[{"label":"NEGATIVE","score":1.2}]]`,
			wantLabel: domain.SentimentNegative,
			wantScore: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body))
			})
			adapter := NewSentimentAdapter(client, "")

			result, err := adapter.AnalyzeSentiment(context.Background(), "some text")
			if err != nil {
				t.Fatalf("AnalyzeSentiment returned error: %v", err)
			}
			if result.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", result.Label, tt.wantLabel)
			}
			if result.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", result.Score, tt.wantScore)
			}
			if result.Source != domain.SourceRemote {
				t.Errorf("source = %q, want remote", result.Source)
			}
		})
	}
}

func TestEmptyNestedDistributionIsMalformed(t *testing.T) {
	// A 2xx body of [[]] decodes but carries no primary element; it must
	// surface as a malformed response, never reach the indexer.
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[[]]`))
	})

	if _, err := NewSentimentAdapter(client, "").AnalyzeSentiment(context.Background(), "text"); !errors.Is(err, apperr.ErrMalformedResponse) {
		t.Errorf("sentiment error = %v, want ErrMalformedResponse", err)
	}
	if _, err := NewEmotionAdapter(client, "").DetectEmotion(context.Background(), "text"); !errors.Is(err, apperr.ErrMalformedResponse) {
		t.Errorf("emotion error = %v, want ErrMalformedResponse", err)
	}
}

func TestEmptyFlatDistributionIsMalformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[]`))
	})

	if _, err := NewSentimentAdapter(client, "").AnalyzeSentiment(context.Background(), "text"); !errors.Is(err, apperr.ErrMalformedResponse) {
		t.Errorf("sentiment error = %v, want ErrMalformedResponse", err)
	}
}

func TestSentimentAdapterUnknownLabel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[[{"label":"confused","score":0.9}]]`))
	})
	adapter := NewSentimentAdapter(client, "")

	_, err := adapter.AnalyzeSentiment(context.Background(), "some text")
	if !errors.Is(err, apperr.ErrMalformedResponse) {
		t.Errorf("error = %v, want ErrMalformedResponse", err)
	}
}

func TestEmotionAdapter(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[[{"label":"Anger","score":0.81},{"label":"Fear","score":0.1},{"label":"Joy","score":0.02}]]`))
	})
	adapter := NewEmotionAdapter(client, "")

	result, err := adapter.DetectEmotion(context.Background(), "this is outrageous")
	if err != nil {
		t.Fatalf("DetectEmotion returned error: %v", err)
	}

	if result.Label != domain.EmotionAnger {
		t.Errorf("label = %q, want anger (lowercased)", result.Label)
	}
	if result.Intensity != 0.81 {
		t.Errorf("intensity = %v, want 0.81", result.Intensity)
	}
	if len(result.Distribution) != 3 {
		t.Errorf("distribution has %d entries, want 3", len(result.Distribution))
	}
	if result.Distribution[domain.EmotionFear] != 0.1 {
		t.Errorf("distribution[fear] = %v, want 0.1", result.Distribution[domain.EmotionFear])
	}
}

func TestEmotionAdapterRemoteFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	adapter := NewEmotionAdapter(client, "")

	_, err := adapter.DetectEmotion(context.Background(), "text")
	if !errors.Is(err, apperr.ErrRemoteUnavailable) {
		t.Errorf("error = %v, want ErrRemoteUnavailable", err)
	}
}

func TestClientSendsAuthorizationHeader(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[[{"label":"NEUTRAL","score":0.5}]]`))
	})

	adapter := NewSentimentAdapter(client, "")
	if _, err := adapter.AnalyzeSentiment(context.Background(), "text"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want Bearer test-key", gotAuth)
	}
}
