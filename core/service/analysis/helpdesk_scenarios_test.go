package analysis

import (
	"context"
	"errors"
	"testing"

	"helpdesk_server/core/domain"
)

// End-to-end pipeline scenarios exercising realistic ticket texts.
func TestAnalyzeScenarios(t *testing.T) {
	t.Run("password reset with all remotes down", func(t *testing.T) {
		remoteErr := errors.New("dial tcp: connection refused")
		analyzer := NewAnalyzer(
			&fakeClassifier{err: remoteErr},
			&fakeSentiment{err: remoteErr},
			&fakeEmotion{err: remoteErr},
			nil, nil,
		)

		record := analyzer.Analyze(context.Background(),
			"I forgot my password and cannot log in to my workstation", "")

		if record.PredictedCategory != domain.CategoryPasswordReset {
			t.Errorf("category = %q, want password reset", record.PredictedCategory)
		}
		if record.EstimatedResolutionTime != "2 hours" {
			t.Errorf("resolution time = %q, want 2 hours", record.EstimatedResolutionTime)
		}
		if record.ShouldEscalate {
			t.Error("routine password reset must not escalate")
		}
	})

	t.Run("security concern always escalates", func(t *testing.T) {
		analyzer := NewAnalyzer(nil, nil, nil, nil, nil)

		record := analyzer.Analyze(context.Background(),
			"I clicked a link and now I think there is a virus, possibly a hack", "")

		if record.PredictedCategory != domain.CategorySecurityConcern {
			t.Errorf("category = %q, want security concern", record.PredictedCategory)
		}
		if !record.ShouldEscalate {
			t.Error("security concern must escalate regardless of sentiment")
		}
		if record.SupportAction != domain.ActionImmediateEscalation {
			t.Errorf("support action = %q, want immediate_escalation", record.SupportAction)
		}
	})

	t.Run("angry negative general inquiry", func(t *testing.T) {
		classifier := &fakeClassifier{results: []domain.ClassificationResult{
			{Category: domain.CategoryGeneralInquiry, Confidence: 0.88},
		}}
		sentiment := &fakeSentiment{result: &domain.SentimentResult{
			Label: domain.SentimentNegative, Score: 0.9,
		}}
		emotion := &fakeEmotion{result: &domain.EmotionResult{
			Label:        domain.EmotionAnger,
			Intensity:    0.75,
			Distribution: map[domain.Emotion]float64{domain.EmotionAnger: 0.75},
		}}

		analyzer := NewAnalyzer(classifier, sentiment, emotion, nil, nil)
		record := analyzer.Analyze(context.Background(),
			"I am beyond furious with how this was handled", "")

		if record.AISuggestedPriority != domain.PriorityCritical {
			t.Errorf("priority = %q, want Critical", record.AISuggestedPriority)
		}
		if record.Urgency != domain.UrgencyMedium {
			t.Errorf("urgency = %q, want Medium (low category bumped by strong negative)", record.Urgency)
		}
		if !record.ShouldEscalate {
			t.Error("angry negative ticket above intensity threshold must escalate")
		}
	})
}
