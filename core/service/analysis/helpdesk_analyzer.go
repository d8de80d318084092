package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"helpdesk_server/core/domain"
	"helpdesk_server/core/port/out"
	"helpdesk_server/pkg/logger"
	"helpdesk_server/pkg/metrics"
)

// =============================================================================
// Comprehensive Analysis Orchestrator
// =============================================================================

// Analyzer fans out to the three hosted models concurrently and merges the
// results into one EnrichmentRecord. Failures are isolated per axis: a failed
// call substitutes that axis's local heuristic, never failing the request.
type Analyzer struct {
	classifier out.ZeroShotClassifier
	sentiment  out.SentimentModel
	emotion    out.EmotionModel

	metrics *metrics.AnalysisMetrics
	log     *logger.Logger
}

// NewAnalyzer creates the orchestrator. Any nil model disables the remote
// call for that axis and uses the local heuristic directly.
func NewAnalyzer(
	classifier out.ZeroShotClassifier,
	sentiment out.SentimentModel,
	emotion out.EmotionModel,
	m *metrics.AnalysisMetrics,
	log *logger.Logger,
) *Analyzer {
	if log == nil {
		log = logger.Default()
	}
	return &Analyzer{
		classifier: classifier,
		sentiment:  sentiment,
		emotion:    emotion,
		metrics:    m,
		log:        log,
	}
}

// axisResult tags each fan-out branch outcome so the merge step can see
// whether the value is remote or heuristic without re-inspecting errors.
type axisResult[T any] struct {
	value  T
	source domain.ResultSource
}

// Analyze runs the full pipeline. It suspends until all three axes settle
// (remote success or local fallback) and always returns a fully populated
// record. Remote calls honor ctx for cancellation and timeouts.
func (a *Analyzer) Analyze(ctx context.Context, text string, existingPriority domain.Priority) *domain.EnrichmentRecord {
	start := time.Now()

	var (
		wg        sync.WaitGroup
		sentiment axisResult[domain.SentimentResult]
		category  axisResult[domain.ClassificationResult]
		emotion   axisResult[domain.EmotionResult]
	)

	wg.Add(3)

	// Each axis goroutine carries its own panic guard: a panicking adapter
	// must degrade to that axis's heuristic, not kill the process.
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				a.log.WithField("panic", fmt.Sprintf("%v", r)).Error("sentiment axis panicked, using local heuristic")
				sentiment = axisResult[domain.SentimentResult]{value: AnalyzeSentimentLocally(text), source: domain.SourceFallback}
			}
		}()
		sentiment = a.resolveSentiment(ctx, text)
	}()
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				a.log.WithField("panic", fmt.Sprintf("%v", r)).Error("classification axis panicked, using local heuristic")
				category = axisResult[domain.ClassificationResult]{value: ClassifyLocally(text), source: domain.SourceFallback}
			}
		}()
		category = a.resolveCategory(ctx, text)
	}()
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				a.log.WithField("panic", fmt.Sprintf("%v", r)).Error("emotion axis panicked, using local heuristic")
				emotion = axisResult[domain.EmotionResult]{value: DetectEmotionLocally(text), source: domain.SourceFallback}
			}
		}()
		emotion = a.resolveEmotion(ctx, text)
	}()

	wg.Wait()

	record := a.merge(sentiment.value, category.value, emotion.value, existingPriority)

	if a.metrics != nil {
		a.metrics.RecordAnalysis(time.Since(start))
	}
	a.log.WithFields(map[string]any{
		"category":         string(record.PredictedCategory),
		"sentiment":        string(record.Sentiment),
		"emotion":          string(record.DetectedEmotion),
		"category_source":  string(category.source),
		"sentiment_source": string(sentiment.source),
		"emotion_source":   string(emotion.source),
		"duration_ms":      float64(time.Since(start).Microseconds()) / 1000.0,
	}).Debug("analysis completed")

	return record
}

func (a *Analyzer) resolveSentiment(ctx context.Context, text string) axisResult[domain.SentimentResult] {
	if a.sentiment != nil {
		result, err := a.sentiment.AnalyzeSentiment(ctx, text)
		if err == nil && result != nil {
			a.countAxis("sentiment", domain.SourceRemote)
			result.Source = domain.SourceRemote
			return axisResult[domain.SentimentResult]{value: *result, source: domain.SourceRemote}
		}
		a.log.WithError(err).Warn("sentiment model unavailable, using local heuristic")
	}
	a.countAxis("sentiment", domain.SourceFallback)
	return axisResult[domain.SentimentResult]{value: AnalyzeSentimentLocally(text), source: domain.SourceFallback}
}

func (a *Analyzer) resolveCategory(ctx context.Context, text string) axisResult[domain.ClassificationResult] {
	if a.classifier != nil {
		results, err := a.classifier.Classify(ctx, text, domain.AllCategories)
		if err == nil && len(results) > 0 {
			a.countAxis("classification", domain.SourceRemote)
			primary := results[0]
			primary.Source = domain.SourceRemote
			return axisResult[domain.ClassificationResult]{value: primary, source: domain.SourceRemote}
		}
		a.log.WithError(err).Warn("classification model unavailable, using local heuristic")
	}
	a.countAxis("classification", domain.SourceFallback)
	return axisResult[domain.ClassificationResult]{value: ClassifyLocally(text), source: domain.SourceFallback}
}

func (a *Analyzer) resolveEmotion(ctx context.Context, text string) axisResult[domain.EmotionResult] {
	if a.emotion != nil {
		result, err := a.emotion.DetectEmotion(ctx, text)
		if err == nil && result != nil {
			a.countAxis("emotion", domain.SourceRemote)
			result.Source = domain.SourceRemote
			return axisResult[domain.EmotionResult]{value: *result, source: domain.SourceRemote}
		}
		a.log.WithError(err).Warn("emotion model unavailable, using local heuristic")
	}
	a.countAxis("emotion", domain.SourceFallback)
	return axisResult[domain.EmotionResult]{value: DetectEmotionLocally(text), source: domain.SourceFallback}
}

func (a *Analyzer) countAxis(axis string, source domain.ResultSource) {
	if a.metrics != nil {
		a.metrics.RecordAxis(axis, source == domain.SourceRemote)
	}
}

// merge assembles the final record from the three settled axes.
func (a *Analyzer) merge(
	sentiment domain.SentimentResult,
	category domain.ClassificationResult,
	emotion domain.EmotionResult,
	existingPriority domain.Priority,
) *domain.EnrichmentRecord {
	cat := domain.ValidateCategory(category.Category)

	priority := CalculateSuggestedPriority(sentiment.Label, emotion.Label, emotion.Intensity)
	if priority == domain.PriorityMedium && existingPriority != "" {
		// A manually chosen priority beats the neutral default, never the
		// sentiment-driven outcomes.
		priority = existingPriority
	}

	escalate := ShouldEscalate(sentiment.Label, emotion.Label, emotion.Intensity, cat)
	urgency := CalculateUrgency(cat, sentiment.Label, sentiment.Score)

	return &domain.EnrichmentRecord{
		Sentiment:      sentiment.Label,
		SentimentScore: sentiment.Score,

		PredictedCategory:  cat,
		CategoryConfidence: category.Confidence,

		AISuggestedPriority: priority,
		Urgency:             urgency,

		DetectedEmotion:  emotion.Label,
		EmotionIntensity: emotion.Intensity,
		Emotions:         emotion.Distribution,

		AutomatedResponse:       BuildAutomatedResponse(cat, sentiment.Label),
		EstimatedResolutionTime: EstimateResolutionTime(cat),
		SupportAction:           DeriveSupportAction(escalate, urgency),
		ChatbotSuggestions:      SuggestChatActions(cat),

		ShouldEscalate: escalate,
		AIInsights:     BuildInsights(sentiment.Label, emotion.Label, cat, category.Confidence),
	}
}

// DefaultRecord is the fully-default enrichment substituted when the whole
// orchestration fails unexpectedly. Every field is populated; FromFallback
// marks the record so admins know no analysis ran.
func DefaultRecord() *domain.EnrichmentRecord {
	return &domain.EnrichmentRecord{
		Sentiment:      domain.SentimentNeutral,
		SentimentScore: 0.5,

		PredictedCategory:  domain.CategoryGeneralInquiry,
		CategoryConfidence: 0.8,

		AISuggestedPriority: domain.PriorityMedium,
		Urgency:             domain.UrgencyLow,

		DetectedEmotion:  domain.EmotionNeutral,
		EmotionIntensity: 0.5,
		Emotions:         neutralDistribution(),

		AutomatedResponse:       genericResponse,
		EstimatedResolutionTime: defaultResolutionTime,
		SupportAction:           domain.ActionStandardSupport,
		ChatbotSuggestions:      defaultSuggestions,

		ShouldEscalate: false,
		AIInsights:     "standard ticket - no special handling required",
		FromFallback:   true,
	}
}
