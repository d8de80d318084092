package analysis

import (
	"strings"

	"helpdesk_server/core/domain"
)

// =============================================================================
// Local Emotion Heuristic (fallback for the hosted emotion model)
// =============================================================================

// emotionKeywords in declaration order; ties resolve to the earlier emotion.
var emotionKeywords = []struct {
	emotion  domain.Emotion
	keywords []string
}{
	{domain.EmotionAnger, []string{"angry", "furious", "outrage", "unacceptable"}},
	{domain.EmotionFrustration, []string{"frustrated", "annoyed", "fed up", "sick of"}},
	{domain.EmotionFear, []string{"worried", "afraid", "scared", "panic"}},
	{domain.EmotionSadness, []string{"disappointed", "unhappy", "sad", "upset"}},
	{domain.EmotionJoy, []string{"thank", "great", "happy", "love"}},
}

// neutralDistribution is the default when no emotion keywords match: the same
// 3-entry shape the orchestrator substitutes when the hosted model fails.
func neutralDistribution() map[domain.Emotion]float64 {
	return map[domain.Emotion]float64{
		domain.EmotionNeutral: 0.5,
		domain.EmotionJoy:     0.25,
		domain.EmotionSadness: 0.25,
	}
}

// DetectEmotionLocally replicates the emotion model's output shape with
// keyword counting. Each match adds 0.3 intensity up to 0.9. No matches at
// all yields the neutral default distribution. Pure and deterministic.
func DetectEmotionLocally(text string) domain.EmotionResult {
	lower := strings.ToLower(text)

	distribution := make(map[domain.Emotion]float64)
	best := domain.EmotionResult{
		Label:  domain.EmotionNeutral,
		Source: domain.SourceFallback,
	}

	for _, entry := range emotionKeywords {
		matches := countMatches(lower, entry.keywords)
		if matches == 0 {
			continue
		}
		intensity := 0.3 * float64(matches)
		if intensity > 0.9 {
			intensity = 0.9
		}
		distribution[entry.emotion] = intensity
		if intensity > best.Intensity {
			best.Label = entry.emotion
			best.Intensity = intensity
		}
	}

	if len(distribution) == 0 {
		best.Intensity = 0.5
		best.Distribution = neutralDistribution()
		return best
	}

	best.Distribution = distribution
	return best
}
