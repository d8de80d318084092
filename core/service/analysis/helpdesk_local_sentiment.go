package analysis

import (
	"strings"

	"helpdesk_server/core/domain"
)

// =============================================================================
// Local Sentiment Heuristic (fallback for the hosted sentiment model)
// =============================================================================

const (
	// sentimentDenominatorCap bounds the match-ratio denominator so short
	// inputs don't produce unbounded ratios.
	sentimentDenominatorCap = 20

	// localSentimentCap keeps heuristic scores below what the hosted model
	// can report, signalling lower trust to downstream consumers.
	localSentimentCap = 0.9
)

var negativeKeywords = []string{
	"angry", "frustrated", "terrible", "awful", "horrible", "worst",
	"broken", "useless", "annoyed", "unacceptable", "furious",
	"disappointed", "hate", "urgent",
}

var positiveKeywords = []string{
	"thank", "great", "good", "excellent", "appreciate", "happy",
	"wonderful", "perfect", "love", "resolved",
}

// AnalyzeSentimentLocally replicates the sentiment model's output shape with
// keyword counting. The winning side scores min(0.9, 0.5 + ratio*0.5); equal
// counts (including zero) are NEUTRAL at 0.5. Pure and deterministic.
func AnalyzeSentimentLocally(text string) domain.SentimentResult {
	lower := strings.ToLower(text)

	negatives := countMatches(lower, negativeKeywords)
	positives := countMatches(lower, positiveKeywords)

	words := len(strings.Fields(text))
	denominator := words
	if denominator > sentimentDenominatorCap {
		denominator = sentimentDenominatorCap
	}
	if denominator == 0 {
		denominator = 1
	}

	result := domain.SentimentResult{
		Label:  domain.SentimentNeutral,
		Score:  0.5,
		Source: domain.SourceFallback,
	}

	if negatives == positives {
		return result
	}

	winner := negatives
	result.Label = domain.SentimentNegative
	if positives > negatives {
		winner = positives
		result.Label = domain.SentimentPositive
	}

	ratio := float64(winner) / float64(denominator)
	score := 0.5 + ratio*0.5
	if score > localSentimentCap {
		score = localSentimentCap
	}
	result.Score = score

	return result
}

func countMatches(lower string, keywords []string) int {
	matches := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			matches++
		}
	}
	return matches
}
