package analysis

import (
	"strings"

	"helpdesk_server/core/domain"
)

// =============================================================================
// Derived-Field Calculator
// =============================================================================
//
// Pure functions mapping (sentiment, emotion, category, confidence) to the
// secondary ticket fields. They run identically on remote and fallback axis
// values; no state is kept across calls.

// highUrgencyCategories map straight to High before the sentiment bump.
var highUrgencyCategories = map[domain.TicketCategory]bool{
	domain.CategoryHardwareIssue:   true,
	domain.CategoryNetwork:         true,
	domain.CategorySecurityConcern: true,
	domain.CategorySystemAccess:    true,
}

// mediumUrgencyCategories map to Medium before the sentiment bump.
var mediumUrgencyCategories = map[domain.TicketCategory]bool{
	domain.CategoryEmailProblems:  true,
	domain.CategoryAccountLockout: true,
	domain.CategoryPerformance:    true,
}

// escalationCategories always escalate regardless of sentiment or emotion.
var escalationCategories = map[domain.TicketCategory]bool{
	domain.CategorySecurityConcern: true,
	domain.CategoryDataRecovery:    true,
	domain.CategorySystemAccess:    true,
}

// CalculateSuggestedPriority derives the AI-suggested priority.
//
//	NEGATIVE + {anger,fear} + intensity > 0.7  → Critical
//	NEGATIVE + intensity > 0.6                 → High
//	POSITIVE                                   → Low
//	otherwise                                  → Medium
func CalculateSuggestedPriority(sentiment domain.Sentiment, emotion domain.Emotion, intensity float64) domain.Priority {
	if sentiment == domain.SentimentNegative {
		if (emotion == domain.EmotionAnger || emotion == domain.EmotionFear) && intensity > HighIntensityThreshold {
			return domain.PriorityCritical
		}
		if intensity > ElevatedIntensityThreshold {
			return domain.PriorityHigh
		}
	}
	if sentiment == domain.SentimentPositive {
		return domain.PriorityLow
	}
	return domain.PriorityMedium
}

// ShouldEscalate decides whether a ticket needs expedited human handling.
// Any one condition triggers escalation.
func ShouldEscalate(sentiment domain.Sentiment, emotion domain.Emotion, intensity float64, category domain.TicketCategory) bool {
	if sentiment == domain.SentimentNegative && intensity > HighIntensityThreshold {
		switch emotion {
		case domain.EmotionAnger, domain.EmotionFear, domain.EmotionSadness:
			return true
		}
	}
	if escalationCategories[category] {
		return true
	}
	return intensity > EscalationIntensityThreshold
}

// CalculateUrgency derives urgency from category, bumped one level when the
// ticket is strongly negative. High stays High.
func CalculateUrgency(category domain.TicketCategory, sentiment domain.Sentiment, sentimentScore float64) domain.Urgency {
	urgency := domain.UrgencyLow
	switch {
	case highUrgencyCategories[category]:
		urgency = domain.UrgencyHigh
	case mediumUrgencyCategories[category]:
		urgency = domain.UrgencyMedium
	}

	if sentiment == domain.SentimentNegative && sentimentScore > StrongSentimentThreshold {
		switch urgency {
		case domain.UrgencyLow:
			urgency = domain.UrgencyMedium
		case domain.UrgencyMedium:
			urgency = domain.UrgencyHigh
		}
	}

	return urgency
}

// DeriveSupportAction maps escalation and urgency onto a queueing action.
func DeriveSupportAction(shouldEscalate bool, urgency domain.Urgency) domain.SupportAction {
	if shouldEscalate {
		return domain.ActionImmediateEscalation
	}
	if urgency == domain.UrgencyHigh {
		return domain.ActionPriorityHandling
	}
	return domain.ActionStandardSupport
}

// BuildInsights assembles the advisory summary shown to admins. Conditions
// are independent; fired advisories join with "; ".
func BuildInsights(sentiment domain.Sentiment, emotion domain.Emotion, category domain.TicketCategory, confidence float64) string {
	var notes []string

	if confidence < LowConfidenceThreshold {
		notes = append(notes, "low classification confidence - needs manual review")
	}
	if sentiment == domain.SentimentNegative &&
		(emotion == domain.EmotionAnger || emotion == domain.EmotionFrustration) {
		notes = append(notes, "customer appears frustrated - handle with care")
	}
	if category == domain.CategorySecurityConcern || category == domain.CategoryDataRecovery {
		notes = append(notes, "high-priority category - expedited handling recommended")
	}

	if len(notes) == 0 {
		return "standard ticket - no special handling required"
	}
	return strings.Join(notes, "; ")
}
