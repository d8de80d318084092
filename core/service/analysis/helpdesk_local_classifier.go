// Package analysis implements the ticket enrichment pipeline: three hosted
// model calls fanned out per request, local keyword heuristics substituted
// per axis on failure, and a bank of pure derived-field calculators.
package analysis

import (
	"strings"

	"helpdesk_server/core/domain"
)

// =============================================================================
// Local Keyword Classifier (fallback for the zero-shot model)
// =============================================================================

// Heuristic thresholds. Hand-tuned in the original system; kept as named
// constants rather than inferring semantic intent.
const (
	// BaselineConfidence is both the floor returned for the default category
	// and the bar a keyword match must clear to beat it.
	BaselineConfidence = 0.3

	// LowConfidenceThreshold marks results that need manual review.
	LowConfidenceThreshold = 0.6

	// ElevatedIntensityThreshold raises negative tickets to High priority.
	ElevatedIntensityThreshold = 0.6

	// HighIntensityThreshold gates the Critical priority and escalation rules.
	HighIntensityThreshold = 0.7

	// EscalationIntensityThreshold escalates on raw intensity alone.
	EscalationIntensityThreshold = 0.8

	// StrongSentimentThreshold gates the urgency bump on negative tickets.
	StrongSentimentThreshold = 0.8
)

// categoryKeywords holds the per-category keyword lists in declaration order.
// Order matters: exact confidence ties resolve to the first declared category.
// Matching is case-insensitive substring containment.
var categoryKeywords = []struct {
	category domain.TicketCategory
	keywords []string
}{
	{domain.CategoryPasswordReset, []string{"password", "forgot", "log in"}},
	{domain.CategoryAccountLockout, []string{"locked", "lockout", "too many attempts"}},
	{domain.CategorySystemAccess, []string{"access denied", "permission", "vpn"}},
	{domain.CategoryHardwareIssue, []string{"laptop", "keyboard", "won't turn on"}},
	{domain.CategoryPrinterIssue, []string{"printer", "printing", "toner"}},
	{domain.CategorySoftwareInstall, []string{"install", "setup", "new software"}},
	{domain.CategorySoftwareBug, []string{"bug", "error message", "crash"}},
	{domain.CategoryNetwork, []string{"internet", "wifi", "network"}},
	{domain.CategoryEmailProblems, []string{"email", "outlook", "mailbox"}},
	{domain.CategoryPerformance, []string{"slow", "freez", "lag"}},
	{domain.CategorySecurityConcern, []string{"virus", "hack", "malware"}},
	{domain.CategoryDataRecovery, []string{"deleted", "recover", "lost file"}},
	{domain.CategoryBillingInquiry, []string{"billing", "invoice", "charge"}},
	{domain.CategoryTrainingRequest, []string{"training", "how to", "tutorial"}},
}

// ClassifyLocally replicates the zero-shot classifier's output shape with
// keyword matching. Confidence per category is matchedKeywords/totalKeywords.
// When no category clears the baseline, the result is general inquiry at the
// baseline confidence. Pure and deterministic; never errors.
func ClassifyLocally(text string) domain.ClassificationResult {
	lower := strings.ToLower(text)

	best := domain.ClassificationResult{
		Category:   domain.CategoryGeneralInquiry,
		Confidence: BaselineConfidence,
		Source:     domain.SourceFallback,
	}

	for _, entry := range categoryKeywords {
		matches := 0
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		confidence := float64(matches) / float64(len(entry.keywords))

		// Strictly-greater keeps the first declared category on exact ties
		// and keeps the default when nothing clears the baseline.
		if confidence > best.Confidence {
			best.Category = entry.category
			best.Confidence = confidence
		}
	}

	return best
}
