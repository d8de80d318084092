// Package domain holds the core entities of the helpdesk server.
package domain

// =============================================================================
// Classification Axes
// =============================================================================

// TicketCategory is one of the fixed labels the zero-shot classifier chooses from.
type TicketCategory string

const (
	CategoryPasswordReset   TicketCategory = "password reset"
	CategoryAccountLockout  TicketCategory = "account lockout"
	CategorySystemAccess    TicketCategory = "system access"
	CategoryHardwareIssue   TicketCategory = "hardware issue"
	CategoryPrinterIssue    TicketCategory = "printer issue"
	CategorySoftwareInstall TicketCategory = "software installation"
	CategorySoftwareBug     TicketCategory = "software bug"
	CategoryNetwork         TicketCategory = "network connectivity"
	CategoryEmailProblems   TicketCategory = "email problems"
	CategoryPerformance     TicketCategory = "performance issue"
	CategorySecurityConcern TicketCategory = "security concern"
	CategoryDataRecovery    TicketCategory = "data recovery"
	CategoryBillingInquiry  TicketCategory = "billing inquiry"
	CategoryTrainingRequest TicketCategory = "training request"
	CategoryGeneralInquiry  TicketCategory = "general inquiry"
)

// AllCategories lists every category in declaration order. The order matters:
// the local classifier breaks exact ties by first declared category, and the
// zero-shot client sends these as the candidate label set.
var AllCategories = []TicketCategory{
	CategoryPasswordReset,
	CategoryAccountLockout,
	CategorySystemAccess,
	CategoryHardwareIssue,
	CategoryPrinterIssue,
	CategorySoftwareInstall,
	CategorySoftwareBug,
	CategoryNetwork,
	CategoryEmailProblems,
	CategoryPerformance,
	CategorySecurityConcern,
	CategoryDataRecovery,
	CategoryBillingInquiry,
	CategoryTrainingRequest,
	CategoryGeneralInquiry,
}

// IsValidCategory checks whether cat is one of the declared categories.
func IsValidCategory(cat TicketCategory) bool {
	for _, c := range AllCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// ValidateCategory returns cat unchanged when declared, CategoryGeneralInquiry otherwise.
func ValidateCategory(cat TicketCategory) TicketCategory {
	if IsValidCategory(cat) {
		return cat
	}
	return CategoryGeneralInquiry
}

// Sentiment is the canonical 3-way sentiment label. Provider-specific labels
// (LABEL_0/LABEL_2, lowercase names, star ratings) are translated at the
// adapter boundary before entering the core.
type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNegative Sentiment = "NEGATIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
)

// Emotion labels follow the hosted emotion model's vocabulary. The set is
// open: unrecognized labels pass through untouched.
type Emotion string

const (
	EmotionJoy      Emotion = "joy"
	EmotionAnger    Emotion = "anger"
	EmotionSadness  Emotion = "sadness"
	EmotionFear     Emotion = "fear"
	EmotionSurprise Emotion = "surprise"
	EmotionNeutral  Emotion = "neutral"

	// Produced only by the local fallback heuristic, never by the hosted model.
	EmotionFrustration Emotion = "frustration"
)

// =============================================================================
// Axis Results
// =============================================================================

// ResultSource records whether an axis value came from the hosted model or
// from the local keyword heuristic.
type ResultSource string

const (
	SourceRemote   ResultSource = "remote"
	SourceFallback ResultSource = "fallback"
)

// ClassificationResult is one ranked category candidate. Confidence is a
// relative ranking in [0,1], not a calibrated probability: remote model scores
// and local keyword-ratio scores live on different scales.
type ClassificationResult struct {
	Category   TicketCategory `json:"category"`
	Confidence float64        `json:"confidence"`
	Source     ResultSource   `json:"source,omitempty"`
}

// SentimentResult is the authoritative sentiment for one enrichment call.
// Ties between positive and negative default to NEUTRAL.
type SentimentResult struct {
	Label  Sentiment    `json:"label"`
	Score  float64      `json:"score"`
	Source ResultSource `json:"source,omitempty"`
}

// EmotionResult carries the primary emotion plus the full distribution.
// Distribution values are independent per-label scores and need not sum to 1.
type EmotionResult struct {
	Label        Emotion             `json:"label"`
	Intensity    float64             `json:"intensity"`
	Distribution map[Emotion]float64 `json:"distribution"`
	Source       ResultSource        `json:"source,omitempty"`
}

// =============================================================================
// Enrichment Record
// =============================================================================

// Priority is the AI-suggested handling priority for a ticket.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// IsValidPriority checks whether p is a declared priority.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Urgency is a coarser signal derived from category and sentiment.
type Urgency string

const (
	UrgencyHigh   Urgency = "High"
	UrgencyMedium Urgency = "Medium"
	UrgencyLow    Urgency = "Low"
)

// SupportAction tells the routing layer how to queue the ticket.
type SupportAction string

const (
	ActionImmediateEscalation SupportAction = "immediate_escalation"
	ActionPriorityHandling    SupportAction = "priority_handling"
	ActionStandardSupport     SupportAction = "standard_support"
)

// EnrichmentRecord is the merged output of one analysis run. It is owned by
// the calling request for its lifetime and handed off to the ticket store or
// returned to the UI; it is never mutated after Analyze returns.
//
// Every field is always populated, including when all three remote calls fail.
type EnrichmentRecord struct {
	Sentiment      Sentiment `bson:"sentiment" json:"sentiment"`
	SentimentScore float64   `bson:"sentiment_score" json:"sentiment_score"`

	PredictedCategory  TicketCategory `bson:"predicted_category" json:"predicted_category"`
	CategoryConfidence float64        `bson:"category_confidence" json:"category_confidence"`

	AISuggestedPriority Priority `bson:"ai_suggested_priority" json:"ai_suggested_priority"`
	Urgency             Urgency  `bson:"urgency" json:"urgency"`

	DetectedEmotion  Emotion             `bson:"detected_emotion" json:"detected_emotion"`
	EmotionIntensity float64             `bson:"emotion_intensity" json:"emotion_intensity"`
	Emotions         map[Emotion]float64 `bson:"emotions" json:"emotions"`

	AutomatedResponse       string        `bson:"automated_response" json:"automated_response"`
	EstimatedResolutionTime string        `bson:"estimated_resolution_time" json:"estimated_resolution_time"`
	SupportAction           SupportAction `bson:"support_action" json:"support_action"`
	ChatbotSuggestions      []string      `bson:"chatbot_suggestions" json:"chatbot_suggestions"`

	ShouldEscalate bool   `bson:"should_escalate" json:"should_escalate"`
	AIInsights     string `bson:"ai_insights" json:"ai_insights"`

	// FromFallback is set only when the whole orchestration failed and the
	// caller substituted the fully-default record. Per-axis fallbacks are
	// tracked on the individual axis sources instead.
	FromFallback bool `bson:"from_fallback,omitempty" json:"from_fallback,omitempty"`
}
