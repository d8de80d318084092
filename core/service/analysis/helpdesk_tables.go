package analysis

import "helpdesk_server/core/domain"

// =============================================================================
// Canonical Lookup Tables
// =============================================================================
//
// One table per axis, defined once and unit-testable in isolation. The source
// system repeated near-identical inline literals across controllers; these are
// the consolidated versions.

const defaultResolutionTime = "4-8 hours"

// resolutionTimes estimates time-to-resolution per category.
var resolutionTimes = map[domain.TicketCategory]string{
	domain.CategoryPasswordReset:   "2 hours",
	domain.CategoryAccountLockout:  "1-2 hours",
	domain.CategorySystemAccess:    "2-4 hours",
	domain.CategoryHardwareIssue:   "1-2 business days",
	domain.CategoryPrinterIssue:    "4-8 hours",
	domain.CategorySoftwareInstall: "4-8 hours",
	domain.CategorySoftwareBug:     "2-5 business days",
	domain.CategoryNetwork:         "2-6 hours",
	domain.CategoryEmailProblems:   "2-4 hours",
	domain.CategoryPerformance:     "4-8 hours",
	domain.CategorySecurityConcern: "1-4 hours",
	domain.CategoryDataRecovery:    "1-3 business days",
	domain.CategoryBillingInquiry:  "1-2 business days",
	domain.CategoryTrainingRequest: "3-5 business days",
}

// EstimateResolutionTime returns the canned estimate for a category.
func EstimateResolutionTime(category domain.TicketCategory) string {
	if t, ok := resolutionTimes[category]; ok {
		return t
	}
	return defaultResolutionTime
}

const (
	empathyPrefix = "We understand this situation is frustrating, and we're sorry for the inconvenience. "

	genericResponse = "Thank you for contacting IT support. Your request has been received " +
		"and is under review. A support specialist will follow up shortly."
)

// cannedResponses holds the per-category troubleshooting text sent back to the
// requester immediately after submission.
var cannedResponses = map[domain.TicketCategory]string{
	domain.CategoryPasswordReset: "To reset your password: 1) Open the self-service portal and choose " +
		"'Forgot Password'. 2) Follow the link sent to your registered email. 3) Choose a new password " +
		"that meets the complexity policy. If the reset email does not arrive within 10 minutes, reply " +
		"to this ticket and we will reset it manually.",
	domain.CategoryAccountLockout: "Your account locks automatically after repeated failed sign-ins. " +
		"It unlocks on its own after 30 minutes. If you need access sooner, verify your identity " +
		"through the self-service portal or reply here and a technician will unlock it.",
	domain.CategorySystemAccess: "Access requests require approval from the system owner. We have " +
		"forwarded your request. In the meantime, confirm you are connected to the corporate VPN and " +
		"that your role includes the resource you are requesting.",
	domain.CategoryHardwareIssue: "Please try the following: 1) Power-cycle the device. 2) Check all " +
		"cable connections. 3) Note any error lights or beep codes. If the problem persists, a " +
		"technician will schedule an inspection or replacement.",
	domain.CategoryPrinterIssue: "Please try: 1) Power-cycle the printer. 2) Check paper and toner " +
		"levels. 3) Remove and re-add the printer from your workstation. Most print issues clear after " +
		"the queue is cancelled and the device restarted.",
	domain.CategorySoftwareInstall: "Software installs are delivered through the managed software " +
		"center. Search for the application there first; if it is not listed, your request needs " +
		"license approval and we will confirm availability.",
	domain.CategorySoftwareBug: "Thank you for the report. Please reply with: the exact error message, " +
		"the steps that trigger it, and a screenshot if possible. We will reproduce the issue and " +
		"route it to the application team.",
	domain.CategoryNetwork: "Please try: 1) Restart your router or reconnect to the office Wi-Fi. " +
		"2) Forget and rejoin the network. 3) Test with a wired connection if available. If others " +
		"nearby are affected, we may already be working on an outage.",
	domain.CategoryEmailProblems: "Please try: 1) Sign out and back into your mail client. 2) Check " +
		"your mailbox quota. 3) Verify the message is not in spam or a filtered folder. If sending " +
		"fails with an error code, include it in your reply.",
	domain.CategoryPerformance: "Please try: 1) Restart the machine. 2) Close unused applications and " +
		"browser tabs. 3) Check for pending system updates. If slowness continues, we will run a " +
		"remote diagnostic on your device.",
	domain.CategorySecurityConcern: "Your report has been flagged to the security team. Do not click " +
		"further links or enter credentials anywhere. Disconnect from the network if you believe the " +
		"device is compromised; a security analyst will contact you shortly.",
	domain.CategoryDataRecovery: "Stop using the affected device or share immediately to avoid " +
		"overwriting recoverable data. Recovery from backup is attempted first; we will confirm the " +
		"last good snapshot available for your files.",
	domain.CategoryBillingInquiry: "Your billing question has been routed to the accounts team. " +
		"Please include the invoice number and billing period in question so we can investigate " +
		"without delay.",
	domain.CategoryTrainingRequest: "Training materials for supported applications are available in " +
		"the learning portal. We have noted your request and will confirm upcoming session dates for " +
		"the topic you asked about.",
}

// BuildAutomatedResponse returns the canned response for a category, prefixed
// with an empathy sentence when the requester sounds negative.
func BuildAutomatedResponse(category domain.TicketCategory, sentiment domain.Sentiment) string {
	text, ok := cannedResponses[category]
	if !ok {
		text = genericResponse
	}
	if sentiment == domain.SentimentNegative {
		return empathyPrefix + text
	}
	return text
}

// defaultSuggestions are offered when a category has no tailored list.
var defaultSuggestions = []string{
	"Create a support ticket",
	"Check the knowledge base",
	"Talk to a support agent",
}

// chatSuggestions lists follow-up actions the chat widget can offer.
var chatSuggestions = map[domain.TicketCategory][]string{
	domain.CategoryPasswordReset: {
		"Open the password reset portal",
		"Resend the reset email",
		"Talk to a support agent",
	},
	domain.CategoryAccountLockout: {
		"Unlock my account",
		"Verify my identity",
		"Talk to a support agent",
	},
	domain.CategoryHardwareIssue: {
		"Schedule a hardware inspection",
		"Request a replacement device",
		"View troubleshooting steps",
	},
	domain.CategoryNetwork: {
		"Check current outage status",
		"View Wi-Fi troubleshooting steps",
		"Talk to a support agent",
	},
	domain.CategoryEmailProblems: {
		"Check mailbox quota",
		"View mail client setup guide",
		"Talk to a support agent",
	},
	domain.CategorySecurityConcern: {
		"Report a phishing email",
		"Run a device security scan",
		"Contact the security team now",
	},
	domain.CategoryDataRecovery: {
		"List available backups",
		"Start a file restore request",
		"Contact the recovery team",
	},
	domain.CategoryBillingInquiry: {
		"View my invoices",
		"Dispute a charge",
		"Talk to the accounts team",
	},
}

// SuggestChatActions returns the follow-up suggestions for a category.
func SuggestChatActions(category domain.TicketCategory) []string {
	if s, ok := chatSuggestions[category]; ok {
		return s
	}
	return defaultSuggestions
}
