package analysis

import (
	"testing"

	"helpdesk_server/core/domain"
)

func TestClassifyLocally(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantCategory   domain.TicketCategory
		wantConfidence float64
	}{
		{
			name:           "single keyword match beats the baseline",
			text:           "My printer is jammed again",
			wantCategory:   domain.CategoryPrinterIssue,
			wantConfidence: 1.0 / 3.0,
		},
		{
			name:           "two keyword matches raise confidence",
			text:           "I forgot my password and need help",
			wantCategory:   domain.CategoryPasswordReset,
			wantConfidence: 2.0 / 3.0,
		},
		{
			name:           "no keyword match falls back to general inquiry at baseline",
			text:           "I have a question about the office move",
			wantCategory:   domain.CategoryGeneralInquiry,
			wantConfidence: BaselineConfidence,
		},
		{
			name:           "empty text falls back to general inquiry",
			text:           "",
			wantCategory:   domain.CategoryGeneralInquiry,
			wantConfidence: BaselineConfidence,
		},
		{
			name:           "matching is case-insensitive",
			text:           "THE WIFI KEEPS DROPPING",
			wantCategory:   domain.CategoryNetwork,
			wantConfidence: 1.0 / 3.0,
		},
		{
			name:           "exact confidence tie resolves to first declared category",
			text:           "my password stopped working after I got locked",
			wantCategory:   domain.CategoryPasswordReset,
			wantConfidence: 1.0 / 3.0,
		},
		{
			name:           "security keywords win over weaker matches",
			text:           "I think there is a virus or malware on my machine",
			wantCategory:   domain.CategorySecurityConcern,
			wantConfidence: 2.0 / 3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyLocally(tt.text)

			if got.Category != tt.wantCategory {
				t.Errorf("category = %q, want %q", got.Category, tt.wantCategory)
			}
			if !almostEqual(got.Confidence, tt.wantConfidence) {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
			if got.Source != domain.SourceFallback {
				t.Errorf("source = %q, want %q", got.Source, domain.SourceFallback)
			}
		})
	}
}

func TestClassifyLocallyDeterministic(t *testing.T) {
	text := "the printer shows an error message and the internet is slow"

	first := ClassifyLocally(text)
	for i := 0; i < 10; i++ {
		got := ClassifyLocally(text)
		if got != first {
			t.Fatalf("run %d produced %+v, first run produced %+v", i, got, first)
		}
	}
}

func almostEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < 1e-9
}
