package intent

import (
	"strings"

	"keazy/models"
)

// Urgency keyword sets. High-urgency keywords take precedence over
// low-urgency ones when both appear in the same text.
var (
	highUrgencyKeywords = []string{"urgent", "emergency", "immediately", "asap", "right now", "haraka"}
	lowUrgencyKeywords  = []string{"tomorrow", "later", "whenever", "next week", "kesho"}
)

// ClassifyUrgency tags free text as high, low or normal urgency.
func ClassifyUrgency(text string) string {
	lower := strings.ToLower(text)
	for _, kw := range highUrgencyKeywords {
		if strings.Contains(lower, kw) {
			return models.UrgencyHigh
		}
	}
	for _, kw := range lowUrgencyKeywords {
		if strings.Contains(lower, kw) {
			return models.UrgencyLow
		}
	}
	return models.UrgencyNormal
}
