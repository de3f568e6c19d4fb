package forensics

import (
	"fmt"
	"math"
	"strings"

	"honeypot-agent/internal/domain"
)

// detectionThreshold is deliberately low: the honeypot would rather engage a
// false positive than let a scammer through unscored.
const detectionThreshold = 0.3

// DetectScamIntent scores a single message with additive rule weights. Rules
// are evaluated in a fixed order and each one that fires appends a reason, so
// the reasons slice doubles as an audit trail of the score. The final score is
// capped at 1.0 and rounded to two decimals.
func DetectScamIntent(text string) domain.IntentAssessment {
	var reasons []string
	score := 0.0

	if keywords := dedupe(keywordPattern.FindAllString(text, -1)); len(keywords) > 0 {
		score += 0.4
		if len(keywords) > 3 {
			keywords = keywords[:3]
		}
		reasons = append(reasons, fmt.Sprintf("Suspicious keywords detected: %s", strings.Join(keywords, ", ")))
	}
	if upiPattern.MatchString(text) {
		score += 0.3
		reasons = append(reasons, "UPI ID request detected")
	}
	if accountPattern.MatchString(text) {
		score += 0.3
		reasons = append(reasons, "Bank Details detected")
	}
	if linkPattern.MatchString(text) {
		score += 0.2
		reasons = append(reasons, "Suspicious Link detected")
	}
	if containsUrgency(text) {
		score += 0.3
		reasons = append(reasons, "High Urgency / Threat language detected")
	}

	score = math.Round(math.Min(score, 1.0)*100) / 100

	return domain.IntentAssessment{
		ScamDetected:    score >= detectionThreshold,
		ConfidenceScore: score,
		Reasons:         reasons,
	}
}

func containsUrgency(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range urgencyTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
