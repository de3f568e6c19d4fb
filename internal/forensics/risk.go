package forensics

import "honeypot-agent/internal/domain"

// ConversationRisk produces a coarse one-line risk summary for a conversation
// based on how many suspicious keywords the scammer has used so far.
func ConversationRisk(history []domain.Message) string {
	total := 0
	for _, msg := range history {
		if msg.Sender != domain.SenderScammer {
			continue
		}
		total += len(keywordPattern.FindAllString(msg.Text, -1))
	}
	switch {
	case total > 5:
		return "High Risk: Multiple scam keywords detected."
	case total > 0:
		return "Medium Risk: Some suspicious terms used."
	default:
		return "Low Risk: Normal conversation flow so far."
	}
}
