package domain

// Intelligence holds the deduplicated indicator tokens extracted from adversary
// messages, one slice per category. Tokens are compared case-sensitively and a
// category never contains the same token twice; beyond that, order carries no
// meaning. Field names match the collector's wire format.
type Intelligence struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	Emails             []string `json:"emails"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// IntentAssessment is the result of rule-based scam-intent scoring over a
// single message. ConfidenceScore is the capped, two-decimal sum of the
// triggered rule weights.
type IntentAssessment struct {
	ScamDetected    bool     `json:"scamDetected"`
	ConfidenceScore float64  `json:"confidenceScore"`
	Reasons         []string `json:"reasons"`
}
