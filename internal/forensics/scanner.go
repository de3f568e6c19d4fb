package forensics

import "honeypot-agent/internal/domain"

// Scan extracts indicator tokens from a single message text. All six
// categories are matched independently; the same substring may land in more
// than one category (a UPI handle is often also a well-formed email, a bank
// account run may double as a phone number). Each category's result is
// deduplicated, keeping first-occurrence order. Tokens are reported exactly as
// written: differing capitalization of the same address yields two tokens.
// Empty categories come back as empty slices so they serialize as [].
func Scan(text string) domain.Intelligence {
	return domain.Intelligence{
		UPIIDs:             dedupe(upiPattern.FindAllString(text, -1)),
		PhoneNumbers:       dedupe(phonePattern.FindAllString(text, -1)),
		Emails:             dedupe(emailPattern.FindAllString(text, -1)),
		PhishingLinks:      dedupe(linkPattern.FindAllString(text, -1)),
		BankAccounts:       dedupe(accountPattern.FindAllString(text, -1)),
		SuspiciousKeywords: dedupe(keywordPattern.FindAllString(text, -1)),
	}
}

func dedupe(tokens []string) []string {
	if len(tokens) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}
