package forensics

import "regexp"

// Indicator matching rules, compiled once at init and shared read-only across
// concurrent scans. The rules are deliberately loose: output is consumed with
// human review downstream, so recall wins over precision. In particular the
// bank-account rule (any standalone 9-18 digit run) will also match phone
// numbers and other IDs; do not narrow it.
var (
	upiPattern     = regexp.MustCompile(`[a-zA-Z0-9._-]{2,256}@[a-zA-Z]{2,64}`)
	phonePattern   = regexp.MustCompile(`(?:\+91[\s-]?)?[6-9]\d{9,11}|(?:\+91[\s-]?)?[6-9]\d{4}[\s-]\d{5,6}`)
	emailPattern   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	linkPattern    = regexp.MustCompile(`https?://(?:[-\w.]|(?:%[\da-fA-F]{2}))+`)
	accountPattern = regexp.MustCompile(`\b\d{9,18}\b`)
	keywordPattern = regexp.MustCompile(`(?i)(otp|kyc|block|prize|lottery|winner|refund|expires|urgent|password|pin|cvv|anydesk|teamviewer|quicksupport|paytm|gpay|phonepe|verify)`)
)

// urgencyTerms feed the threat-language rule of the intent scorer. Matched
// case-insensitively as plain substrings of the message.
var urgencyTerms = []string{"immediately", "urgent", "suspend", "block", "expire", "24 hours"}
