// Package intel unions per-message forensic extraction results across a
// conversation into one deduplicated intelligence record.
package intel

import (
	"honeypot-agent/internal/domain"
	"honeypot-agent/internal/forensics"
)

// Aggregate scans every scammer-authored message in the supplied history and
// unions the results per category. The full history is rescanned from scratch
// on every call; sessions are short (bounded by the reveal threshold), and the
// rescan keeps the result deterministic and independent of call order.
// Categories with no findings are empty slices, so the record marshals with []
// for every field the collector expects.
func Aggregate(history []domain.Message) domain.Intelligence {
	var agg accumulator
	for _, msg := range history {
		if msg.Sender != domain.SenderScammer {
			continue
		}
		agg.merge(forensics.Scan(msg.Text))
	}
	return agg.intelligence()
}

// accumulator keeps one ordered set per indicator category.
type accumulator struct {
	bankAccounts orderedSet
	upiIDs       orderedSet
	links        orderedSet
	phones       orderedSet
	emails       orderedSet
	keywords     orderedSet
}

func (a *accumulator) merge(in domain.Intelligence) {
	a.bankAccounts.add(in.BankAccounts...)
	a.upiIDs.add(in.UPIIDs...)
	a.links.add(in.PhishingLinks...)
	a.phones.add(in.PhoneNumbers...)
	a.emails.add(in.Emails...)
	a.keywords.add(in.SuspiciousKeywords...)
}

func (a *accumulator) intelligence() domain.Intelligence {
	return domain.Intelligence{
		BankAccounts:       a.bankAccounts.tokens(),
		UPIIDs:             a.upiIDs.tokens(),
		PhishingLinks:      a.links.tokens(),
		PhoneNumbers:       a.phones.tokens(),
		Emails:             a.emails.tokens(),
		SuspiciousKeywords: a.keywords.tokens(),
	}
}

type orderedSet struct {
	seen   map[string]struct{}
	values []string
}

func (s *orderedSet) tokens() []string {
	if s.values == nil {
		return []string{}
	}
	return s.values
}

func (s *orderedSet) add(tokens ...string) {
	for _, tok := range tokens {
		if _, ok := s.seen[tok]; ok {
			continue
		}
		if s.seen == nil {
			s.seen = make(map[string]struct{})
		}
		s.seen[tok] = struct{}{}
		s.values = append(s.values, tok)
	}
}
