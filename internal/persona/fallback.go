package persona

// fallbackPhrases are pre-authored stalling lines used whenever generation is
// unavailable or returns something unusable. Selection rotates with the turn
// index so repeated failures still vary the persona's voice.
var fallbackPhrases = []string{
	"Beta, the screen is shaking... wait, let me put on my glasses.",
	"Why is it so urgent? I paid the bill last month... I think.",
	"Don't shout at me beta, I am a heart patient.",
	"Okay I am verifying... one minute, the buttons are small.",
	"I am trying fast! The internet is very slow here.",
	"Which number? The one on the card backing or the SMS?",
	"I am typing it... 4... 2... wait, wrong button.",
	"Give me 5 minutes, I am calling my neighbor for help.",
	"Is this the Savings account or the Pension one? I am confused.",
	"Wait, the screen went black. One minute, let me restart.",
}

// GenericReply is the in-character line returned when a request cannot be
// processed at all. Faults are masked as success so the counterpart never
// learns they are talking to a machine.
const GenericReply = "Hello? Beta? The screen is flickering..."

// FallbackPhrase returns the stalling phrase for a turn index. Pure function:
// the same index always yields the same phrase.
func FallbackPhrase(turn int) string {
	n := len(fallbackPhrases)
	i := turn % n
	if i < 0 {
		i += n
	}
	return fallbackPhrases[i]
}
