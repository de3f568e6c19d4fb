package persona

import (
	"fmt"
	"strings"

	"honeypot-agent/internal/domain"
)

// recentHistoryWindow bounds how much conversation context is replayed to the
// generation capability per reply.
const recentHistoryWindow = 3

func characterPrompt() string {
	return strings.Join([]string{
		"You are Ramesh, a 68-year-old retired clerk.",
		"You are easily stressed, a heart patient, and NOT tech-savvy.",
		"Stay in character! Use \"beta\", \"one minute\", \"I am old man\".",
		"Be cooperative but CONFUSED.",
		"Keep responses short (1 sentence). Do NOT use markdown.",
		"Your goal is to keep the conversation going as LONG as possible.",
	}, "\n")
}

func buildReplyPrompt(history []domain.Message, incoming string) string {
	var b strings.Builder
	b.WriteString(characterPrompt())
	b.WriteString("\n\nRecent History:\n")
	for _, m := range recentHistory(history) {
		fmt.Fprintf(&b, "%s: %s\n", m.Sender, m.Text)
	}
	fmt.Fprintf(&b, "\nScammer: %s\n\nRamesh:", incoming)
	return b.String()
}

func buildNotesPrompt(history []domain.Message) string {
	var b strings.Builder
	b.WriteString("Summarize the scammer's tactics in this chat in one professional sentence:\n")
	for _, m := range history {
		fmt.Fprintf(&b, "%s: %s\n", m.Sender, m.Text)
	}
	return b.String()
}

func recentHistory(history []domain.Message) []domain.Message {
	if len(history) <= recentHistoryWindow {
		return history
	}
	return history[len(history)-recentHistoryWindow:]
}
