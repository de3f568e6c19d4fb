package domain

// Sender identifies which side of the engagement authored a message.
type Sender string

const (
	SenderScammer Sender = "scammer"
	SenderPersona Sender = "persona"
)

// Message is a single conversation turn as supplied by the caller.
// Immutable once created.
type Message struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}
