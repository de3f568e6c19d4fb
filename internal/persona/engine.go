// Package persona produces the stalling character's utterances. It leans on an
// external text-generation capability when one is configured and degrades to a
// deterministic rotating phrase list whenever that capability is missing,
// failing, or returns output unsafe to send.
package persona

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"honeypot-agent/internal/domain"
)

const defaultGenerateTimeout = 10 * time.Second

// Fixed fallback notes, mirroring the generation prompt's intent.
const (
	notesNotConfigured = "Scammer impersonated an official and used urgency tactics."
	notesOnFailure     = "Scammer utilized social engineering and urgency to target financial details."
)

// disallowedMarkers force a fallback when present in generated text: policy
// refusal language, or a competing-brand leak that would break character.
var disallowedMarkers = []string{"OpenAI", "disallowed"}

// Generator is the external text-generation capability as consumed by the
// engine. Implementations are treated as unreliable: any error, timeout or
// unusable output is absorbed.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Ready() bool
}

// Engine builds persona replies and tactic notes. A nil Generator is valid and
// yields fallback output only.
type Engine struct {
	gen     Generator
	log     *slog.Logger
	timeout time.Duration
}

type Option func(*Engine)

// WithTimeout bounds each generation call.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

func NewEngine(gen Generator, opts ...Option) *Engine {
	e := &Engine{
		gen:     gen,
		log:     slog.Default(),
		timeout: defaultGenerateTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Ready reports whether the generation capability is configured and usable.
func (e *Engine) Ready() bool {
	return e.gen != nil && e.gen.Ready()
}

// Reply produces the next persona utterance for a turn. The turn index pins
// the fallback phrase, so with generation disabled the reply for a given turn
// is fully deterministic.
func (e *Engine) Reply(ctx context.Context, history []domain.Message, incoming string, turn int) string {
	if !e.Ready() {
		return FallbackPhrase(turn)
	}

	genCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.gen.Generate(genCtx, buildReplyPrompt(history, incoming))
	if err != nil {
		e.log.Error("persona reply generation failed", "err", err)
		return FallbackPhrase(turn)
	}
	text := strings.TrimSpace(raw)
	if len(text) < 2 || containsDisallowed(text) {
		e.log.Warn("persona reply rejected, using fallback", "length", len(text))
		return FallbackPhrase(turn)
	}
	return text
}

// Notes asks the capability for a one-sentence summary of the scammer's
// tactics. Any failure yields a fixed generic sentence.
func (e *Engine) Notes(ctx context.Context, history []domain.Message) string {
	if !e.Ready() {
		return notesNotConfigured
	}

	genCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.gen.Generate(genCtx, buildNotesPrompt(history))
	if err != nil {
		e.log.Error("persona notes generation failed", "err", err)
		return notesOnFailure
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return notesOnFailure
	}
	return text
}

func containsDisallowed(text string) bool {
	for _, marker := range disallowedMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
