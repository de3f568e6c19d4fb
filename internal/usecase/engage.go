// Package usecase contains the conversation-turn orchestrator: the per-session
// state machine that obtains a persona reply, aggregates intelligence, advances
// the turn count, and decides when to reveal and report.
package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"honeypot-agent/internal/domain"
	"honeypot-agent/internal/forensics"
	"honeypot-agent/internal/intel"
	"honeypot-agent/internal/report"
	"honeypot-agent/internal/session"
)

// Version is reported by the status endpoint.
const Version = "1.0.0"

const (
	// revealThreshold is the turn count at which covert engagement ends and
	// findings are disclosed.
	revealThreshold = 10

	// defaultHumanDelay models an elderly persona's response latency.
	defaultHumanDelay = 1800 * time.Millisecond
)

// ReplyEngine produces persona output. Satisfied by *persona.Engine. It never
// fails: generation trouble degrades to deterministic fallback text inside.
type ReplyEngine interface {
	Reply(ctx context.Context, history []domain.Message, incoming string, turn int) string
	Notes(ctx context.Context, history []domain.Message) string
	Ready() bool
}

// ReportDispatcher accepts a report for asynchronous best-effort delivery.
type ReportDispatcher interface {
	Dispatch(r report.Report)
}

// EngageService orchestrates one conversation turn per call. Turns for the
// same session are serialized through the session store's per-key lock; turns
// for distinct sessions proceed concurrently.
type EngageService struct {
	engine   ReplyEngine
	sessions *session.Store
	reports  ReportDispatcher
	delay    time.Duration
	log      *slog.Logger
}

type EngageInput struct {
	SessionID    string
	History      []domain.Message
	IncomingText string
}

type EngageOutput struct {
	SessionID string
	Reply     string

	// Revealed marks that the turn threshold has been reached. It re-fires on
	// every turn past the threshold, not just the first crossing; downstream
	// tooling depends on the repeated enriched response, so do not make this
	// one-shot without coordinating a collector change.
	Revealed     bool
	Intelligence domain.Intelligence
	AgentNotes   string
}

type StatusOutput struct {
	Version         string
	GenerationReady bool
}

type EngageOption func(*EngageService)

// WithHumanDelay overrides the simulated response latency. Zero disables it.
func WithHumanDelay(d time.Duration) EngageOption {
	return func(s *EngageService) {
		if d >= 0 {
			s.delay = d
		}
	}
}

func WithLogger(log *slog.Logger) EngageOption {
	return func(s *EngageService) {
		if log != nil {
			s.log = log
		}
	}
}

func NewEngageService(engine ReplyEngine, sessions *session.Store, reports ReportDispatcher, opts ...EngageOption) (*EngageService, error) {
	if engine == nil {
		return nil, errors.New("usecase: reply engine must not be nil")
	}
	if sessions == nil {
		return nil, errors.New("usecase: session store must not be nil")
	}
	if reports == nil {
		return nil, errors.New("usecase: report dispatcher must not be nil")
	}
	s := &EngageService{
		engine:   engine,
		sessions: sessions,
		reports:  reports,
		delay:    defaultHumanDelay,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Engage processes one inbound scammer message: persona reply, simulated
// latency, intelligence aggregation, turn advance, and the reveal decision.
func (s *EngageService) Engage(ctx context.Context, in EngageInput) (EngageOutput, error) {
	id := strings.TrimSpace(in.SessionID)
	if id == "" {
		id = newSessionID()
	}

	h := s.sessions.Acquire(id)
	defer h.Release()

	// The reply is pinned to the pre-increment turn count so the fallback
	// rotation matches the turn being answered.
	reply := s.engine.Reply(ctx, in.History, in.IncomingText, h.Turns())

	if err := s.humanDelay(ctx); err != nil {
		return EngageOutput{}, newError(ErrorInternal, "delay_interrupted", err)
	}

	extended := make([]domain.Message, 0, len(in.History)+1)
	extended = append(extended, in.History...)
	extended = append(extended, domain.Message{Sender: domain.SenderScammer, Text: in.IncomingText})

	intelligence := intel.Aggregate(extended)
	turns := h.Advance()

	assessment := forensics.DetectScamIntent(in.IncomingText)
	s.log.Debug("inbound message assessed",
		"sessionId", id,
		"turn", turns,
		"scamDetected", assessment.ScamDetected,
		"confidence", assessment.ConfidenceScore,
	)

	out := EngageOutput{SessionID: id, Reply: reply}
	if turns >= revealThreshold {
		notes := s.engine.Notes(ctx, extended)
		s.reports.Dispatch(report.Report{
			SessionID:              id,
			ScamDetected:           true,
			TotalMessagesExchanged: turns,
			ExtractedIntelligence:  intelligence,
			AgentNotes:             notes,
		})
		out.Revealed = true
		out.Intelligence = intelligence
		out.AgentNotes = notes
		s.log.Info("engagement revealed",
			"sessionId", id,
			"turns", turns,
			"risk", forensics.ConversationRisk(extended),
		)
	}
	return out, nil
}

// Status reports service liveness details for the status endpoint.
func (s *EngageService) Status() StatusOutput {
	return StatusOutput{
		Version:         Version,
		GenerationReady: s.engine.Ready(),
	}
}

// humanDelay waits without occupying anything but this goroutine, and gives up
// as soon as the caller does.
func (s *EngageService) humanDelay(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var newSessionID = func() string {
	return uuid.NewString()
}
