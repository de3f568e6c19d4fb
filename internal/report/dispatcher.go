package report

import (
	"context"
	"errors"
	"log/slog"
)

const defaultQueueSize = 16

// Sender delivers a single report. Satisfied by *Client.
type Sender interface {
	Send(ctx context.Context, r Report) error
}

// Dispatcher decouples report delivery from the conversation path. Dispatch
// enqueues without blocking; a background Run loop performs the single
// delivery attempt. Failures and overflow drops are logged, never retried.
type Dispatcher struct {
	sender Sender
	log    *slog.Logger
	queue  chan Report
}

type DispatcherOption func(*Dispatcher)

// WithQueueSize sets the dispatch buffer; reports beyond it are dropped.
func WithQueueSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queue = make(chan Report, n)
		}
	}
}

func WithDispatcherLogger(log *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

func NewDispatcher(sender Sender, opts ...DispatcherOption) (*Dispatcher, error) {
	if sender == nil {
		return nil, errors.New("report: sender must not be nil")
	}
	d := &Dispatcher{
		sender: sender,
		log:    slog.Default(),
		queue:  make(chan Report, defaultQueueSize),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Dispatch hands a report to the background loop and returns immediately.
func (d *Dispatcher) Dispatch(r Report) {
	select {
	case d.queue <- r:
	default:
		d.log.Error("report queue full, dropping report", "sessionId", r.SessionID)
	}
}

// Run delivers queued reports until ctx is cancelled. Intended to be driven
// by an errgroup next to the server loop.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case r := <-d.queue:
			d.deliver(ctx, r)
		}
	}
}

// Flush drains the queue synchronously, attempting each delivery once before
// returning. Lambda freezes the process between invocations, so the entrypoint
// flushes after every request instead of running the background loop.
func (d *Dispatcher) Flush(ctx context.Context) {
	for {
		select {
		case r := <-d.queue:
			d.deliver(ctx, r)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, r Report) {
	if err := d.sender.Send(ctx, r); err != nil {
		d.log.Error("report delivery failed", "sessionId", r.SessionID, "err", err)
		return
	}
	d.log.Info("report delivered", "sessionId", r.SessionID, "turns", r.TotalMessagesExchanged)
}
