// Package report delivers final engagement findings to the external collector.
// Delivery is best-effort: one attempt, failures logged by the dispatcher and
// never surfaced to the conversation path.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"honeypot-agent/internal/domain"
)

const (
	defaultCollectorURL = "https://hackathon.guvi.in/api/updateHoneyPotFinalResult"
	defaultTimeout      = 15 * time.Second
)

// Report is the collector's wire format for a concluded engagement.
type Report struct {
	SessionID              string              `json:"sessionId"`
	ScamDetected           bool                `json:"scamDetected"`
	TotalMessagesExchanged int                 `json:"totalMessagesExchanged"`
	ExtractedIntelligence  domain.Intelligence `json:"extractedIntelligence"`
	AgentNotes             string              `json:"agentNotes"`
}

// Client posts reports to the collector endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

type Option func(*Client)

// WithURL overrides the collector endpoint.
func WithURL(url string) Option {
	return func(c *Client) {
		if s := strings.TrimSpace(url); s != "" {
			c.url = s
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		url:        defaultCollectorURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send delivers one report. No retries: the caller treats any error as a
// logged drop.
func (c *Client) Send(ctx context.Context, r Report) error {
	if strings.TrimSpace(r.SessionID) == "" {
		return errors.New("report: session id must not be empty")
	}

	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("report: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("report: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("report: post to collector: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("report: collector returned status %d: %s", res.StatusCode, string(buf))
	}
	return nil
}
