// Package gemini wraps the Google GenAI SDK as the honeypot's text-generation
// capability. The API key is resolved lazily through a paramstore Getter on
// first use and cached for the process lifetime.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

const (
	defaultModel    = "gemini-1.5-flash"
	readyProbeLimit = 2 * time.Second
)

// Getter resolves configuration parameters. Satisfied by both the SSM-backed
// and env-backed paramstore clients.
type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// Client generates text with the Gemini API.
type Client struct {
	getter      Getter
	paramPrefix string
	model       string

	mu      sync.Mutex
	api     *genai.Client
	initErr error
}

type Option func(*Client)

// WithModel overrides the generation model.
func WithModel(model string) Option {
	return func(c *Client) {
		if m := strings.TrimSpace(model); m != "" {
			c.model = m
		}
	}
}

// NewClient creates a Client backed by the given parameter Getter. The key is
// fetched from the parameter named <prefix>/gemini-api-key on the first
// generation call and reused afterwards.
func NewClient(ps Getter, paramPrefix string, opts ...Option) (*Client, error) {
	if ps == nil {
		return nil, errors.New("gemini: parameter getter must not be nil")
	}
	paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	if paramPrefix == "" {
		return nil, errors.New("gemini: parameter prefix must not be empty")
	}
	c := &Client{
		getter:      ps,
		paramPrefix: paramPrefix,
		model:       defaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) keyParameterName() string {
	return c.paramPrefix + "/gemini-api-key"
}

// resolve builds the underlying SDK client on first use. Success is cached for
// the process lifetime. Definitive failures (missing or empty key) are cached
// too, since they will not heal mid-process. Timeouts and cancellations are
// not cached: a slow parameter store on the first call, including Ready's
// bounded probe, must not disable generation for good.
func (c *Client) resolve(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.api != nil {
		return c.api, nil
	}
	if c.initErr != nil {
		return nil, c.initErr
	}

	key, err := c.getter.GetParameter(ctx, c.keyParameterName())
	if err != nil {
		err = fmt.Errorf("gemini: fetch api key: %w", err)
		if !transient(err) {
			c.initErr = err
		}
		return nil, err
	}
	key = strings.TrimSpace(key)
	if key == "" {
		c.initErr = errors.New("gemini: api key is empty")
		return nil, c.initErr
	}
	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		err = fmt.Errorf("gemini: build client: %w", err)
		if !transient(err) {
			c.initErr = err
		}
		return nil, err
	}
	c.api = api
	return api, nil
}

func transient(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// Generate produces text for a prompt. Errors, blocked prompts, and empty
// candidates all surface as errors for the persona engine to absorb.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	api, err := c.resolve(ctx)
	if err != nil {
		return "", err
	}
	result, err := api.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("gemini: response contained no text")
	}
	return text, nil
}

// Ready reports whether the capability is configured, for the status
// endpoint. Bounded so a status probe never hangs on parameter resolution.
func (c *Client) Ready() bool {
	ctx, cancel := context.WithTimeout(context.Background(), readyProbeLimit)
	defer cancel()
	_, err := c.resolve(ctx)
	return err == nil
}
