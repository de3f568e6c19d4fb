// Package handler adapts transports (API Gateway proxy events, plain HTTP) to
// the engagement use case. Routing, the shared-secret check, and fault masking
// live here; everything behind the auth gate is deliberately disguised as
// success so probing the endpoint reveals nothing.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"honeypot-agent/internal/domain"
	"honeypot-agent/internal/persona"
	"honeypot-agent/internal/usecase"
)

const apiKeyHeader = "x-api-key"

// EngageUseCase is the orchestrator surface the handler consumes.
type EngageUseCase interface {
	Engage(ctx context.Context, in usecase.EngageInput) (usecase.EngageOutput, error)
	Status() usecase.StatusOutput
}

type Handler struct {
	uc     EngageUseCase
	apiKey string
	log    *slog.Logger
}

type Option func(*Handler)

func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

func NewHandler(uc EngageUseCase, apiKey string, opts ...Option) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: use case must not be nil")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("handler: api key must not be empty")
	}
	h := &Handler{uc: uc, apiKey: apiKey, log: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

type messageRequest struct {
	SessionID           string           `json:"sessionId"`
	ConversationHistory []domain.Message `json:"conversationHistory"`
	Message             struct {
		Text string `json:"text"`
	} `json:"message"`
}

type messageResponse struct {
	Status                string               `json:"status"`
	Reply                 string               `json:"reply"`
	ScamDetected          bool                 `json:"scamDetected,omitempty"`
	SessionID             string               `json:"sessionId,omitempty"`
	ExtractedIntelligence *domain.Intelligence `json:"extractedIntelligence,omitempty"`
	AgentNotes            string               `json:"agentNotes,omitempty"`
}

type statusResponse struct {
	Status          string `json:"status"`
	Version         string `json:"version"`
	GenerationReady bool   `json:"generationReady"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type genericResponse struct {
	Status string `json:"status"`
}

// route dispatches one request to the matching operation. Trailing slashes are
// tolerated; unknown routes get a bland success so scanners learn nothing.
func (h *Handler) route(ctx context.Context, method, path, apiKey string, body []byte) (int, any) {
	path = strings.TrimRight(path, "/")
	switch {
	case method == http.MethodPost && path == "/honeypot/message":
		return h.message(ctx, apiKey, body)
	case method == http.MethodGet && path == "/honeypot/status":
		return h.status()
	default:
		return http.StatusOK, genericResponse{Status: "success"}
	}
}

// message is the conversation-turn operation. The shared-secret check runs
// before any decoding or core logic; past it, every fault is masked as an
// in-character success per the deception policy.
func (h *Handler) message(ctx context.Context, apiKey string, body []byte) (int, any) {
	if apiKey != h.apiKey {
		authErr := &usecase.Error{Code: usecase.ErrorUnauthorized, Reason: "bad_api_key"}
		h.log.Warn("request rejected", "err", authErr)
		return http.StatusUnauthorized, errorResponse{Status: "error", Message: "Unauthorized"}
	}

	var req messageRequest
	if err := json.Unmarshal(body, &req); err != nil {
		maskErr := &usecase.Error{Code: usecase.ErrorInvalidInput, Reason: "malformed_body", Err: err}
		h.log.Warn("masking request fault as success", "code", maskErr.Code, "err", maskErr)
		return maskedSuccess()
	}

	out, err := h.uc.Engage(ctx, usecase.EngageInput{
		SessionID:    req.SessionID,
		History:      req.ConversationHistory,
		IncomingText: req.Message.Text,
	})
	if err != nil {
		h.log.Error("masking engagement fault as success", "code", errorCode(err), "err", err)
		return maskedSuccess()
	}

	resp := messageResponse{Status: "success", Reply: out.Reply}
	if out.Revealed {
		resp.ScamDetected = true
		resp.SessionID = out.SessionID
		resp.ExtractedIntelligence = &out.Intelligence
		resp.AgentNotes = out.AgentNotes
	}
	return http.StatusOK, resp
}

func (h *Handler) status() (int, any) {
	st := h.uc.Status()
	return http.StatusOK, statusResponse{
		Status:          "online",
		Version:         st.Version,
		GenerationReady: st.GenerationReady,
	}
}

func maskedSuccess() (int, any) {
	return http.StatusOK, messageResponse{Status: "success", Reply: persona.GenericReply}
}

// errorCode classifies an engagement error for the log line. The response the
// caller sees is the same masked success either way.
func errorCode(err error) usecase.ErrorCode {
	var ucErr *usecase.Error
	if errors.As(err, &ucErr) {
		return ucErr.Code
	}
	return usecase.ErrorInternal
}

func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
