package report

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"honeypot-agent/internal/domain"
)

func sampleReport() Report {
	return Report{
		SessionID:              "sess-42",
		ScamDetected:           true,
		TotalMessagesExchanged: 10,
		ExtractedIntelligence: domain.Intelligence{
			UPIIDs:             []string{"fraud@okaxis"},
			SuspiciousKeywords: []string{"otp"},
		},
		AgentNotes: "Scammer demanded an OTP with urgency.",
	}
}

func TestSend_PostsCollectorPayload(t *testing.T) {
	var (
		gotBody        []byte
		gotContentType string
		gotMethod      string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(WithURL(srv.URL))
	require.NoError(t, c.Send(context.Background(), sampleReport()))

	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "application/json", gotContentType)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	require.Equal(t, "sess-42", payload["sessionId"])
	require.Equal(t, true, payload["scamDetected"])
	require.Equal(t, float64(10), payload["totalMessagesExchanged"])
	require.Equal(t, "Scammer demanded an OTP with urgency.", payload["agentNotes"])

	intel, ok := payload["extractedIntelligence"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, []any{"fraud@okaxis"}, intel["upiIds"])
	require.Equal(t, []any{"otp"}, intel["suspiciousKeywords"])
}

func TestSend_CollectorErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(WithURL(srv.URL))
	err := c.Send(context.Background(), sampleReport())

	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestSend_EmptySessionIDRejectedWithoutRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(WithURL(srv.URL))
	err := c.Send(context.Background(), Report{})

	require.Error(t, err)
	require.False(t, called)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient()
	require.Equal(t, defaultCollectorURL, c.url)
	require.Equal(t, defaultTimeout, c.httpClient.Timeout)

	// Blank override keeps the default endpoint.
	c = NewClient(WithURL("   "))
	require.Equal(t, defaultCollectorURL, c.url)
}
