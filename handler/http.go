package handler

import (
	"encoding/json"
	"io"
	"net/http"
)

// maxBodyBytes caps inbound request bodies; scam scripts are short.
const maxBodyBytes = 1 << 20

// HTTPHandler exposes the same routes over net/http for the standalone
// server. Dispatch goes through the shared router so both transports behave
// identically, including the catch-all.
func (h *Handler) HTTPHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			h.log.Warn("request body read failed", "err", err)
			body = nil
		}
		status, payload := h.route(r.Context(), r.Method, r.URL.Path, r.Header.Get(apiKeyHeader), body)
		h.writeJSON(w, status, payload)
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	buf, err := json.Marshal(payload)
	if err != nil {
		h.log.Error("response marshal failed", "err", err)
		buf = []byte(`{"status":"success"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf)
}
