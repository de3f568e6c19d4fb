package handler

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
)

// Handle adapts API Gateway proxy events to the shared router. Wired into
// lambda.Start by cmd/lambda.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	status, payload := h.route(ctx, req.HTTPMethod, req.Path, headerValue(req.Headers, apiKeyHeader), []byte(req.Body))

	body, err := json.Marshal(payload)
	if err != nil {
		// Should not happen with the fixed response shapes; stay in character.
		h.log.Error("response marshal failed", "err", err)
		body = []byte(`{"status":"success"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}
