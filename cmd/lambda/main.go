package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"honeypot-agent/handler"
	"honeypot-agent/internal/integrations/gemini"
	"honeypot-agent/internal/integrations/paramstore"
	"honeypot-agent/internal/persona"
	"honeypot-agent/internal/report"
	"honeypot-agent/internal/session"
	"honeypot-agent/internal/usecase"
)

func main() {
	ctx := context.Background()

	// ---- Configuration (read only here) ----
	paramPrefix := mustEnv("PARAM_PREFIX")
	collectorURL := os.Getenv("COLLECTOR_URL")
	geminiModel := os.Getenv("GEMINI_MODEL")
	humanDelayMs := envInt("HUMAN_DELAY_MS", 1800)

	// ---- AWS SDK config ----
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		slog.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	ssmClient, err := paramstore.New(awsssm.NewFromConfig(cfg))
	if err != nil {
		slog.Error("failed to create SSM client", "err", err)
		os.Exit(1)
	}
	apiKey, err := ssmClient.GetParameter(ctx, paramPrefix+"/api-key")
	if err != nil {
		slog.Error("failed to load honeypot api key", "err", err)
		os.Exit(1)
	}

	geminiClient, err := gemini.NewClient(ssmClient, paramPrefix, gemini.WithModel(geminiModel))
	if err != nil {
		slog.Error("failed to create Gemini client", "err", err)
		os.Exit(1)
	}

	var clientOpts []report.Option
	if collectorURL != "" {
		clientOpts = append(clientOpts, report.WithURL(collectorURL))
	}
	dispatcher, err := report.NewDispatcher(report.NewClient(clientOpts...))
	if err != nil {
		slog.Error("failed to create report dispatcher", "err", err)
		os.Exit(1)
	}

	// ---- Handler ----
	engageService, err := usecase.NewEngageService(
		persona.NewEngine(geminiClient),
		session.NewStore(),
		dispatcher,
		usecase.WithHumanDelay(time.Duration(humanDelayMs)*time.Millisecond),
	)
	if err != nil {
		slog.Error("failed to create engage service", "err", err)
		os.Exit(1)
	}

	h, err := handler.NewHandler(engageService, apiKey)
	if err != nil {
		slog.Error("failed to create handler", "err", err)
		os.Exit(1)
	}

	// Lambda freezes the process as soon as the handler returns, which would
	// strand anything still sitting in the dispatch queue. Flush the queue
	// before handing the response back so every report gets its one attempt.
	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		resp, err := h.Handle(ctx, req)
		dispatcher.Flush(ctx)
		return resp, err
	})
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
