package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"honeypot-agent/handler"
	"honeypot-agent/internal/integrations/gemini"
	"honeypot-agent/internal/integrations/paramstore"
	"honeypot-agent/internal/persona"
	"honeypot-agent/internal/report"
	"honeypot-agent/internal/session"
	"honeypot-agent/internal/usecase"
)

const shutdownGrace = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ---- Configuration (read only here) ----
	addr := envDefault("LISTEN_ADDR", ":8080")
	paramPrefix := envDefault("PARAM_PREFIX", "/honeypot")
	apiKey := mustEnv("HONEYPOT_API_KEY")
	collectorURL := os.Getenv("COLLECTOR_URL")
	geminiModel := os.Getenv("GEMINI_MODEL")
	humanDelayMs := envInt("HUMAN_DELAY_MS", 1800)

	// ---- Clients ----
	// Secrets come from the environment here; the Lambda build uses SSM.
	params := paramstore.NewEnvGetter(paramPrefix)
	geminiClient, err := gemini.NewClient(params, paramPrefix, gemini.WithModel(geminiModel))
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

	srv := &http.Server{
		Addr:              addr,
		Handler:           h.HTTPHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(gctx)
	})
	g.Go(func() error {
		slog.Info("honeypot listening", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server exited with error", "err", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
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
