package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sahilbaig/examparse/internal/api"
	"github.com/sahilbaig/examparse/internal/config"
	"github.com/sahilbaig/examparse/internal/extract"
	"github.com/sahilbaig/examparse/internal/llm"
	"github.com/sahilbaig/examparse/internal/pipeline"
	"github.com/sahilbaig/examparse/internal/source"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize clients.
	ollama := llm.NewClient(cfg.OllamaURL, cfg.OllamaModel, cfg.GenerateTimeout)
	fetcher := source.NewFetcher(cfg.FetchTimeout, cfg.MaxFetchBytes)

	// Initialize pipeline.
	model := extract.NewModelExtractor(ollama, log)
	runner := pipeline.NewRunner(fetcher, model, cfg, log)

	// Initialize HTTP server.
	srv := api.NewServer(runner, ollama, log)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		ollama.Close()
		fetcher.Close()
	}()

	log.Info("starting examparse", "port", cfg.Port, "model", cfg.OllamaModel)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
