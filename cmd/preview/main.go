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

	"github.com/dgallion1/homepage/internal/api"
	"github.com/dgallion1/homepage/internal/config"
	"github.com/dgallion1/homepage/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("load configuration", "error", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Level()}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	builder := pipeline.NewBuilder(cfg, os.DirFS(cfg.Root), log)

	// A failed first build is reported but the server still starts, so the
	// next asset change can fix it.
	if _, err := builder.Run(ctx); err != nil {
		log.Error("initial build failed", "error", err)
	}

	go func() {
		if err := builder.Watch(ctx, cfg.PreviewDebounce); err != nil {
			log.Error("watcher stopped", "error", err)
		}
	}()

	httpServer := &http.Server{
		Addr:         "127.0.0.1:" + cfg.PreviewPort,
		Handler:      api.NewServer(builder, log, cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting preview", "addr", "http://"+httpServer.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
