package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

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

	builder := pipeline.NewBuilder(cfg, os.DirFS(cfg.Root), log)
	if _, err := builder.Run(context.Background()); err != nil {
		log.Error("build failed", "error", err)
		os.Exit(1)
	}
}
