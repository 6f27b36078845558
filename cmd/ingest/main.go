package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/skykauf/fivb-leaderboard/internal/app"
	"github.com/skykauf/fivb-leaderboard/internal/config"
	"github.com/skykauf/fivb-leaderboard/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline, cleanup, err := app.NewPipeline(ctx, cfg, logger)
	if err != nil {
		logger.Error("build pipeline", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	if _, err := pipeline.Run(ctx); err != nil {
		// The run summary is already logged by the pipeline itself.
		os.Exit(1)
	}
}
