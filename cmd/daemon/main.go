package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/thenoetrevino/dealflow/internal/cli/daemon"
	"github.com/thenoetrevino/dealflow/internal/config"
	"github.com/thenoetrevino/dealflow/internal/logging"
)

// dealflowd runs the event daemon without the rest of the CLI, for service managers
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	closer, err := logging.Init(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()

	if err := daemon.Run(context.Background(), cfg.Daemon.SocketPath, slog.Default()); err != nil {
		slog.Error("daemon error", "error", err)
		_ = closer.Close()
		os.Exit(1)
	}
}
