package main

import (
	"log/slog"
	"os"

	"github.com/nfrund/pollchat/internal/config"
	"github.com/nfrund/pollchat/internal/logging"
	"github.com/nfrund/pollchat/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogFormat, cfg.LogLevel)
	slog.SetDefault(logger)

	// Create a new server instance.
	s, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to build server", "error", err)
		os.Exit(1)
	}

	// Start the server.
	if err := s.Start(); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}
