package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/logging"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/station/biometric"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/station/cli"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/station/config"
	"github.com/yonatanalfandary-ops/Cyber-final-project-2026/internal/station/netclient"
)

const connectAttempts = 5

func main() {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		log.Fatal("the station runs interactively and needs a terminal on stdin")
	}

	cfg := config.LoadConfig()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := netclient.New(cfg.ServerAddr, cfg.RequestTimeout, logger)
	if err := client.ConnectWithRetry(ctx, connectAttempts); err != nil {
		logger.Error(ctx, "could not reach the server", "addr", cfg.ServerAddr, "error", err)
		os.Exit(1)
	}
	defer client.Close()

	app := cli.NewApp(cfg, client, biometric.DisabledCamera{}, biometric.EuclideanMatcher{}, logger)
	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "station stopped", "error", err)
		os.Exit(1)
	}
}
