package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nasdaq-earnings-bot/internal/logger"
	"nasdaq-earnings-bot/internal/trace"
)

func main() {
	if err := initializeSystem(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(ctx)
	if err != nil {
		os.Exit(1)
	}

	source := initializeSource(ctx, cfg)

	chat, err := initializeDiscord(cfg)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to create Discord client", err)
		os.Exit(1)
	}

	b := initializeBot(cfg, source, chat)
	chat.HandleOverview(b.Overview)

	if err := chat.Open(ctx); err != nil {
		logger.ErrorWithErr(ctx, "Failed to connect to Discord", err)
		os.Exit(1)
	}

	sched, err := initializeScheduler(ctx, cfg, b)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to register triggers", err)
		chat.Close()
		os.Exit(1)
	}

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	sched.Start()
	logger.Info(ctx, "Bot started", "jobs", sched.Jobs())

	select {
	case <-sigc:
		logger.Info(ctx, "Shutting down...")
	case <-ctx.Done():
	}

	sched.Stop()
	if err := chat.Close(); err != nil {
		logger.Warn(ctx, "Failed to close Discord session", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := trace.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to shutdown tracer: %v\n", err)
	}
}
