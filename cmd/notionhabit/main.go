// Package main is the entry point for the notionhabit CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"notionhabit/internal/backend/notion"
	"notionhabit/internal/cli"
	"notionhabit/internal/commands"
	"notionhabit/internal/config"
	"notionhabit/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create store factory
	factory := func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.Store, error) {
		return notion.New(ctx, cfg, logger)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
