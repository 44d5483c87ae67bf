package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ebaymcp/ebaymcp/internal/dependency"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve eBay tools over MCP stdio",
	RunE:  runServe,
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg.Log)

	c, err := dependency.New(cfg, dependency.BuildVersion(version))
	if err != nil {
		return fmt.Errorf("wire services: %w", err)
	}

	n, err := c.Registrar().RegisterAll(c.Server())
	if err != nil {
		return err
	}
	slog.Info("Registered eBay tools", "count", n, "areas", len(c.Catalog().Areas()))

	// Graceful shutdown context.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := c.Server().Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("MCP server stopped", "err", err)
		return err
	}
	slog.Info("Shutdown complete")
	return nil
}
