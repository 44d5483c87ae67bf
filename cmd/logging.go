package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/ebaymcp/ebaymcp/internal/config"
)

// setupLogging installs the default slog logger on stderr; stdout is reserved
// for MCP frames.
func setupLogging(cfg config.LogConfig) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var h slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}
