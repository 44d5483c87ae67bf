// Package config defines the configuration schema for ebaymcp.
//
// JSON keys use camelCase. Credentials never live here: they are read from
// the environment when the eBay client is first needed.
package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/ebaymcp/ebaymcp/internal/ebay"
)

// ServerConfig is what the MCP server advertises to clients.
type ServerConfig struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// LogConfig controls the stderr logger.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// SlogLevel parses Level, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// EBayConfig tunes the eBay client. Empty URLs are derived from EBAY_SANDBOX.
type EBayConfig struct {
	MarketplaceID     string   `json:"marketplaceId"`
	Scopes            []string `json:"scopes"`
	TimeoutSeconds    int      `json:"timeoutSeconds"`
	RequestsPerSecond float64  `json:"requestsPerSecond"`
	// Areas restricts which API areas become tools; empty means all.
	Areas      []string `json:"areas"`
	APIBaseURL string   `json:"apiBaseUrl,omitempty"`
	TokenURL   string   `json:"tokenUrl,omitempty"`
}

// Timeout returns the HTTP timeout for API and token requests.
func (e EBayConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// Config is the root configuration object.
type Config struct {
	Server ServerConfig `json:"server"`
	Log    LogConfig    `json:"log"`
	EBay   EBayConfig   `json:"ebay"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{Name: "ebay"},
		Log:    LogConfig{Level: "info", Format: "text"},
		EBay: EBayConfig{
			MarketplaceID:  "EBAY_US",
			Scopes:         []string{ebay.AppScope},
			TimeoutSeconds: 30,
			Areas:          []string{},
		},
	}
}
