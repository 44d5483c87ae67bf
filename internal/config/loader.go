package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// EnvConfigPath overrides the default config file location.
const EnvConfigPath = "EBAYMCP_CONFIG"

// ConfigPath returns the config file path: $EBAYMCP_CONFIG, else
// ~/.ebaymcp/config.json.
func ConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(DataDir(), "config.json")
}

// DataDir returns the ebaymcp data directory: ~/.ebaymcp.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ebaymcp"
	}
	return filepath.Join(home, ".ebaymcp")
}

// ParseError reports a config file that exists but cannot be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Read is Load without the fallback: a file that does not parse is
// reported as a *ParseError. A missing file yields DefaultConfig().
func Read(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Load reads and parses the config file at path. Comments and trailing
// commas are allowed.
// If path is empty, ConfigPath() is used.
// On parse failure it prints a warning to stderr and returns DefaultConfig().
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	var perr *ParseError
	if errors.As(err, &perr) {
		// stdout carries MCP frames, so warnings go to stderr.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", perr)
		fmt.Fprintln(os.Stderr, "Using default configuration.")
		def := DefaultConfig()
		return &def, nil
	}
	return cfg, err
}

// Save writes cfg to path as indented JSON.
// If path is empty, ConfigPath() is used.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
