// Package cmd implements the ebaymcp CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ebaymcp/ebaymcp/internal/config"
)

const version = "0.1.0"
const logo = "🛒"

var cfgFile string

// rootCmd is the base command. Without a subcommand it serves MCP over stdio.
var rootCmd = &cobra.Command{
	Use:          "ebaymcp",
	Short:        logo + " ebaymcp: eBay REST APIs as MCP tools",
	Long:         logo + " ebaymcp exposes the eBay Buy, Sell and Commerce APIs as Model Context Protocol tools",
	RunE:         runServe,
	SilenceUsage: true,
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $EBAYMCP_CONFIG or ~/.ebaymcp/config.json)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(onboardCmd)
}

func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return config.ConfigPath()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
