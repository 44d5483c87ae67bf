package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ebaymcp/ebaymcp/internal/ebay"
	"github.com/ebaymcp/ebaymcp/internal/providers"
	"github.com/ebaymcp/ebaymcp/internal/shared/stringutils"
	"github.com/ebaymcp/ebaymcp/internal/tools"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show ebaymcp status",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := configPath()

	fmt.Printf("%s ebaymcp Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	cfgMark := "✗ (using defaults)"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Printf("Config:      %s %s\n", cfgPath, cfgMark)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	env := "production"
	if stringutils.IsTruthy(os.Getenv(providers.EnvSandbox)) {
		env = "sandbox"
	}
	fmt.Printf("Environment: %s\n", env)
	fmt.Printf("Marketplace: %s\n\n", cfg.EBay.MarketplaceID)

	fmt.Println("Credentials:")
	_, credErr := providers.ReadCredentials(os.LookupEnv)
	var cerr *tools.ConfigurationError
	missing := map[string]bool{}
	if errors.As(credErr, &cerr) {
		for _, name := range cerr.Missing {
			missing[name] = true
		}
	}
	for _, name := range []string{providers.EnvClientID, providers.EnvClientSecret} {
		if missing[name] {
			fmt.Printf("  %-20s (not set)\n", name)
		} else {
			fmt.Printf("  %-20s ✓\n", name)
		}
	}
	if os.Getenv(providers.EnvRefreshToken) != "" {
		fmt.Printf("  %-20s ✓ (user token)\n", providers.EnvRefreshToken)
	} else {
		fmt.Printf("  %-20s (not set, application token)\n", providers.EnvRefreshToken)
	}

	catalog, err := ebay.DefaultCatalog()
	if err != nil {
		return err
	}
	enabled := map[string]bool{}
	for _, id := range cfg.EBay.Areas {
		enabled[id] = true
	}
	fmt.Println("\nAPI areas:")
	for _, area := range catalog.Areas() {
		mark := "✓"
		if len(enabled) > 0 && !enabled[area.ID] {
			mark = "(disabled)"
		}
		fmt.Printf("  %-20s %-24s %2d methods %s\n", area.ID, area.Title, len(tools.Enumerate(area)), mark)
	}
	return nil
}
