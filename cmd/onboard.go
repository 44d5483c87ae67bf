package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ebaymcp/ebaymcp/internal/config"
	"github.com/ebaymcp/ebaymcp/internal/providers"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Write a default configuration file",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return onboard(configPath(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func onboard(cfgPath string, in io.Reader, out io.Writer) error {
	if _, err := os.Stat(cfgPath); err == nil {
		// Read, not Load: a broken file must not be replaced by defaults.
		existing, err := config.Read(cfgPath)
		if err != nil {
			return fmt.Errorf("%w (fix or remove the file, then run onboard again)", err)
		}
		fmt.Fprintf(out, "Config already exists at %s\n", cfgPath)
		fmt.Fprintln(out, "Refreshing keeps existing values, adds new defaults and drops comments.")
		fmt.Fprint(out, "Press Enter to refresh or Ctrl+C to cancel: ")
		if !confirmed(in) {
			fmt.Fprintln(out, "\nCancelled, config left unchanged.")
			return nil
		}
		if err := config.Save(existing, cfgPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Config refreshed at %s\n", cfgPath)
	} else {
		cfg := config.DefaultConfig()
		if err := config.Save(&cfg, cfgPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Created config at %s\n", cfgPath)
	}

	fmt.Fprintf(out, "\n%s ebaymcp is ready!\n\n", logo)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintf(out, "  1. Export %s and %s from your eBay developer keyset\n", providers.EnvClientID, providers.EnvClientSecret)
	fmt.Fprintln(out, "     Get one at: https://developer.ebay.com/my/keys")
	fmt.Fprintf(out, "  2. Set %s=1 to use the sandbox\n", providers.EnvSandbox)
	fmt.Fprintln(out, "  3. Point your MCP client at: ebaymcp serve")
	return nil
}

// confirmed reports whether the user pressed Enter (or answered y/yes).
// End of input without a line, as in a non-interactive run, counts as no.
func confirmed(in io.Reader) bool {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "y", "yes":
		return true
	}
	return false
}
