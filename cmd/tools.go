package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ebaymcp/ebaymcp/internal/dependency"
	"github.com/ebaymcp/ebaymcp/internal/mcp"
	"github.com/ebaymcp/ebaymcp/internal/schema"
	"github.com/ebaymcp/ebaymcp/internal/shared/stringutils"
	"github.com/ebaymcp/ebaymcp/internal/tools"
)

var (
	toolsArea string
	toolsJSON bool
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the generated eBay tools",
	RunE:  runTools,
}

func init() {
	toolsCmd.Flags().StringVarP(&toolsArea, "area", "a", "", "Only list tools of this API area")
	toolsCmd.Flags().BoolVar(&toolsJSON, "json", false, "Print MCP tool definitions as JSON")
}

func runTools(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if toolsArea != "" {
		cfg.EBay.Areas = []string{toolsArea}
	}

	c, err := dependency.New(cfg, dependency.BuildVersion(version))
	if err != nil {
		return err
	}
	registry := tools.NewRegistry()
	if _, err := c.Registrar().RegisterAll(registry); err != nil {
		return err
	}

	if toolsJSON {
		return printToolDefinitions(registry.All())
	}

	fmt.Printf("%-50s %-8s %s\n", "Tool", "Params", "Required")
	fmt.Println(strings.Repeat("-", 90))
	for _, desc := range registry.All() {
		var required []string
		for _, p := range desc.Parameters {
			if p.Required {
				required = append(required, p.Name)
			}
		}
		fmt.Printf("%-50s %-8d %s\n", stringutils.Truncate(desc.Name, 47), len(desc.Parameters), strings.Join(required, ", "))
	}
	fmt.Printf("\n%d tools\n", registry.Len())
	return nil
}

func printToolDefinitions(descs []schema.ToolDescriptor) error {
	defs := make([]map[string]any, 0, len(descs))
	for _, desc := range descs {
		defs = append(defs, map[string]any{
			"name":        desc.Name,
			"description": desc.Description,
			"inputSchema": mcp.InputSchema(desc.Parameters),
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(defs)
}
