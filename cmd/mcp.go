package cmd

import (
	"github.com/mapmykidz/Mapmykidz/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the growth MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents run growth calculations
via standard tools: calculate_growth, calculate_age, calculate_mph,
convert_units and chart_points.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, store)
	},
}
