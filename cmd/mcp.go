package cmd

import (
	"github.com/huangsam/codequal/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Codequal MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents score, trend, compare
and validate project versions through standard tools.

Every tool call names its own results directories and project, so the server
needs no positional arguments. Cache and run tracking flags still apply.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
