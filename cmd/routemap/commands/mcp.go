package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/routemap/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve route analysis tools to MCP clients over stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout.

Tools:
  analyze_routes   Render the routes in any format
  list_routes      List routes, optionally filtered
  route_info       Show one route in detail

Example client configuration:
  {"command": "routemap", "args": ["mcp", "--dir", "/path/to/project"]}`,
	Args: cobra.NoArgs,
	Run:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) {
	dir, err := filepath.Abs(projectDir)
	if err != nil {
		exitWithError(err)
	}
	if err := mcp.NewServer(dir).Serve(); err != nil {
		exitWithError(err)
	}
}
