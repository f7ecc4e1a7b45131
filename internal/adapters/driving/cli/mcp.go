package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/memora-cli/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can use memora
as their memory.

By default the server communicates over stdio using JSON-RPC. Use --http
to serve the streamable HTTP transport instead, which enables testing
with the MCP Inspector web UI and remote access.

Examples:
  # Stdio mode (default, for desktop assistants)
  memora mcp

  # HTTP mode
  memora mcp --http :8080

Desktop assistant configuration:
  {
    "mcpServers": {
      "memora": {
        "command": "/path/to/memora",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	if memoryService == nil || contextService == nil || agentService == nil {
		return errors.New("memory services not configured")
	}

	ports := &mcp.Ports{
		Memory:  memoryService,
		Context: contextService,
		Agent:   agentService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s\n", mcpHTTPAddr)
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}

	return server.Run(cmd.Context())
}
