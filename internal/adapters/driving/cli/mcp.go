package cli

import (
	"context"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hybrid-rag/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can query the index.

By default, the server communicates over stdio using JSON-RPC.
Use --port to serve streamable HTTP instead.

Examples:
  # Stdio mode (default)
  hybrid-rag mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  hybrid-rag mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "hybrid-rag": {
        "command": "/path/to/hybrid-rag",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

var (
	mcpPort int
	mcpHost string
)

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "HTTP bind host (with --port)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(&mcp.Ports{Retrieval: retrievalService})
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	if !retrievalService.Stats(ctx).IsIndexed {
		cmd.PrintErrln("Warning: index not built; searches fail until you run 'hybrid-rag index <records-file>'")
	}

	addr := ""
	if mcpPort > 0 {
		addr = net.JoinHostPort(mcpHost, strconv.Itoa(mcpPort))
		cmd.Printf("MCP server listening on http://%s\n", addr)
	}
	return serveMCP(ctx, server, addr)
}

// serveMCP runs server over stdio when addr is empty. Replaced in tests.
var serveMCP = func(ctx context.Context, server *mcp.Server, addr string) error {
	if addr == "" {
		return server.Run(ctx)
	}
	return server.RunHTTP(ctx, addr)
}
