package cli

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kmzmerge/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server exposing kmzmerge to assistants.

Tools:
  merge_kmz   run a merge (regular_path, alley_path, area_id, output_dir, report, publish)
  list_runs   list recent runs

Resources:
  runs://recent   the 20 most recent runs
  runs://{id}     one run by ID or unique prefix

The server speaks JSON-RPC over stdio by default. Use --port to serve the
streamable HTTP transport instead.

Examples:
  kmzmerge mcp serve
  kmzmerge mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Merge:   mergeService,
		History: runHistory,
	}, mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if port <= 0 {
		return server.Run(cmd.Context())
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", port, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", ln.Addr())
	return server.Serve(cmd.Context(), ln)
}
