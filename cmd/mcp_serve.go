package cmd

import (
	"github.com/chris-regnier/journalctl/internal/mcptools"
	"github.com/spf13/cobra"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes journal tools
over stdio transport. This allows MCP clients to search and add entries.

Available tools:
  - search_entries: Text and tag search over entries
  - list_tags: Tags with usage counts
  - create_entry: Create an entry with title, date, tags and content
  - export_entries: Export entries as a versioned transfer document

Example usage in an MCP client config:
  {
    "mcpServers": {
      "journalctl": {
        "command": "/path/to/journalctl",
        "args": ["mcp-serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	// stdout carries the protocol; diagnostics go to the log file.
	logger.Info(cmd.Context(), "starting MCP server", "backend", appConfig.Storage, "data_dir", appConfig.DataDir)
	return mcptools.Serve(cmd.Context(), store, logger)
}
