package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/projscout/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP stdio server exposing the locator",
	Long: `Start a Model Context Protocol stdio server that coding agents can
query during a session. The server exposes four tools:

  locate_projects    Located projects for one kind or all kinds
  project_exists     Whether a path is a located project root
  refresh_projects   Drop caches and re-scan, returning new counts
  list_kinds         Registered kinds and their configuration

Add to your client's MCP configuration:
  {"mcpServers":{"projscout":{"command":"projscout","args":["mcp"]}}}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	p, err := loadProvider()
	if err != nil {
		return err
	}
	// Locator diagnostics go to stderr, leaving stdout to the protocol.
	locs, err := targetLocators(p, "")
	if err != nil {
		return err
	}
	srv := mcp.NewServer(locs)
	return srv.Run(cmd.Context(), os.Stdin, os.Stdout)
}
