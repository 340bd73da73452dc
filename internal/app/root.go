// Package app contains the Cobra command tree for projscout.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "projscout",
	Short: "Locate and track projects across your configured base folders",
	Long: `projscout scans configured base folders for project directories such as
Git, Mercurial, and Subversion repositories or VS Code workspaces, caches
what it finds between sessions, and answers lookups against the cached list.

Configure base folders per kind in ~/.config/projscout/config.yaml under the
projectManager namespace, then run 'projscout locate'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("projscout", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  locate    Scan base folders and list located projects")
		fmt.Println("  pick      Interactively pick a project and print its path")
		fmt.Println("  exists    Check whether a path is a located project")
		fmt.Println("  refresh   Drop caches and scan again")
		fmt.Println("  kinds     List project kinds and their configuration")
		fmt.Println("  history   Show recorded scans and project-count trends")
		fmt.Println("  watch     Re-scan periodically and alert on changes")
		fmt.Println("  doctor    Check whether the projscout setup is healthy")
		fmt.Println("  mcp       Run an MCP stdio server exposing the locator")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/projscout/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Print every directory visited during scans")
}
