package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/projscout/internal/output"
)

var refreshKind string

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Drop caches and scan base folders again",
	Long: `Refresh re-reads the configuration, deletes the on-disk cache file of
every targeted kind, and walks its base folders again. Use it after moving
projects around or editing base folders, or let 'projscout locate --refresh'
do both steps in one go.`,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().StringVarP(&refreshKind, "kind", "k", "", "Only refresh this kind (git, hg, svn, vscode, any)")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	p, err := loadProvider()
	if err != nil {
		return err
	}

	locs, err := targetLocators(p, refreshKind)
	if err != nil {
		return err
	}

	db := openHistory()
	if db != nil {
		defer func() { _ = db.Close() }()
	}

	var firstErr error
	for _, loc := range locs {
		configChanged := loc.RefreshConfig()
		if len(loc.Config().BaseFolders) == 0 {
			continue
		}
		if err := loc.Invalidate(); err != nil && firstErr == nil {
			firstErr = err
		}

		dirs, _, err := scanAndRecord(cmd.Context(), db, loc)
		line := fmt.Sprintf(" %s: %d projects", loc.Kind(), len(dirs))
		if configChanged {
			line += " (configuration changed)"
		}
		switch {
		case err != nil:
			fmt.Println(output.StyleError.Render(fmt.Sprintf(" %s: %v", loc.Kind(), err)))
			if firstErr == nil {
				firstErr = err
			}
		default:
			fmt.Println(output.StyleSuccess.Render(line))
		}
	}
	return firstErr
}
