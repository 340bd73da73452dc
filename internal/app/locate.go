package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/projscout/internal/config"
	"github.com/blackwell-systems/projscout/internal/output"
	"github.com/blackwell-systems/projscout/internal/pathutil"
)

var (
	locateKind    string
	locateRefresh bool
	locateJSON    bool
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Scan base folders and list located projects",
	Long: `Locate walks the configured base folders of every project kind (or a
single kind with --kind), honoring per-kind ignored folder names and depth
limits. Results are cached between sessions unless caching is disabled;
--refresh drops the caches first and forces a fresh walk.

Each walk is recorded in the history database, see 'projscout history'.`,
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().StringVarP(&locateKind, "kind", "k", "", "Only locate projects of this kind (git, hg, svn, vscode, any)")
	locateCmd.Flags().BoolVar(&locateRefresh, "refresh", false, "Drop caches and walk again")
	locateCmd.Flags().BoolVar(&locateJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(locateCmd)
}

// locateEntry is one located project in the command output.
type locateEntry struct {
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	FullPath string `json:"fullPath"`
}

func runLocate(cmd *cobra.Command, args []string) error {
	p, err := loadProvider()
	if err != nil {
		return err
	}

	locs, err := targetLocators(p, locateKind)
	if err != nil {
		return err
	}

	db := openHistory()
	if db != nil {
		defer func() { _ = db.Close() }()
	}

	var (
		entries   []locateEntry
		fromCache int
		failures  []string
	)
	for _, loc := range locs {
		if len(loc.Config().BaseFolders) == 0 {
			// Kinds without base folders have nothing to walk. Only an
			// explicit --kind for one of them deserves an error.
			if locateKind != "" {
				return fmt.Errorf("no base folders configured for kind %q (set %s.%s.baseFolders)",
					locateKind, config.Namespace, locateKind)
			}
			continue
		}

		if locateRefresh {
			loc.RefreshConfig()
			_ = loc.Invalidate()
		}

		dirs, cacheHit, err := scanAndRecord(cmd.Context(), db, loc)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", loc.Kind(), err))
		}
		if cacheHit {
			fromCache++
		}
		for _, d := range dirs {
			entries = append(entries, locateEntry{Kind: loc.Kind(), Name: d.Name, FullPath: d.FullPath})
		}
	}

	if locateJSON || flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return err
		}
	} else {
		renderLocateTable(entries, fromCache)
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d scan(s) failed: %s", len(failures), strings.Join(failures, "; "))
	}
	return nil
}

func renderLocateTable(entries []locateEntry, fromCache int) {
	fmt.Println(output.Section("Located Projects"))
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println(output.StyleMuted.Render(" No projects found. Run 'projscout kinds' to review base folders."))
		return
	}

	tbl := output.NewTable("Kind", "Project", "Path")
	for _, e := range entries {
		tbl.AddRow(e.Kind, e.Name, pathutil.Compact(e.FullPath))
	}
	tbl.Print()

	fmt.Println()
	summary := fmt.Sprintf("%d projects", len(entries))
	if fromCache > 0 {
		summary += fmt.Sprintf(", %d kind(s) answered from cache ('projscout refresh' re-scans)", fromCache)
	}
	fmt.Printf(" %s\n", output.StyleMuted.Render(summary))
}
