package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/projscout/internal/output"
	"github.com/blackwell-systems/projscout/internal/pathutil"
)

var existsKind string

var existsCmd = &cobra.Command{
	Use:   "exists <path>",
	Short: "Check whether a path is a located project",
	Long: `Exists looks a path up in the located project lists. The path may be
given expanded or with a leading ~, and matching ignores case. Kinds whose
list is not loaded yet are scanned first.

Exit status is 0 when the path is a known project root and 1 when not.`,
	Args: cobra.ExactArgs(1),
	RunE: runExists,
}

func init() {
	existsCmd.Flags().StringVarP(&existsKind, "kind", "k", "", "Only consult this kind (git, hg, svn, vscode, any)")
	rootCmd.AddCommand(existsCmd)
}

// existsOutput is the JSON shape of the exists command.
type existsOutput struct {
	Exists   bool   `json:"exists"`
	Kind     string `json:"kind,omitempty"`
	Name     string `json:"name,omitempty"`
	FullPath string `json:"fullPath,omitempty"`
}

func runExists(cmd *cobra.Command, args []string) error {
	path := args[0]

	p, err := loadProvider()
	if err != nil {
		return err
	}
	locs, err := targetLocators(p, existsKind)
	if err != nil {
		return err
	}

	for _, loc := range locs {
		if len(loc.Config().BaseFolders) == 0 {
			continue
		}
		// Lookups never scan by themselves, so load or build the list
		// first. Lookup scans are not recorded in history.
		if _, _, err := scanAndRecord(cmd.Context(), nil, loc); err != nil {
			fmt.Fprintln(os.Stderr, output.StyleWarning.Render(fmt.Sprintf("warning: %s scan failed: %v", loc.Kind(), err)))
		}

		d, ok := loc.ExistsWithRootPath(path)
		if !ok {
			continue
		}

		if flagJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(existsOutput{Exists: true, Kind: loc.Kind(), Name: d.Name, FullPath: d.FullPath})
		}
		fmt.Printf(" %s %s  %s\n",
			output.StyleSuccess.Render("✓"),
			output.StyleBold.Render(d.Name),
			output.StyleMuted.Render(fmt.Sprintf("%s project at %s", loc.Kind(), pathutil.Compact(d.FullPath))))
		return nil
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(existsOutput{Exists: false})
	} else {
		fmt.Printf(" %s %s\n",
			output.StyleWarning.Render("✗"),
			output.StyleMuted.Render("not a located project: "+path))
	}
	os.Exit(1)
	return nil
}
