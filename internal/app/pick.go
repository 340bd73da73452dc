package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/projscout/internal/output"
	"github.com/blackwell-systems/projscout/internal/picker"
)

var pickKind string

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively pick a project and print its path",
	Long: `Pick shows the located projects of every kind (or one kind with --kind)
in a filterable full-screen list. The chosen project's path is printed to
stdout; the list itself renders to stderr, so it composes with the shell:

  cd "$(projscout pick)"

Quitting without a choice exits with status 1 and prints nothing.`,
	RunE: runPick,
}

func init() {
	pickCmd.Flags().StringVarP(&pickKind, "kind", "k", "", "Only pick among this kind (git, hg, svn, vscode, any)")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	p, err := loadProvider()
	if err != nil {
		return err
	}
	locs, err := targetLocators(p, pickKind)
	if err != nil {
		return err
	}

	var items []picker.Item
	for _, loc := range locs {
		if len(loc.Config().BaseFolders) == 0 {
			continue
		}
		dirs, _, err := scanAndRecord(cmd.Context(), nil, loc)
		if err != nil {
			fmt.Fprintln(os.Stderr, output.StyleWarning.Render(fmt.Sprintf("warning: %s scan failed: %v", loc.Kind(), err)))
		}
		for _, d := range dirs {
			items = append(items, picker.Item{Kind: loc.Kind(), Dir: d})
		}
	}

	if len(items) == 0 {
		return fmt.Errorf("no projects to pick from (check 'projscout kinds' for configured base folders)")
	}

	it, chosen, err := picker.Run(items)
	if err != nil {
		return fmt.Errorf("running picker: %w", err)
	}
	if !chosen {
		os.Exit(1)
	}
	fmt.Println(it.Dir.FullPath)
	return nil
}
