package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/projscout/internal/cache"
	"github.com/blackwell-systems/projscout/internal/output"
	"github.com/blackwell-systems/projscout/internal/variants"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List project kinds and their configuration",
	Long: `Kinds shows every registered project kind with its display name,
configured base folders, depth limit, and cache state. Kinds without base
folders are listed muted; they are skipped by locate and watch.`,
	RunE: runKinds,
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}

// kindInfo is one registered kind in the command output.
type kindInfo struct {
	Kind           string   `json:"kind"`
	DisplayName    string   `json:"displayName"`
	BaseFolders    []string `json:"baseFolders"`
	IgnoredFolders []string `json:"ignoredFolders,omitempty"`
	MaxDepth       int      `json:"maxDepth"`
	CacheEnabled   bool     `json:"cacheEnabled"`
	Cached         bool     `json:"cached"`
}

func runKinds(cmd *cobra.Command, args []string) error {
	p, err := loadProvider()
	if err != nil {
		return err
	}
	cs := cache.NewStore(p.Channel())

	var infos []kindInfo
	for _, v := range variants.All() {
		cfg := p.LocatorConfig(v.Kind())
		_, statErr := os.Stat(cs.Path(v.Kind()))
		infos = append(infos, kindInfo{
			Kind:           v.Kind(),
			DisplayName:    v.DisplayName(),
			BaseFolders:    cfg.BaseFolders,
			IgnoredFolders: cfg.IgnoredFolders,
			MaxDepth:       cfg.MaxDepth,
			CacheEnabled:   cfg.CacheEnabled,
			Cached:         statErr == nil,
		})
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	fmt.Println(output.Section("Project Kinds"))
	fmt.Println()

	tbl := output.NewTable("Kind", "Name", "Base Folders", "Depth", "Cache")
	for _, info := range infos {
		if len(info.BaseFolders) == 0 {
			tbl.AddMutedRow(info.Kind, info.DisplayName, "(not configured)", "", "")
			continue
		}
		depth := "unlimited"
		if info.MaxDepth > 0 {
			depth = fmt.Sprintf("%d", info.MaxDepth)
		}
		cacheCol := "off"
		switch {
		case info.CacheEnabled && info.Cached:
			cacheCol = "on, cached"
		case info.CacheEnabled:
			cacheCol = "on"
		}
		tbl.AddRow(info.Kind, info.DisplayName, strings.Join(info.BaseFolders, ", "), depth, cacheCol)
	}
	tbl.Print()

	// Configured sections that match no registered kind are usually typos.
	registered := make(map[string]bool)
	for _, v := range variants.All() {
		registered[v.Kind()] = true
	}
	var unknown []string
	for _, k := range p.ConfiguredKinds() {
		if !registered[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		fmt.Println()
		fmt.Println(output.StyleWarning.Render(" configured but not registered: " + strings.Join(unknown, ", ")))
	}
	fmt.Println()
	return nil
}
