package app

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/projscout/internal/config"
	"github.com/blackwell-systems/projscout/internal/output"
	"github.com/blackwell-systems/projscout/internal/pathutil"
	"github.com/blackwell-systems/projscout/internal/store"
)

var (
	historyLimit  int
	historyKind   string
	historyScanID int64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded scans and project-count trends",
	Long: `History lists the scans recorded by locate and refresh, newest first,
with a trend arrow comparing each scan's project count against the previous
scan of the same kind. --scan shows the projects recorded with one scan.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of scans to show")
	historyCmd.Flags().StringVarP(&historyKind, "kind", "k", "", "Only scans of this kind")
	historyCmd.Flags().Int64Var(&historyScanID, "scan", 0, "Show the projects recorded with the given scan ID")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if _, err := loadProvider(); err != nil {
		return err
	}

	db, err := store.Open(config.DBPath())
	if err != nil {
		return fmt.Errorf("opening history database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if historyScanID > 0 {
		return renderScanDetail(db, historyScanID)
	}

	var scans []store.Scan
	if historyKind != "" {
		scans, err = db.RecentScansByKind(historyKind, historyLimit)
	} else {
		scans, err = db.RecentScans(historyLimit)
	}
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(scans)
	}

	fmt.Println(output.Section("Scan History"))
	fmt.Println()

	if len(scans) == 0 {
		fmt.Println(output.StyleMuted.Render(" No scans recorded yet. Run 'projscout locate'."))
		return nil
	}

	tbl := output.NewTable("ID", "When", "Kind", "Projects", "Trend", "Duration", "Source")
	for _, s := range scans {
		trend := ""
		if prev, err := db.PreviousScan(s.Kind, s.ID); err == nil && prev != nil {
			trend = output.TrendArrow(s.ProjectsFound - prev.ProjectsFound)
		}

		source := "walk"
		if s.CacheHit {
			source = "cache"
		}

		id := fmt.Sprintf("%d", s.ID)
		when := formatRelativeTime(s.StartedAt)
		count := fmt.Sprintf("%d", s.ProjectsFound)
		dur := fmt.Sprintf("%dms", s.DurationMs)

		if s.Error != "" {
			tbl.AddMutedRow(id, when, s.Kind, count, trend, dur, "failed")
			continue
		}
		tbl.AddRow(id, when, s.Kind, count, trend, dur, source)
	}
	tbl.Print()
	fmt.Println()
	return nil
}

// renderScanDetail prints one scan's metadata and its recorded projects.
func renderScanDetail(db *store.DB, id int64) error {
	scan, err := db.GetScan(id)
	if err != nil {
		return fmt.Errorf("reading scan %d: %w", id, err)
	}
	if scan == nil {
		return fmt.Errorf("no scan with ID %d", id)
	}

	projects, err := db.ScanProjects(id)
	if err != nil {
		return fmt.Errorf("reading scan %d projects: %w", id, err)
	}

	if flagJSON {
		out := struct {
			Scan     *store.Scan         `json:"scan"`
			Projects []store.ScanProject `json:"projects"`
		}{scan, projects}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println(output.Section(fmt.Sprintf("Scan %d", id)))
	fmt.Println()
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Kind:"), scan.Kind)
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Started:"), scan.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf(" %s %dms\n", output.StyleLabel.Render("Duration:"), scan.DurationMs)
	fmt.Printf(" %s %s\n", output.StyleLabel.Render("Base folders:"), scan.BaseFolders)
	if scan.Error != "" {
		fmt.Printf(" %s %s\n", output.StyleLabel.Render("Error:"), output.StyleError.Render(scan.Error))
	}
	fmt.Println()

	if len(projects) == 0 {
		fmt.Println(output.StyleMuted.Render(" No projects recorded."))
		return nil
	}

	tbl := output.NewTable("Project", "Path")
	for _, p := range projects {
		tbl.AddRow(p.Name, pathutil.Compact(p.FullPath))
	}
	tbl.Print()
	fmt.Println()
	return nil
}

// formatRelativeTime renders a timestamp as a short relative phrase like
// "just now", "3h ago", or "12d ago".
func formatRelativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
