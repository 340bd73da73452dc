package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/projscout/internal/cache"
	"github.com/blackwell-systems/projscout/internal/config"
	"github.com/blackwell-systems/projscout/internal/output"
	"github.com/blackwell-systems/projscout/internal/pathutil"
	"github.com/blackwell-systems/projscout/internal/store"
	"github.com/blackwell-systems/projscout/internal/variants"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the projscout setup is healthy",
	Long: `Run a series of health checks against your projscout configuration:
the config file parses, base folders exist, the cache directory is writable,
and the history database opens. Prints a pass/fail line for each check and a
summary of how many checks passed.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	var checks []doctorCheck

	p, err := config.NewProvider(flagConfig)
	if err != nil {
		// A config file that does not parse fails the first check; the
		// remaining checks depend on it and are skipped.
		output.AutoColor(true, flagNoColor)
		checks = append(checks, doctorCheck{
			Name:    "Config file",
			Passed:  false,
			Message: err.Error(),
		})
		return renderDoctor(checks)
	}
	output.AutoColor(p.Output().Color, flagNoColor)

	checks = append(checks, checkConfigFile(p))
	checks = append(checks, checkConfiguredKinds(p))
	checks = append(checks, checkBaseFolders(p)...)
	checks = append(checks, checkCacheDir(p))
	checks = append(checks, checkHistoryDB())
	checks = append(checks, checkWatchDaemon())

	return renderDoctor(checks)
}

func renderDoctor(checks []doctorCheck) error {
	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	if flagJSON {
		out := doctorOutput{
			Checks:      checks,
			PassedCount: passed,
			TotalCount:  len(checks),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println(output.Section("Doctor"))
	fmt.Println()

	for _, c := range checks {
		renderDoctorCheck(c)
	}

	fmt.Println()
	summary := fmt.Sprintf("%d/%d checks passed", passed, len(checks))
	if passed == len(checks) {
		fmt.Printf(" %s\n\n", output.StyleSuccess.Render(summary))
	} else {
		fmt.Printf(" %s\n\n", output.StyleWarning.Render(summary))
	}
	return nil
}

// renderDoctorCheck prints a single check result line.
func renderDoctorCheck(c doctorCheck) {
	var indicator string
	if c.Passed {
		indicator = output.StyleSuccess.Render("✓")
	} else {
		indicator = output.StyleWarning.Render("✗")
	}
	label := output.StyleBold.Render(c.Name)
	detail := output.StyleMuted.Render(c.Message)
	fmt.Printf("  %s  %-30s %s\n", indicator, label, detail)
}

// checkConfigFile reports which config file is in effect. A missing file is
// fine; defaults apply.
func checkConfigFile(p *config.Provider) doctorCheck {
	if used := p.ConfigFileUsed(); used != "" {
		return doctorCheck{
			Name:    "Config file",
			Passed:  true,
			Message: pathutil.Compact(used),
		}
	}
	return doctorCheck{
		Name:    "Config file",
		Passed:  true,
		Message: "none found, defaults in effect",
	}
}

// checkConfiguredKinds verifies that at least one registered kind has base
// folders configured.
func checkConfiguredKinds(p *config.Provider) doctorCheck {
	configured := 0
	for _, v := range variants.All() {
		if len(p.LocatorConfig(v.Kind()).BaseFolders) > 0 {
			configured++
		}
	}
	if configured == 0 {
		return doctorCheck{
			Name:    "Configured kinds",
			Passed:  false,
			Message: fmt.Sprintf("none (set %s.<kind>.baseFolders)", config.Namespace),
		}
	}
	return doctorCheck{
		Name:    "Configured kinds",
		Passed:  true,
		Message: fmt.Sprintf("%d of %d kinds have base folders", configured, len(variants.All())),
	}
}

// checkBaseFolders verifies, per configured kind, that every base folder
// exists on disk.
func checkBaseFolders(p *config.Provider) []doctorCheck {
	var checks []doctorCheck
	for _, v := range variants.All() {
		cfg := p.LocatorConfig(v.Kind())
		if len(cfg.BaseFolders) == 0 {
			continue
		}

		var missing []string
		for _, base := range cfg.BaseFolders {
			if _, err := os.Stat(pathutil.Expand(base)); err != nil {
				missing = append(missing, base)
			}
		}

		name := fmt.Sprintf("Base folders: %s", v.Kind())
		if len(missing) > 0 {
			checks = append(checks, doctorCheck{
				Name:    name,
				Passed:  false,
				Message: fmt.Sprintf("missing: %v", missing),
			})
			continue
		}
		checks = append(checks, doctorCheck{
			Name:    name,
			Passed:  true,
			Message: fmt.Sprintf("%d folder(s), all present", len(cfg.BaseFolders)),
		})
	}
	return checks
}

// checkCacheDir verifies the cache directory is writable and counts which
// kinds currently have a cache file.
func checkCacheDir(p *config.Provider) doctorCheck {
	s := cache.NewStore(p.Channel())
	dir := s.Dir()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return doctorCheck{
			Name:    "Cache directory",
			Passed:  false,
			Message: fmt.Sprintf("cannot create %s: %v", pathutil.Compact(dir), err),
		}
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return doctorCheck{
			Name:    "Cache directory",
			Passed:  false,
			Message: fmt.Sprintf("not writable: %v", err),
		}
	}
	_ = os.Remove(probe)

	cached := 0
	for _, v := range variants.All() {
		if _, err := os.Stat(s.Path(v.Kind())); err == nil {
			cached++
		}
	}
	return doctorCheck{
		Name:    "Cache directory",
		Passed:  true,
		Message: fmt.Sprintf("%s (%d kind(s) cached)", pathutil.Compact(dir), cached),
	}
}

// checkHistoryDB verifies the scan history database opens and reports when
// the last scan ran.
func checkHistoryDB() doctorCheck {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return doctorCheck{
			Name:    "History database",
			Passed:  false,
			Message: fmt.Sprintf("cannot open %s: %v", pathutil.Compact(config.DBPath()), err),
		}
	}
	defer func() { _ = db.Close() }()

	scans, err := db.RecentScans(1)
	if err != nil || len(scans) == 0 {
		return doctorCheck{
			Name:    "History database",
			Passed:  true,
			Message: "no scans recorded yet",
		}
	}
	return doctorCheck{
		Name:    "History database",
		Passed:  true,
		Message: fmt.Sprintf("last scan %s", formatRelativeTime(scans[0].StartedAt)),
	}
}

// checkWatchDaemon checks whether the watch daemon PID file exists and the
// process is running.
func checkWatchDaemon() doctorCheck {
	pid, err := readPID()
	if err != nil {
		return doctorCheck{
			Name:    "Watch daemon",
			Passed:  false,
			Message: "not running (no PID file)",
		}
	}
	if !processExists(pid) {
		return doctorCheck{
			Name:    "Watch daemon",
			Passed:  false,
			Message: fmt.Sprintf("PID %d is not running (stale PID file)", pid),
		}
	}
	return doctorCheck{
		Name:    "Watch daemon",
		Passed:  true,
		Message: fmt.Sprintf("running (PID %d)", pid),
	}
}
