package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blackwell-systems/projscout/internal/cache"
	"github.com/blackwell-systems/projscout/internal/config"
	"github.com/blackwell-systems/projscout/internal/locator"
	"github.com/blackwell-systems/projscout/internal/output"
	"github.com/blackwell-systems/projscout/internal/pathutil"
	"github.com/blackwell-systems/projscout/internal/store"
	"github.com/blackwell-systems/projscout/internal/variants"
)

// loadProvider builds the configuration provider, honoring --config, and
// applies the color preference chain (config, TTY detection, --no-color).
func loadProvider() (*config.Provider, error) {
	p, err := config.NewProvider(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	output.AutoColor(p.Output().Color, flagNoColor)
	return p, nil
}

// newLocator wires a locator for one variant: the provider as its config
// source, the channel cache store, and terminal notifications.
func newLocator(p *config.Provider, v locator.Variant) *locator.Locator {
	return locator.New(v, p, cache.NewStore(p.Channel()), termNotifier{})
}

// targetLocators resolves a --kind value: the named kind only, or every
// registered variant when kind is empty.
func targetLocators(p *config.Provider, kind string) ([]*locator.Locator, error) {
	if kind != "" {
		v, ok := variants.ByKind(kind)
		if !ok {
			return nil, fmt.Errorf("unknown kind %q (registered: %s)", kind, strings.Join(kindNames(), ", "))
		}
		return []*locator.Locator{newLocator(p, v)}, nil
	}
	locs := make([]*locator.Locator, 0, len(variants.All()))
	for _, v := range variants.All() {
		locs = append(locs, newLocator(p, v))
	}
	return locs, nil
}

// kindNames returns the registered kind identifiers in registration order.
func kindNames() []string {
	var names []string
	for _, v := range variants.All() {
		names = append(names, v.Kind())
	}
	return names
}

// openHistory opens the scan history database, creating it on first use.
// History recording is best-effort; callers treat a nil DB as "no history".
func openHistory() *store.DB {
	db, err := store.Open(config.DBPath())
	if err != nil {
		return nil
	}
	return db
}

// scanAndRecord runs one locator's Locate, timing it, and records a scan
// row plus the located projects when the database is available. cacheHit
// reports whether the list came from a cache file or an earlier in-process
// scan rather than a fresh walk.
func scanAndRecord(ctx context.Context, db *store.DB, loc *locator.Locator) (dirs locator.DirList, cacheHit bool, err error) {
	loc.InitializeCfg()
	cacheHit = loc.IsAlreadyLocated()

	start := time.Now()
	dirs, err = loc.Locate(ctx)
	elapsed := time.Since(start)

	if db != nil {
		scan := &store.Scan{
			StartedAt:     start,
			Kind:          loc.Kind(),
			DurationMs:    elapsed.Milliseconds(),
			BaseFolders:   strings.Join(loc.Config().BaseFolders, ", "),
			ProjectsFound: len(dirs),
			CacheHit:      cacheHit,
		}
		if err != nil {
			scan.Error = err.Error()
		}
		if id, insErr := db.InsertScan(scan); insErr == nil {
			projects := make([]store.ScanProject, 0, len(dirs))
			for _, d := range dirs {
				projects = append(projects, store.ScanProject{FullPath: d.FullPath, Name: d.Name})
			}
			_ = db.InsertScanProjects(id, projects)
		}
	}
	return dirs, cacheHit, err
}

// termNotifier renders locator progress to stderr, keeping stdout free for
// results (pick prints a bare path, --json a document). Directory-level
// lines appear only with --verbose; warnings always print. Scan failures are
// left to the command's own error reporting.
type termNotifier struct{}

func (termNotifier) ScanStarted(kind string) {
	if flagVerbose {
		fmt.Fprintln(os.Stderr, output.StyleMuted.Render(fmt.Sprintf("scanning for %s projects...", kind)))
	}
}

func (termNotifier) Scanning(dir string) {
	if flagVerbose {
		fmt.Fprintln(os.Stderr, output.StyleMuted.Render("  "+pathutil.Compact(dir)))
	}
}

func (termNotifier) FolderMissing(dir string) {
	fmt.Fprintln(os.Stderr, output.StyleWarning.Render("warning: base folder not found: "+pathutil.Compact(dir)))
}

func (termNotifier) ScanDone(kind string, found int) {
	if flagVerbose {
		fmt.Fprintln(os.Stderr, output.StyleMuted.Render(fmt.Sprintf("%s: %d projects", kind, found)))
	}
}

func (termNotifier) ScanFailed(string, error) {}

func (termNotifier) CacheProblem(kind string, err error) {
	fmt.Fprintln(os.Stderr, output.StyleWarning.Render(fmt.Sprintf("warning: %s cache: %v", kind, err)))
}
