package locator

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/projscout/internal/pathutil"
)

// Locator discovers and tracks project directories of one kind. All methods
// are safe for concurrent use. Scans run one goroutine per base folder;
// results commit only if no refresh superseded the scan while it ran.
type Locator struct {
	variant  Variant
	source   ConfigSource
	store    CacheStore
	notifier Notifier

	mu         sync.Mutex
	cfg        Config
	dirs       DirList
	located    bool
	generation uint64
}

// New returns a Locator for the given variant. source must be non-nil;
// store and notifier may be nil, disabling persistence and notifications
// respectively. The initial configuration snapshot is taken immediately.
func New(variant Variant, source ConfigSource, store CacheStore, notifier Notifier) *Locator {
	if store == nil {
		store = nopStore{}
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	l := &Locator{
		variant:  variant,
		source:   source,
		store:    store,
		notifier: notifier,
	}
	l.RefreshConfig()
	return l
}

// Variant returns the variant this Locator was built with.
func (l *Locator) Variant() Variant { return l.variant }

// Kind returns the variant's kind identifier.
func (l *Locator) Kind() string { return l.variant.Kind() }

// Config returns the current configuration snapshot.
func (l *Locator) Config() Config {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cfg
}

// DirList returns a copy of the currently tracked project list.
func (l *Locator) DirList() DirList {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append(DirList(nil), l.dirs...)
}

// IsAlreadyLocated reports whether the tracked list is populated and
// current, either from a completed scan or a loaded cache file.
func (l *Locator) IsAlreadyLocated() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.located
}

// SetAlreadyLocated marks the tracked list as current (or stale, with
// false). Marking it current persists the list when caching is enabled, so
// hosts that assemble a list by hand can make it survive the session.
func (l *Locator) SetAlreadyLocated(v bool) {
	l.mu.Lock()
	l.located = v
	persist := v && l.cfg.CacheEnabled
	dirs := append(DirList(nil), l.dirs...)
	l.mu.Unlock()

	if persist {
		if err := l.store.Save(l.variant.Kind(), dirs); err != nil {
			l.notifier.CacheProblem(l.variant.Kind(), err)
		}
	}
}

// AddToList appends a project to the tracked list without scanning. The
// name falls back to the variant's naming rule when empty.
func (l *Locator) AddToList(fullPath, name string) {
	if name == "" {
		name = l.variant.DecideProjectName(fullPath)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.dirs = append(l.dirs, DirInfo{FullPath: fullPath, Name: name})
}

// ClearDirList empties the tracked list and marks it stale. Any scan in
// flight is superseded and will not commit its results.
func (l *Locator) ClearDirList() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.clearLocked()
}

func (l *Locator) clearLocked() {
	l.dirs = nil
	l.located = false
	l.generation++
}

// RefreshConfig re-reads this kind's configuration and installs it as the
// new snapshot. It reports whether any field differs from the previous
// snapshot.
func (l *Locator) RefreshConfig() bool {
	fresh := l.source.LocatorConfig(l.variant.Kind())
	l.mu.Lock()
	defer l.mu.Unlock()
	changed := !l.cfg.Equal(fresh)
	l.cfg = fresh
	return changed
}

// InitializeCfg applies the cache policy for the current snapshot. With
// caching disabled all tracked state is dropped, forcing the next Locate to
// walk. With caching enabled and no current list, a previously written
// cache file is loaded and the list marked current; a cache that exists but
// cannot be decoded is treated as absent.
func (l *Locator) InitializeCfg() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.cfg.CacheEnabled {
		l.dirs = nil
		l.located = false
		return
	}
	if l.located {
		return
	}

	dirs, found, err := l.store.Load(l.variant.Kind())
	if err != nil {
		l.notifier.CacheProblem(l.variant.Kind(), err)
		return
	}
	if !found {
		return
	}
	l.dirs = dirs
	l.located = true
}

// Locate returns the project list for this kind, reusing the tracked list
// when it is current and otherwise walking every configured base folder
// concurrently. Missing base folders are skipped with a notification. A
// failed walk aborts the scan; whatever was collected is retained and
// returned alongside the error.
func (l *Locator) Locate(ctx context.Context) (DirList, error) {
	l.mu.Lock()
	cfg := l.cfg
	l.mu.Unlock()

	if len(cfg.BaseFolders) == 0 {
		return DirList{}, nil
	}

	l.InitializeCfg()

	l.mu.Lock()
	if l.located {
		dirs := append(DirList(nil), l.dirs...)
		l.mu.Unlock()
		return dirs, nil
	}
	l.dirs = nil
	gen := l.generation
	l.mu.Unlock()

	l.notifier.ScanStarted(l.variant.Kind())

	ignored := make(map[string]bool, len(cfg.IgnoredFolders))
	for _, name := range cfg.IgnoredFolders {
		ignored[name] = true
	}

	subLists := make([]DirList, len(cfg.BaseFolders))
	g, gctx := errgroup.WithContext(ctx)
	for i, base := range cfg.BaseFolders {
		expanded := pathutil.Expand(base)
		if _, err := os.Stat(expanded); err != nil {
			l.notifier.FolderMissing(expanded)
			continue
		}
		i := i // per-iteration copy; go directive < 1.22 shares the range variable
		g.Go(func() error {
			dirs, err := l.walkBase(gctx, expanded, ignored, cfg.MaxDepth)
			subLists[i] = dirs
			return err
		})
	}
	walkErr := g.Wait()

	var merged DirList
	for _, sub := range subLists {
		merged = append(merged, sub...)
	}
	if merged == nil {
		merged = DirList{}
	}

	l.mu.Lock()
	superseded := gen != l.generation
	if !superseded {
		l.dirs = merged
		l.located = walkErr == nil
	}
	l.mu.Unlock()

	if walkErr != nil {
		l.notifier.ScanFailed(l.variant.Kind(), walkErr)
		return merged, fmt.Errorf("locating %s projects: %w", l.variant.Kind(), walkErr)
	}
	if superseded {
		return merged, nil
	}

	if cfg.CacheEnabled {
		if err := l.store.Save(l.variant.Kind(), merged); err != nil {
			l.notifier.CacheProblem(l.variant.Kind(), err)
		}
	}
	l.notifier.ScanDone(l.variant.Kind(), len(merged))
	return merged, nil
}

// ExistsWithRootPath looks up a tracked project by its root path. The
// comparison is case-insensitive and accepts the path in expanded or
// home-compacted form. Lookup never scans: before any scan or cache load
// has populated the list, it reports false for every path.
func (l *Locator) ExistsWithRootPath(rootPath string) (DirInfo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.located {
		return DirInfo{}, false
	}
	expanded := pathutil.Expand(rootPath)
	for _, d := range l.dirs {
		if strings.EqualFold(d.FullPath, rootPath) ||
			strings.EqualFold(d.FullPath, expanded) ||
			strings.EqualFold(pathutil.Compact(d.FullPath), rootPath) {
			return d, true
		}
	}
	return DirInfo{}, false
}

// Invalidate drops the tracked list, deletes this kind's cache file, and
// supersedes any scan in flight. The cache file is removed even when
// caching is disabled, so a later re-enable starts clean.
func (l *Locator) Invalidate() error {
	l.ClearDirList()
	if err := l.store.Delete(l.variant.Kind()); err != nil {
		l.notifier.CacheProblem(l.variant.Kind(), err)
		return fmt.Errorf("deleting %s cache: %w", l.variant.Kind(), err)
	}
	return nil
}

// Refresh re-reads configuration, invalidates all cached state, and starts
// a fresh scan in the background. The return value reports whether the
// configuration changed, not whether the scan succeeded; callers that need
// the new list synchronously should Invalidate and Locate instead.
func (l *Locator) Refresh(ctx context.Context) bool {
	changed := l.RefreshConfig()
	_ = l.Invalidate()
	go func() {
		_, _ = l.Locate(ctx)
	}()
	return changed
}

// nopStore is the CacheStore used when persistence is disabled at
// construction time.
type nopStore struct{}

func (nopStore) Load(string) (DirList, bool, error) { return nil, false, nil }

func (nopStore) Save(string, DirList) error { return nil }

func (nopStore) Delete(string) error { return nil }
