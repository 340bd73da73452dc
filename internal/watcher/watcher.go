// Package watcher provides background monitoring of the configured project
// kinds, re-scanning at a regular interval and emitting alerts when projects
// appear, vanish, or a scan starts failing.
package watcher

import (
	"context"
	"time"

	"github.com/blackwell-systems/projscout/internal/locator"
)

// WatchState captures a point-in-time view of every watched kind.
type WatchState struct {
	Timestamp time.Time
	Projects  map[string]locator.DirList // kind -> located projects
	Errors    map[string]string          // kind -> scan error, if any
	Total     int
}

// Alert represents a notable event detected by the watcher.
type Alert struct {
	Level   string // "info", "warning"
	Title   string
	Message string
	Time    time.Time
}

// Watcher re-scans a set of project kinds at a regular interval and emits
// alerts when the located project sets change.
type Watcher struct {
	locators      []*locator.Locator
	interval      time.Duration
	previous      *WatchState
	alertFn       func(Alert)     // callback for emitting alerts
	lastAlertKeys map[string]bool // dedup: suppress repeated identical alerts
}

// New creates a Watcher over the given variants. Each variant gets its own
// locator with caching forced off, so every check performs a real walk and
// observes filesystem changes made since the last one.
func New(vs []locator.Variant, source locator.ConfigSource, interval time.Duration, alertFn func(Alert)) *Watcher {
	locators := make([]*locator.Locator, 0, len(vs))
	for _, v := range vs {
		locators = append(locators, locator.New(v, rescanSource{source}, nil, nil))
	}
	return &Watcher{
		locators:      locators,
		interval:      interval,
		alertFn:       alertFn,
		lastAlertKeys: make(map[string]bool),
	}
}

// Prime takes the initial snapshot and installs it as the comparison
// baseline, returning it so hosts can display starting counts. Run primes
// itself when the caller has not.
func (w *Watcher) Prime(ctx context.Context) *WatchState {
	w.previous = w.Snapshot(ctx)
	return w.previous
}

// Run starts the watch loop. It takes an initial snapshot unless one was
// already primed, then checks at every interval. Blocks until ctx is
// cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w.previous == nil {
		w.Prime(ctx)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			alerts := w.Check(ctx)
			for _, a := range alerts {
				if w.alertFn != nil {
					w.alertFn(a)
				}
			}
		}
	}
}

// Check performs a single check cycle: takes a new snapshot, compares against
// the previous state, updates the previous state, and returns any alerts.
// Identical alerts are suppressed until the underlying data changes.
func (w *Watcher) Check(ctx context.Context) []Alert {
	curr := w.Snapshot(ctx)

	var raw []Alert
	if w.previous != nil {
		raw = Compare(w.previous, curr)
	}

	// Deduplicate: suppress alerts with the same title+message as last cycle.
	currentKeys := make(map[string]bool, len(raw))
	var alerts []Alert
	for _, a := range raw {
		key := a.Level + ":" + a.Title + ":" + a.Message
		currentKeys[key] = true
		if !w.lastAlertKeys[key] {
			alerts = append(alerts, a)
		}
	}
	w.lastAlertKeys = currentKeys

	w.previous = curr
	return alerts
}

// Snapshot walks every watched kind and records the located projects. Config
// is re-read first, so base folder or ignore edits take effect on the next
// check. A kind whose scan fails keeps its partial results and records the
// error text.
func (w *Watcher) Snapshot(ctx context.Context) *WatchState {
	state := &WatchState{
		Timestamp: time.Now(),
		Projects:  make(map[string]locator.DirList, len(w.locators)),
		Errors:    make(map[string]string, len(w.locators)),
	}

	for _, loc := range w.locators {
		loc.RefreshConfig()
		dirs, err := loc.Locate(ctx)
		state.Projects[loc.Kind()] = dirs
		state.Total += len(dirs)
		if err != nil {
			state.Errors[loc.Kind()] = err.Error()
		}
	}
	return state
}

// rescanSource wraps a ConfigSource with caching forced off, so locators
// built from it never short-circuit on a previous result.
type rescanSource struct {
	inner locator.ConfigSource
}

func (s rescanSource) LocatorConfig(kind string) locator.Config {
	cfg := s.inner.LocatorConfig(kind)
	cfg.CacheEnabled = false
	return cfg
}
