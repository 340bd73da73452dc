package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blackwell-systems/projscout/internal/locator"
	"github.com/blackwell-systems/projscout/internal/variants"
)

// stubSource serves one fixed config for every kind.
type stubSource struct {
	cfg locator.Config
}

func (s stubSource) LocatorConfig(string) locator.Config { return s.cfg }

// makeGitProject creates a directory with a .git/config marker so the git
// variant recognizes it.
func makeGitProject(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Join(path, ".git"), 0o755); err != nil {
		t.Fatalf("creating repo dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(path, ".git", "config"), []byte("[core]\n"), 0o644); err != nil {
		t.Fatalf("writing git config: %v", err)
	}
	return path
}

func TestSnapshot_LocatesProjects(t *testing.T) {
	base := t.TempDir()
	makeGitProject(t, base, "alpha")
	makeGitProject(t, base, "beta")

	src := stubSource{cfg: locator.Config{BaseFolders: []string{base}, MaxDepth: -1}}
	w := New([]locator.Variant{variants.Git{}}, src, time.Minute, nil)

	state := w.Snapshot(context.Background())

	if len(state.Projects["git"]) != 2 {
		t.Errorf("expected 2 git projects, got %d", len(state.Projects["git"]))
	}
	if state.Total != 2 {
		t.Errorf("expected total 2, got %d", state.Total)
	}
	if msg := state.Errors["git"]; msg != "" {
		t.Errorf("unexpected scan error: %s", msg)
	}
}

func TestCheck_DetectsNewProject(t *testing.T) {
	base := t.TempDir()
	makeGitProject(t, base, "alpha")

	src := stubSource{cfg: locator.Config{BaseFolders: []string{base}, MaxDepth: -1}}
	w := New([]locator.Variant{variants.Git{}}, src, time.Minute, nil)

	ctx := context.Background()
	w.Prime(ctx)

	makeGitProject(t, base, "beta")

	alerts := w.Check(ctx)

	found := false
	for _, a := range alerts {
		if a.Level == "info" && a.Title == "New git project: beta" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected alert for new project beta, got %+v", alerts)
	}
}

func TestCheck_SuppressesRepeatedAlerts(t *testing.T) {
	// A regular file as base folder makes every walk fail the same way,
	// which is exactly the situation the alert dedup exists for.
	dir := t.TempDir()
	notADir := filepath.Join(dir, "file")
	if err := os.WriteFile(notADir, []byte("x"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	src := stubSource{cfg: locator.Config{BaseFolders: []string{notADir}, MaxDepth: -1}}
	w := New([]locator.Variant{variants.Git{}}, src, time.Minute, nil)

	ctx := context.Background()
	w.Prime(ctx)

	first := w.Check(ctx)
	if len(first) != 1 || !strings.HasPrefix(first[0].Title, "Scan failed") {
		t.Fatalf("expected one scan-failed alert, got %+v", first)
	}

	second := w.Check(ctx)
	if len(second) != 0 {
		t.Errorf("expected repeated alert to be suppressed, got %+v", second)
	}
}

func TestCheck_AlertReturnsAfterChange(t *testing.T) {
	base := t.TempDir()
	src := stubSource{cfg: locator.Config{BaseFolders: []string{base}, MaxDepth: -1}}
	w := New([]locator.Variant{variants.Git{}}, src, time.Minute, nil)

	ctx := context.Background()
	w.Prime(ctx)

	makeGitProject(t, base, "alpha")
	first := w.Check(ctx)
	if len(first) != 1 {
		t.Fatalf("expected one new-project alert, got %+v", first)
	}

	// Steady state: no further alerts.
	if quiet := w.Check(ctx); len(quiet) != 0 {
		t.Fatalf("expected no alerts in steady state, got %+v", quiet)
	}

	// A second distinct change produces a distinct alert.
	makeGitProject(t, base, "beta")
	third := w.Check(ctx)
	if len(third) != 1 || third[0].Title != "New git project: beta" {
		t.Errorf("expected beta alert, got %+v", third)
	}
}

func TestRescanSource_ForcesCacheOff(t *testing.T) {
	src := rescanSource{stubSource{cfg: locator.Config{
		BaseFolders:  []string{"/code"},
		CacheEnabled: true,
	}}}

	cfg := src.LocatorConfig("git")
	if cfg.CacheEnabled {
		t.Error("expected caching forced off for watcher locators")
	}
	if len(cfg.BaseFolders) != 1 {
		t.Errorf("expected base folders passed through, got %+v", cfg.BaseFolders)
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	src := stubSource{cfg: locator.Config{}}
	w := New([]locator.Variant{variants.Git{}}, src, time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	cancel()

	select {
	case err := <-errCh:
		if err != context.Canceled {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
