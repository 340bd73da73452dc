package watcher

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/projscout/internal/locator"
)

func makeState() *WatchState {
	return &WatchState{
		Projects: make(map[string]locator.DirList),
		Errors:   make(map[string]string),
	}
}

func proj(path, name string) locator.DirInfo {
	return locator.DirInfo{FullPath: path, Name: name}
}

func TestCompare_NoChanges(t *testing.T) {
	prev := makeState()
	prev.Projects["git"] = locator.DirList{proj("/code/alpha", "alpha")}

	curr := makeState()
	curr.Projects["git"] = locator.DirList{proj("/code/alpha", "alpha")}

	alerts := Compare(prev, curr)
	if len(alerts) != 0 {
		t.Errorf("expected 0 alerts for identical states, got %d", len(alerts))
		for _, a := range alerts {
			t.Logf("  [%s] %s: %s", a.Level, a.Title, a.Message)
		}
	}
}

func TestCompare_EmptyStates(t *testing.T) {
	alerts := Compare(makeState(), makeState())
	if len(alerts) != 0 {
		t.Errorf("expected 0 alerts for empty states, got %d", len(alerts))
	}
}

func TestCompare_NewProject(t *testing.T) {
	prev := makeState()
	prev.Projects["git"] = locator.DirList{proj("/code/alpha", "alpha")}

	curr := makeState()
	curr.Projects["git"] = locator.DirList{
		proj("/code/alpha", "alpha"),
		proj("/code/beta", "beta"),
	}

	alerts := Compare(prev, curr)

	found := false
	for _, a := range alerts {
		if a.Level == "info" && a.Title == "New git project: beta" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected info alert for new project beta, got %+v", alerts)
	}
}

func TestCompare_ProjectRemoved(t *testing.T) {
	prev := makeState()
	prev.Projects["git"] = locator.DirList{
		proj("/code/alpha", "alpha"),
		proj("/code/beta", "beta"),
	}

	curr := makeState()
	curr.Projects["git"] = locator.DirList{proj("/code/alpha", "alpha")}

	alerts := Compare(prev, curr)

	found := false
	for _, a := range alerts {
		if a.Level == "warning" && a.Title == "Project removed: beta" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected warning alert for removed project beta, got %+v", alerts)
	}
}

func TestCompare_ManyNewProjectsCollapse(t *testing.T) {
	prev := makeState()
	prev.Projects["git"] = locator.DirList{}

	curr := makeState()
	curr.Projects["git"] = locator.DirList{
		proj("/code/a", "a"),
		proj("/code/b", "b"),
		proj("/code/c", "c"),
		proj("/code/d", "d"),
		proj("/code/e", "e"),
	}

	alerts := Compare(prev, curr)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 collapsed alert, got %d: %+v", len(alerts), alerts)
	}
	if alerts[0].Title != "5 new git projects" {
		t.Errorf("unexpected title %q", alerts[0].Title)
	}
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		if !strings.Contains(alerts[0].Message, name) {
			t.Errorf("expected message to list %q, got %q", name, alerts[0].Message)
		}
	}
}

func TestCompare_ScanFailedSkipsRemovals(t *testing.T) {
	prev := makeState()
	prev.Projects["git"] = locator.DirList{
		proj("/code/alpha", "alpha"),
		proj("/code/beta", "beta"),
	}

	// The failed scan produced a truncated list; the missing projects must
	// not be reported as removed.
	curr := makeState()
	curr.Projects["git"] = locator.DirList{proj("/code/alpha", "alpha")}
	curr.Errors["git"] = "reading /code: permission denied"

	alerts := Compare(prev, curr)

	if len(alerts) != 1 {
		t.Fatalf("expected only the scan-failed alert, got %d: %+v", len(alerts), alerts)
	}
	a := alerts[0]
	if a.Level != "warning" || a.Title != "Scan failed: git" {
		t.Errorf("unexpected alert %+v", a)
	}
	if !strings.Contains(a.Message, "permission denied") {
		t.Errorf("expected scan error in message, got %q", a.Message)
	}
}

func TestCompare_ScanRecovered(t *testing.T) {
	prev := makeState()
	prev.Errors["git"] = "reading /code: permission denied"

	curr := makeState()
	curr.Projects["git"] = locator.DirList{
		proj("/code/alpha", "alpha"),
		proj("/code/beta", "beta"),
	}

	alerts := Compare(prev, curr)

	found := false
	for _, a := range alerts {
		if a.Level == "info" && a.Title == "Scan recovered: git" {
			found = true
			if !strings.Contains(a.Message, "2 projects") {
				t.Errorf("expected project count in message, got %q", a.Message)
			}
		}
	}
	if !found {
		t.Errorf("expected scan-recovered alert, got %+v", alerts)
	}

	// The projects found by the recovering scan are new relative to the
	// empty previous list, so info alerts for them are expected too.
	newCount := 0
	for _, a := range alerts {
		if strings.HasPrefix(a.Title, "New git project:") {
			newCount++
		}
	}
	if newCount != 2 {
		t.Errorf("expected 2 new-project alerts alongside recovery, got %d", newCount)
	}
}

func TestDiffProjects(t *testing.T) {
	a := locator.DirList{
		proj("/code/alpha", "alpha"),
		proj("/code/beta", "beta"),
	}
	b := locator.DirList{proj("/code/beta", "beta")}

	missing := diffProjects(a, b)
	if len(missing) != 1 || missing[0].Name != "alpha" {
		t.Errorf("expected alpha missing, got %+v", missing)
	}

	if got := diffProjects(b, a); len(got) != 0 {
		t.Errorf("expected no missing entries, got %+v", got)
	}
}
