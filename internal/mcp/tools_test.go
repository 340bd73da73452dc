package mcp

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/projscout/internal/locator"
	"github.com/blackwell-systems/projscout/internal/variants"
)

// staticSource returns the same config for every kind.
type staticSource struct {
	cfg locator.Config
}

func (s staticSource) LocatorConfig(kind string) locator.Config { return s.cfg }

// makeGitProject creates dir/name/.git/config so the git variant matches it.
func makeGitProject(t *testing.T, dir, name string) string {
	t.Helper()
	project := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Join(project, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(project, ".git", "config"), []byte("[core]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return project
}

// newProjectServer builds a Server over one git locator rooted at a temp
// base folder holding a single project. Returns the server and the base.
func newProjectServer(t *testing.T) (*Server, string) {
	t.Helper()
	base := t.TempDir()
	makeGitProject(t, base, "alpha")

	src := staticSource{locator.Config{
		BaseFolders:  []string{base},
		MaxDepth:     -1,
		CacheEnabled: true,
	}}
	loc := locator.New(variants.Git{}, src, nil, nil)
	return NewServer([]*locator.Locator{loc}), base
}

func TestHandleLocateProjects(t *testing.T) {
	s, _ := newProjectServer(t)

	raw, err := s.handleLocateProjects(json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("locate_projects: %v", err)
	}
	result, ok := raw.(LocateResult)
	if !ok {
		t.Fatalf("expected LocateResult, got %T", raw)
	}
	if result.Count != 1 {
		t.Fatalf("expected 1 project, got %d", result.Count)
	}
	if result.Projects[0].Name != "alpha" || result.Projects[0].Kind != "git" {
		t.Errorf("unexpected entry: %+v", result.Projects[0])
	}
}

func TestHandleLocateProjects_UnknownKind(t *testing.T) {
	s, _ := newProjectServer(t)

	if _, err := s.handleLocateProjects(json.RawMessage(`{"kind":"bzr"}`)); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestHandleProjectExists(t *testing.T) {
	s, base := newProjectServer(t)

	args, _ := json.Marshal(map[string]string{"path": filepath.Join(base, "alpha")})
	raw, err := s.handleProjectExists(args)
	if err != nil {
		t.Fatalf("project_exists: %v", err)
	}
	result := raw.(ExistsResult)
	if !result.Exists {
		t.Fatal("expected project to exist")
	}
	if result.Kind != "git" || result.Name != "alpha" {
		t.Errorf("unexpected result: %+v", result)
	}

	args, _ = json.Marshal(map[string]string{"path": filepath.Join(base, "missing")})
	raw, err = s.handleProjectExists(args)
	if err != nil {
		t.Fatalf("project_exists: %v", err)
	}
	if raw.(ExistsResult).Exists {
		t.Error("expected missing project to report exists=false")
	}
}

func TestHandleProjectExists_RequiresPath(t *testing.T) {
	s, _ := newProjectServer(t)

	if _, err := s.handleProjectExists(json.RawMessage(`{}`)); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestHandleRefreshProjects(t *testing.T) {
	s, base := newProjectServer(t)

	// First locate sees one project.
	if _, err := s.handleLocateProjects(json.RawMessage(`{}`)); err != nil {
		t.Fatalf("locate_projects: %v", err)
	}

	// A project added after the scan is invisible to plain locate, which
	// reuses the tracked list.
	makeGitProject(t, base, "beta")
	raw, err := s.handleLocateProjects(json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("locate_projects: %v", err)
	}
	if got := raw.(LocateResult).Count; got != 1 {
		t.Fatalf("expected cached count 1, got %d", got)
	}

	// Refresh drops the tracked list and rescans.
	raw, err = s.handleRefreshProjects(json.RawMessage(`{"kind":"git"}`))
	if err != nil {
		t.Fatalf("refresh_projects: %v", err)
	}
	result := raw.(RefreshResult)
	if result.ProjectsFound["git"] != 2 {
		t.Errorf("expected 2 projects after refresh, got %d", result.ProjectsFound["git"])
	}
}

func TestHandleListKinds(t *testing.T) {
	s, base := newProjectServer(t)

	raw, err := s.handleListKinds(json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("list_kinds: %v", err)
	}
	result := raw.(KindsResult)
	if len(result.Kinds) != 1 {
		t.Fatalf("expected 1 kind, got %d", len(result.Kinds))
	}
	entry := result.Kinds[0]
	if entry.Kind != "git" || entry.DisplayName != "Git" {
		t.Errorf("unexpected kind entry: %+v", entry)
	}
	if len(entry.BaseFolders) != 1 || entry.BaseFolders[0] != base {
		t.Errorf("unexpected base folders: %v", entry.BaseFolders)
	}
}
