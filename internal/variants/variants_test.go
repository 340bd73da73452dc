package variants

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGit_IsRepoDir(t *testing.T) {
	t.Run("regular clone", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, ".git", "config"), []byte("[core]\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if !(Git{}).IsRepoDir(dir) {
			t.Error("expected a clone with .git/config recognized")
		}
	})

	t.Run("worktree pointer file", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ".git"), []byte("gitdir: /elsewhere\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if !(Git{}).IsRepoDir(dir) {
			t.Error("expected a .git pointer file recognized")
		}
	})

	t.Run("bare .git directory without config", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if (Git{}).IsRepoDir(dir) {
			t.Error("expected a .git directory without config rejected")
		}
	})

	t.Run("plain directory", func(t *testing.T) {
		if (Git{}).IsRepoDir(t.TempDir()) {
			t.Error("expected a plain directory rejected")
		}
	})
}

func TestMarkerDirVariants(t *testing.T) {
	tests := []struct {
		name    string
		variant interface {
			Kind() string
			IsRepoDir(string) bool
		}
		marker string
	}{
		{"mercurial", Mercurial{}, ".hg"},
		{"subversion", Subversion{}, ".svn"},
		{"vscode", VSCode{}, ".vscode"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if tc.variant.IsRepoDir(dir) {
				t.Error("expected rejection without the marker")
			}

			if err := os.MkdirAll(filepath.Join(dir, tc.marker), 0o755); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			if !tc.variant.IsRepoDir(dir) {
				t.Errorf("expected recognition with %s present", tc.marker)
			}

			// The marker must be a directory, not a file.
			fileDir := t.TempDir()
			if err := os.WriteFile(filepath.Join(fileDir, tc.marker), nil, 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if tc.variant.IsRepoDir(fileDir) {
				t.Errorf("expected a %s file rejected", tc.marker)
			}
		})
	}
}

func TestAny_RecognizesEverything(t *testing.T) {
	if !(Any{}).IsRepoDir(t.TempDir()) {
		t.Error("expected any directory recognized")
	}
}

func TestVSCode_DecideProjectName(t *testing.T) {
	t.Run("name from projectManager.json", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "checkout")
		if err := os.MkdirAll(filepath.Join(dir, ".vscode"), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		meta := `{"name": "My Project"}`
		if err := os.WriteFile(filepath.Join(dir, ".vscode", "projectManager.json"), []byte(meta), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if got := (VSCode{}).DecideProjectName(dir); got != "My Project" {
			t.Errorf("name = %q, want %q", got, "My Project")
		}
	})

	t.Run("falls back to directory name", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "checkout")
		if err := os.MkdirAll(filepath.Join(dir, ".vscode"), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if got := (VSCode{}).DecideProjectName(dir); got != "checkout" {
			t.Errorf("name = %q, want %q", got, "checkout")
		}
	})

	t.Run("invalid metadata falls back", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "checkout")
		if err := os.MkdirAll(filepath.Join(dir, ".vscode"), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, ".vscode", "projectManager.json"), []byte("not json"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if got := (VSCode{}).DecideProjectName(dir); got != "checkout" {
			t.Errorf("name = %q, want %q", got, "checkout")
		}
	})
}

func TestByKind(t *testing.T) {
	for _, v := range All() {
		got, ok := ByKind(v.Kind())
		if !ok {
			t.Errorf("ByKind(%q) not found", v.Kind())
			continue
		}
		if got.Kind() != v.Kind() {
			t.Errorf("ByKind(%q) returned %q", v.Kind(), got.Kind())
		}
	}

	if _, ok := ByKind("cvs"); ok {
		t.Error("expected unknown kind not found")
	}
}

func TestAll_KindsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, v := range All() {
		if seen[v.Kind()] {
			t.Errorf("duplicate kind %q", v.Kind())
		}
		seen[v.Kind()] = true
		if v.DisplayName() == "" {
			t.Errorf("kind %q has no display name", v.Kind())
		}
	}
}
