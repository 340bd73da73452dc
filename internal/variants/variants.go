// Package variants holds the built-in locator variants. Each variant
// recognizes one project kind by its on-disk marker and knows how to derive
// a display name for a matched directory.
package variants

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/projscout/internal/locator"
)

// Git recognizes git working copies. Both regular clones, where .git is a
// directory holding a config file, and worktrees or submodules, where .git
// is a pointer file, count.
type Git struct{}

func (Git) Kind() string { return "git" }

func (Git) DisplayName() string { return "Git" }

func (Git) IsRepoDir(path string) bool {
	if info, err := os.Stat(filepath.Join(path, ".git", "config")); err == nil && !info.IsDir() {
		return true
	}
	info, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil && !info.IsDir()
}

func (Git) DecideProjectName(path string) string { return filepath.Base(path) }

// Mercurial recognizes working copies by their .hg metadata directory.
type Mercurial struct{}

func (Mercurial) Kind() string { return "hg" }

func (Mercurial) DisplayName() string { return "Mercurial" }

func (Mercurial) IsRepoDir(path string) bool { return hasDir(path, ".hg") }

func (Mercurial) DecideProjectName(path string) string { return filepath.Base(path) }

// Subversion recognizes working copies by their .svn metadata directory.
type Subversion struct{}

func (Subversion) Kind() string { return "svn" }

func (Subversion) DisplayName() string { return "Subversion" }

func (Subversion) IsRepoDir(path string) bool { return hasDir(path, ".svn") }

func (Subversion) DecideProjectName(path string) string { return filepath.Base(path) }

// VSCode recognizes directories carrying per-folder editor settings in a
// .vscode directory. A .vscode/projectManager.json file with a "name" field
// overrides the directory-derived display name.
type VSCode struct{}

func (VSCode) Kind() string { return "vscode" }

func (VSCode) DisplayName() string { return "VS Code" }

func (VSCode) IsRepoDir(path string) bool { return hasDir(path, ".vscode") }

func (VSCode) DecideProjectName(path string) string {
	data, err := os.ReadFile(filepath.Join(path, ".vscode", "projectManager.json"))
	if err == nil {
		var meta struct {
			Name string `json:"name"`
		}
		if json.Unmarshal(data, &meta) == nil && meta.Name != "" {
			return meta.Name
		}
	}
	return filepath.Base(path)
}

// Any recognizes every directory it is shown. Useful for treating each
// immediate child of a base folder as a project by pairing it with a
// maxDepth of 1.
type Any struct{}

func (Any) Kind() string { return "any" }

func (Any) DisplayName() string { return "Any Folder" }

func (Any) IsRepoDir(path string) bool { return true }

func (Any) DecideProjectName(path string) string { return filepath.Base(path) }

// All returns the built-in variants in presentation order.
func All() []locator.Variant {
	return []locator.Variant{Git{}, Mercurial{}, Subversion{}, VSCode{}, Any{}}
}

// ByKind returns the built-in variant with the given kind identifier.
func ByKind(kind string) (locator.Variant, bool) {
	for _, v := range All() {
		if v.Kind() == kind {
			return v, true
		}
	}
	return nil, false
}

func hasDir(path, name string) bool {
	info, err := os.Stat(filepath.Join(path, name))
	return err == nil && info.IsDir()
}
