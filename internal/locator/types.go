// Package locator discovers project directories beneath configured base
// folders. Each Locator pairs a Variant, which recognizes one project kind
// by its on-disk marker, with a configuration source and an optional
// persistent cache, and exposes locate, lookup, and refresh operations.
package locator

// DirInfo describes one discovered project directory.
type DirInfo struct {
	FullPath string `json:"fullPath"`
	Name     string `json:"name"`
}

// DirList is an ordered collection of discovered projects. Ordering follows
// the configured base folders, then discovery order within each walk.
// Duplicates are possible when base folders overlap.
type DirList []DirInfo

// Config is an immutable snapshot of the settings one Locator operates
// under. Snapshots are compared wholesale by RefreshConfig; mutating a
// snapshot after handing it to a Locator has no effect.
type Config struct {
	// BaseFolders are the roots to walk. Entries may use a leading ~.
	BaseFolders []string

	// IgnoredFolders lists base names whose subtrees are never descended
	// into. The named directory itself is still tested as a project.
	IgnoredFolders []string

	// MaxDepth bounds how many levels below a base folder the walk may
	// descend. Zero or negative means unlimited.
	MaxDepth int

	// CacheEnabled controls whether scan results persist between sessions.
	CacheEnabled bool
}

// Equal reports whether two snapshots are structurally identical, comparing
// each field against its counterpart.
func (c Config) Equal(o Config) bool {
	if c.MaxDepth != o.MaxDepth || c.CacheEnabled != o.CacheEnabled {
		return false
	}
	return equalStrings(c.BaseFolders, o.BaseFolders) &&
		equalStrings(c.IgnoredFolders, o.IgnoredFolders)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Variant supplies the kind-specific behavior a Locator is parameterized
// with: how to recognize a project directory and how to name it.
type Variant interface {
	// Kind returns the stable identifier used in config keys and cache
	// file names, e.g. "git".
	Kind() string

	// DisplayName returns the human-readable name for this kind.
	DisplayName() string

	// IsRepoDir reports whether the directory at path is a project of
	// this kind.
	IsRepoDir(path string) bool

	// DecideProjectName derives the display name for a matched project
	// directory, usually its base name.
	DecideProjectName(path string) string
}

// ConfigSource supplies per-kind configuration snapshots. Implementations
// re-read their backing settings on every call so that external edits are
// observed by RefreshConfig.
type ConfigSource interface {
	LocatorConfig(kind string) Config
}

// CacheStore persists located project lists between sessions, keyed by
// variant kind. Load reports found=false when no cache exists for the kind;
// a cache that exists but cannot be decoded is returned as an error.
type CacheStore interface {
	Load(kind string) (dirs DirList, found bool, err error)
	Save(kind string, dirs DirList) error
	Delete(kind string) error
}
