// Package cache persists located project lists between sessions. Each
// variant kind gets one JSON file under the host settings directory, named
// projects_cache_<kind>.json, holding the DirList as a tab-indented array.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blackwell-systems/projscout/internal/locator"
	"github.com/blackwell-systems/projscout/internal/pathutil"
)

// Store reads and writes per-kind cache files in a settings directory.
// It implements locator.CacheStore.
type Store struct {
	dir      string
	fallback string
}

// NewStore returns a Store rooted at the settings directory for channel.
// On Linux the literal ~/.config location doubles as a read fallback when
// the primary directory is redirected elsewhere.
func NewStore(channel string) *Store {
	s := &Store{dir: pathutil.SettingsDir(channel)}
	if fb := pathutil.FallbackSettingsDir(channel); fb != "" && fb != s.dir {
		s.fallback = fb
	}
	return s
}

// NewStoreAt returns a Store rooted at an explicit directory, with no
// fallback location.
func NewStoreAt(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the primary directory cache files are written to.
func (s *Store) Dir() string { return s.dir }

// Path returns the cache file path for the given kind.
func (s *Store) Path(kind string) string {
	return filepath.Join(s.dir, "projects_cache_"+kind+".json")
}

// Load reads the cache file for kind. A missing file reports found=false
// with no error; a file that exists but cannot be read or decoded is an
// error.
func (s *Store) Load(kind string) (locator.DirList, bool, error) {
	path := s.Path(kind)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && s.fallback != "" {
		path = filepath.Join(s.fallback, "projects_cache_"+kind+".json")
		data, err = os.ReadFile(path)
	}
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache %s: %w", path, err)
	}

	var dirs locator.DirList
	if err := json.Unmarshal(data, &dirs); err != nil {
		return nil, false, fmt.Errorf("parsing cache %s: %w", path, err)
	}
	return dirs, true, nil
}

// Save writes the cache file for kind, creating the settings directory if
// needed. The file is written whole; there is no partial update.
func (s *Store) Save(kind string, dirs locator.DirList) error {
	if dirs == nil {
		dirs = locator.DirList{}
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	data, err := json.MarshalIndent(dirs, "", "\t")
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	if err := os.WriteFile(s.Path(kind), data, 0o644); err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	return nil
}

// Delete removes the cache file for kind from the primary and, when
// configured, the fallback location. A file that is already absent is not
// an error.
func (s *Store) Delete(kind string) error {
	if err := os.Remove(s.Path(kind)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing cache: %w", err)
	}
	if s.fallback != "" {
		path := filepath.Join(s.fallback, "projects_cache_"+kind+".json")
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing cache: %w", err)
		}
	}
	return nil
}
