package cache

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/projscout/internal/locator"
)

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	s := NewStoreAt(t.TempDir())
	dirs := locator.DirList{
		{FullPath: "/home/user/code/alpha", Name: "alpha"},
		{FullPath: "/home/user/code/beta", Name: "Beta Project"},
	}

	require.NoError(t, s.Save("git", dirs))

	got, found, err := s.Load("git")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, dirs, got)
}

func TestStore_FileLayout(t *testing.T) {
	dir := t.TempDir()
	s := NewStoreAt(dir)

	require.NoError(t, s.Save("git", locator.DirList{{FullPath: "/p", Name: "p"}}))

	path := filepath.Join(dir, "projects_cache_git.json")
	assert.Equal(t, path, s.Path("git"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Tab-indented JSON array, the layout Project Manager hosts write.
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "["), "expected a top-level array")
	assert.Contains(t, text, "\n\t{")
	assert.Contains(t, text, `"fullPath": "/p"`)
	assert.Contains(t, text, `"name": "p"`)
}

func TestStore_LoadMissing(t *testing.T) {
	s := NewStoreAt(t.TempDir())

	dirs, found, err := s.Load("git")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, dirs)
}

func TestStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	s := NewStoreAt(dir)
	require.NoError(t, os.WriteFile(s.Path("git"), []byte("{truncated"), 0o644))

	_, found, err := s.Load("git")
	require.Error(t, err)
	assert.False(t, found)
	assert.Contains(t, err.Error(), "parsing cache")
}

func TestStore_SaveNilWritesEmptyList(t *testing.T) {
	s := NewStoreAt(t.TempDir())
	require.NoError(t, s.Save("git", nil))

	got, found, err := s.Load("git")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestStore_SaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deep", "nested")
	s := NewStoreAt(dir)

	require.NoError(t, s.Save("git", locator.DirList{}))
	assert.FileExists(t, s.Path("git"))
}

func TestStore_Delete(t *testing.T) {
	s := NewStoreAt(t.TempDir())
	require.NoError(t, s.Save("git", locator.DirList{{FullPath: "/p", Name: "p"}}))

	require.NoError(t, s.Delete("git"))
	assert.NoFileExists(t, s.Path("git"))

	// Deleting again is not an error.
	require.NoError(t, s.Delete("git"))
}

func TestStore_KindsAreIndependent(t *testing.T) {
	s := NewStoreAt(t.TempDir())
	require.NoError(t, s.Save("git", locator.DirList{{FullPath: "/g", Name: "g"}}))
	require.NoError(t, s.Save("svn", locator.DirList{{FullPath: "/s", Name: "s"}}))

	require.NoError(t, s.Delete("git"))

	_, found, err := s.Load("git")
	require.NoError(t, err)
	assert.False(t, found)

	got, found, err := s.Load("svn")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "/s", got[0].FullPath)
}

func TestNewStore_FallbackRead(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("the ~/.config fallback only exists on Linux")
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))

	s := NewStore("Code")

	// A cache left at the literal ~/.config location is still readable
	// when XDG_CONFIG_HOME points the primary directory elsewhere.
	legacy := filepath.Join(home, ".config", "Code", "User")
	require.NoError(t, os.MkdirAll(legacy, 0o755))
	payload := []byte(`[{"fullPath": "/old/project", "name": "project"}]`)
	require.NoError(t, os.WriteFile(filepath.Join(legacy, "projects_cache_git.json"), payload, 0o644))

	got, found, err := s.Load("git")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "/old/project", got[0].FullPath)

	// Writes go to the primary location only.
	require.NoError(t, s.Save("git", locator.DirList{{FullPath: "/new", Name: "new"}}))
	assert.FileExists(t, filepath.Join(home, "xdg", "Code", "User", "projects_cache_git.json"))

	// Delete clears both locations.
	require.NoError(t, s.Delete("git"))
	assert.NoFileExists(t, s.Path("git"))
	assert.NoFileExists(t, filepath.Join(legacy, "projects_cache_git.json"))
}
