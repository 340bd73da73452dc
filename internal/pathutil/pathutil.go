// Package pathutil provides home-directory expansion and compaction plus the
// platform settings-directory resolution used by the cache layer.
package pathutil

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Expand replaces a leading ~ with the user's home directory. Paths that do
// not start with ~ are returned unchanged, as is any path when the home
// directory cannot be resolved.
func Expand(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// Compact replaces the user's home-directory prefix with ~. The inverse of
// Expand for paths under the home directory; other paths are unchanged.
func Compact(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	prefix := home + string(os.PathSeparator)
	if strings.HasPrefix(path, prefix) {
		return "~" + string(os.PathSeparator) + path[len(prefix):]
	}
	return path
}

// SettingsDir returns the host settings directory for the given channel:
// the platform application-data directory joined with the channel name and
// "User", the layout VS Code-family hosts keep their settings files in.
func SettingsDir(channel string) string {
	return filepath.Join(appDataDir(), channel, "User")
}

// FallbackSettingsDir returns the literal ~/.config settings directory used
// as a secondary cache location on Linux, where the primary directory may be
// redirected through XDG_CONFIG_HOME. Returns "" on other platforms.
func FallbackSettingsDir(channel string) string {
	if runtime.GOOS != "linux" {
		return ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", channel, "User")
}

// appDataDir resolves the per-user application-data directory for the
// current platform.
func appDataDir() string {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("APPDATA"); dir != "" {
			return dir
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, "AppData", "Roaming")
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, "Library", "Application Support")
	default:
		if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
			return dir
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, ".config")
	}
}
