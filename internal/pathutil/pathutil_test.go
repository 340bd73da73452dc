package pathutil

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestExpand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"bare tilde", "~", home},
		{"tilde prefix", "~/code", filepath.Join(home, "code")},
		{"nested", "~/code/deep/project", filepath.Join(home, "code", "deep", "project")},
		{"absolute unchanged", "/var/tmp", "/var/tmp"},
		{"relative unchanged", "code/project", "code/project"},
		{"tilde in the middle unchanged", "/data/~backup", "/data/~backup"},
		{"tilde-named sibling unchanged", "~user/code", "~user/code"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Expand(tc.input); got != tc.expect {
				t.Errorf("Expand(%q) = %q, want %q", tc.input, got, tc.expect)
			}
		})
	}
}

func TestCompact(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"home itself", home, "~"},
		{"under home", filepath.Join(home, "code"), "~/code"},
		{"deep under home", filepath.Join(home, "a", "b"), "~/a/b"},
		{"outside home unchanged", "/var/tmp", "/var/tmp"},
		{"home as prefix of sibling unchanged", home + "2/code", home + "2/code"},
		{"empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Compact(tc.input); got != tc.expect {
				t.Errorf("Compact(%q) = %q, want %q", tc.input, got, tc.expect)
			}
		})
	}
}

func TestExpandCompactRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	for _, p := range []string{"~", "~/code", "~/a/b/c"} {
		if got := Compact(Expand(p)); got != p {
			t.Errorf("Compact(Expand(%q)) = %q", p, got)
		}
	}
}

func TestSettingsDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if runtime.GOOS == "linux" {
		t.Setenv("XDG_CONFIG_HOME", "")
		want := filepath.Join(home, ".config", "Code", "User")
		if got := SettingsDir("Code"); got != want {
			t.Errorf("SettingsDir = %q, want %q", got, want)
		}

		custom := filepath.Join(home, "xdg")
		t.Setenv("XDG_CONFIG_HOME", custom)
		want = filepath.Join(custom, "Code", "User")
		if got := SettingsDir("Code"); got != want {
			t.Errorf("SettingsDir with XDG_CONFIG_HOME = %q, want %q", got, want)
		}
	}

	// The channel name always lands between the data dir and "User".
	got := SettingsDir("projscout")
	if filepath.Base(got) != "User" {
		t.Errorf("expected a User leaf, got %q", got)
	}
	if filepath.Base(filepath.Dir(got)) != "projscout" {
		t.Errorf("expected the channel segment, got %q", got)
	}
}

func TestFallbackSettingsDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got := FallbackSettingsDir("Code")
	if runtime.GOOS != "linux" {
		if got != "" {
			t.Errorf("expected no fallback off Linux, got %q", got)
		}
		return
	}

	want := filepath.Join(home, ".config", "Code", "User")
	if got != want {
		t.Errorf("FallbackSettingsDir = %q, want %q", got, want)
	}

	// Unlike the primary location, the fallback ignores XDG_CONFIG_HOME.
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	if got := FallbackSettingsDir("Code"); got != want {
		t.Errorf("fallback moved with XDG_CONFIG_HOME: %q", got)
	}
}
