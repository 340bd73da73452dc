package app

import (
	"testing"
)

func TestSubcommands_Registered(t *testing.T) {
	want := []string{"locate", "refresh", "exists <path>", "kinds", "pick", "history", "watch", "doctor", "mcp"}

	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Use] = true
	}

	for _, use := range want {
		if !registered[use] {
			t.Errorf("subcommand %q not registered on rootCmd", use)
		}
	}
}

func TestKindNames(t *testing.T) {
	names := kindNames()
	if len(names) == 0 {
		t.Fatal("expected registered kind names")
	}
	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate kind name %q", n)
		}
		seen[n] = true
	}
	if !seen["git"] {
		t.Error("expected git among registered kinds")
	}
}
