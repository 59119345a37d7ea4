package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommandWiring(t *testing.T) {
	root := NewRootCmd()

	want := map[string]bool{
		"daemonize": false,
		"run":       false,
		"status":    false,
		"top":       false,
	}
	hiddenSeen := 0
	for _, sub := range root.Commands() {
		name := sub.Name()
		if _, ok := want[name]; ok {
			want[name] = true
		}
		if sub.Hidden {
			hiddenSeen++
		}
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("subcommand %q not registered", name)
		}
	}
	if hiddenSeen != 2 {
		t.Fatalf("hidden worker commands = %d, want 2", hiddenSeen)
	}
}

func TestDaemonizeRequiresDeclaredProgram(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "bluepill.yaml")
	if err := os.WriteFile(manifest, []byte("programs:\n  web:\n    command: sleep 5\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	root := NewRootCmd()
	var stderr bytes.Buffer
	root.SetErr(&stderr)
	root.SetArgs([]string{"-f", manifest, "daemonize", "ghost"})

	err := root.Execute()
	if err == nil {
		t.Fatal("expected error for undeclared program")
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Fatalf("error %q does not name the program", err)
	}
}

func TestStatusRejectsNonPositivePID(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"status", "0"})
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))

	if err := root.Execute(); err == nil {
		t.Fatal("expected error for negative pid")
	}
}
