package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRootCmd_hasSubcommands(t *testing.T) {
	root := NewRootCmd("test")
	if root == nil {
		t.Fatal("NewRootCmd returned nil")
	}
	cmds := root.Commands()
	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "stop", "status", "tick", "report", "schedule", "roster"} {
		if !names[want] {
			t.Errorf("expected subcommand %q", want)
		}
	}
}

func TestNewRootCmd_versionFlag(t *testing.T) {
	root := NewRootCmd("1.2.3")
	if root.Version != "1.2.3" {
		t.Errorf("Version: got %q", root.Version)
	}
}

func TestNewRootCmd_hasHomeFlag(t *testing.T) {
	root := NewRootCmd("")
	f := root.PersistentFlags().Lookup("home")
	if f == nil {
		t.Fatal("expected --home persistent flag")
	}
}

func TestRosterImportAndShow(t *testing.T) {
	home := t.TempDir()
	rosterFile := filepath.Join(t.TempDir(), "members.yaml")
	content := "members:\n  - {name: Alice, phone: \"+1\"}\n  - {name: Bob, phone: \"+2\"}\n"
	if err := os.WriteFile(rosterFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	root := NewRootCmd("")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--home", home, "roster", "import", rosterFile})
	if err := root.Execute(); err != nil {
		t.Fatalf("roster import: %v", err)
	}
	if !strings.Contains(buf.String(), "Imported 2 members") {
		t.Fatalf("import output: %q", buf.String())
	}

	root = NewRootCmd("")
	buf.Reset()
	root.SetOut(&buf)
	root.SetArgs([]string{"--home", home, "roster", "show"})
	if err := root.Execute(); err != nil {
		t.Fatalf("roster show: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Alice") || !strings.Contains(out, "Bob") {
		t.Fatalf("show output: %q", out)
	}
	if !strings.Contains(out, "* 1. Alice") {
		t.Fatalf("pointer marker missing: %q", out)
	}
}

func TestRosterShow_empty(t *testing.T) {
	root := NewRootCmd("")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--home", t.TempDir(), "roster", "show"})
	if err := root.Execute(); err != nil {
		t.Fatalf("roster show: %v", err)
	}
	if !strings.Contains(buf.String(), "No roster imported yet") {
		t.Fatalf("output: %q", buf.String())
	}
}

func TestTick_advancesAndPrints(t *testing.T) {
	home := t.TempDir()
	rosterFile := filepath.Join(t.TempDir(), "members.yaml")
	content := "members:\n  - {name: Alice, phone: \"+1\"}\n  - {name: Bob, phone: \"+2\"}\n  - {name: Carol, phone: \"+3\"}\n"
	if err := os.WriteFile(rosterFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	root := NewRootCmd("")
	root.SetOut(new(bytes.Buffer))
	root.SetArgs([]string{"--home", home, "roster", "import", rosterFile})
	if err := root.Execute(); err != nil {
		t.Fatalf("roster import: %v", err)
	}

	root = NewRootCmd("")
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--home", home, "tick"})
	if err := root.Execute(); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if !strings.Contains(buf.String(), "Bob is on duty") {
		t.Fatalf("tick output: %q", buf.String())
	}
}

func TestSchedule_daemonNotRunning(t *testing.T) {
	root := NewRootCmd("")
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"--home", t.TempDir(), "schedule"})
	if err := root.Execute(); err == nil {
		t.Fatal("schedule without a daemon must error")
	}
}
