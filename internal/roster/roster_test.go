package roster

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/store"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "members.yaml", `
members:
  - name: Alice
    phone: "+15550001"
  - name: Bob
    phone: "+15550002"
`)
	members, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(members) != 2 || members[0].Name != "Alice" || members[1].Phone != "+15550002" {
		t.Fatalf("members: %+v", members)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"empty", "members: []", "no members"},
		{"missing name", "members:\n  - phone: \"+1\"", "no name"},
		{"missing phone", "members:\n  - name: Alice", "no phone"},
		{"duplicate", "members:\n  - {name: Alice, phone: \"+1\"}\n  - {name: Alice, phone: \"+2\"}", "duplicate"},
		{"not yaml", "{{{{", "parse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, "members.yaml", tc.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("got %v, want error containing %q", err, tc.wantErr)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file must error")
	}
}

func TestSync(t *testing.T) {
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	path := writeFile(t, "members.yaml", "members:\n  - {name: Alice, phone: \"+1\"}\n  - {name: Bob, phone: \"+2\"}")
	if err := Sync(context.Background(), st, path); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	members, err := st.Roster(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 2 || members[0].Name != "Alice" {
		t.Fatalf("stored roster: %+v", members)
	}
}

func TestWatchPicksUpEdits(t *testing.T) {
	st, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	path := writeFile(t, "members.yaml", "members:\n  - {name: Alice, phone: \"+1\"}")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := Sync(ctx, st, path); err != nil {
		t.Fatal(err)
	}

	done := make(chan error, 1)
	go func() { done <- Watch(ctx, st, path) }()

	// Give the watcher time to register before editing the file.
	time.Sleep(100 * time.Millisecond)
	content := "members:\n  - {name: Alice, phone: \"+1\"}\n  - {name: Carol, phone: \"+3\"}"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		members, err := st.Roster(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(members) == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("watcher never synced edit, roster: %+v", members)
		case <-time.After(20 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Watch returned %v, want context.Canceled", err)
	}
}
