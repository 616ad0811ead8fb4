package roster

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/internal/store"
)

// Sync loads path and writes the roster into the store.
func Sync(ctx context.Context, st store.Store, path string) error {
	members, err := Load(path)
	if err != nil {
		return err
	}
	if err := st.PutRoster(ctx, members); err != nil {
		return err
	}
	slog.Info("roster synced", "path", path, "members", len(members))
	return nil
}

// Watch re-syncs the roster whenever its file changes, until ctx is done.
// A bad edit logs and keeps the last good roster in the store; editors that
// replace the file (rename + create) are handled by watching the directory.
func Watch(ctx context.Context, st store.Store, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := Sync(ctx, st, path); err != nil {
				slog.Error("roster re-sync failed, keeping previous roster", "path", path, "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("roster watcher error", "err", err)
		}
	}
}
