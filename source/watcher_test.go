package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()

	w, err := NewWatcher(dir, WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)

	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start watcher: %v", err)
	}
	t.Cleanup(func() { w.Stop() })

	// Give the watcher time to set up.
	time.Sleep(100 * time.Millisecond)
	return w
}

func TestWatcherNewFile(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	path := filepath.Join(dir, "sp1.txt")
	if err := os.WriteFile(path, []byte("Shrub to 2 m."), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	select {
	case event := <-w.Events():
		if event.Path != "sp1.txt" {
			t.Errorf("expected path sp1.txt, got %s", event.Path)
		}
		if event.AbsPath != path {
			t.Errorf("expected abs path %s, got %s", path, event.AbsPath)
		}
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for event")
	}
}

func TestWatcherIgnoresUnchangedContent(t *testing.T) {
	dir := t.TempDir()

	// Pre-existing files are hashed at startup, so rewriting the same
	// bytes must not produce an event.
	path := filepath.Join(dir, "sp1.txt")
	if err := os.WriteFile(path, []byte("Shrub to 2 m."), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	w := startWatcher(t, dir)

	if err := os.WriteFile(path, []byte("Shrub to 2 m."), 0o644); err != nil {
		t.Fatalf("failed to rewrite test file: %v", err)
	}

	select {
	case event := <-w.Events():
		t.Errorf("unexpected event for unchanged content: %+v", event)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	if err := os.WriteFile(filepath.Join(dir, "run.json"), []byte("{}"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	select {
	case event := <-w.Events():
		t.Errorf("unexpected event for unwatched extension: %+v", event)
	case <-time.After(300 * time.Millisecond):
	}
}
