package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "breakout.yaml")
	other := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, DefaultYAML(), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	// Unrelated files in the same directory are ignored.
	if err := os.WriteFile(other, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, DefaultYAML(), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-w.Events:
		if got != w.Path() {
			t.Errorf("event for %q, expected %q", got, w.Path())
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breakout.yaml")
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first Close() failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}
