package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestIsResource(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"human/animation.cfg", true},
		{"human/ANIMATION.EVT", true},
		{"data/base.pk3", true},
		{"animset.yaml", false},
		{"notes.txt", false},
		{"animation", false},
	}

	for _, tt := range tests {
		if got := IsResource(tt.path); got != tt.want {
			t.Errorf("IsResource(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestWatcher_ReportsResourceChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := New(10*time.Millisecond, dir)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	table := filepath.Join(dir, "animation.cfg")
	if err := os.WriteFile(table, []byte("walk 0 1 10"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if name != table {
			t.Errorf("expected %s, got %s", table, name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	if _, err := New(0, filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestWatcher_CloseTwice(t *testing.T) {
	w, err := New(0, t.TempDir())
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	if w.debounce != DefaultDebounce {
		t.Errorf("expected default debounce, got %v", w.debounce)
	}

	if err := w.Close(); err != nil {
		t.Errorf("first close: %v", err)
	}
	w.Close()

	if _, ok := <-w.Events; ok {
		t.Error("expected events channel closed")
	}
}

func TestWatcher_RunReloads(t *testing.T) {
	dir := t.TempDir()
	w, err := New(10*time.Millisecond, dir)
	if err != nil {
		t.Fatalf("failed to create watcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan []string, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.Run(ctx, func(changed []string) {
			select {
			case reloaded <- changed:
			default:
			}
		})
	}()

	if err := os.WriteFile(filepath.Join(dir, "animation.evt"), []byte("human"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case changed := <-reloaded:
		if len(changed) == 0 {
			t.Error("expected changed paths")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
