package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func waitForEvent(t *testing.T, w *Watcher, timeout time.Duration) (FileEvent, bool) {
	t.Helper()
	select {
	case event := <-w.Events():
		return event, true
	case <-time.After(timeout):
		return FileEvent{}, false
	}
}

func TestWatcherEmitsAcceptedCreate(t *testing.T) {
	root := t.TempDir()

	w, err := New(root, func(string) bool { return true })
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	path := filepath.Join(root, "a.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	event, ok := waitForEvent(t, w, 3*time.Second)
	if !ok {
		t.Fatal("expected a create event")
	}
	if event.Path != path {
		t.Errorf("expected path %s, got %s", path, event.Path)
	}
	if event.Op != FileCreated {
		t.Errorf("expected created op, got %s", event.Op)
	}
}

func TestWatcherDropsRejectedPaths(t *testing.T) {
	root := t.TempDir()

	w, err := New(root, func(path string) bool {
		return !strings.HasSuffix(path, ".tmp")
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	rejected := filepath.Join(root, "scratch.tmp")
	if err := os.WriteFile(rejected, []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	accepted := filepath.Join(root, "kept.md")
	if err := os.WriteFile(accepted, []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// Only the accepted path may surface.
	event, ok := waitForEvent(t, w, 3*time.Second)
	if !ok {
		t.Fatal("expected an event for the accepted file")
	}
	if event.Path != accepted {
		t.Errorf("rejected path leaked through: %s", event.Path)
	}
}

func TestWatcherRemove(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	w, err := New(root, func(string) bool { return true })
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer w.Close()

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	event, ok := waitForEvent(t, w, 3*time.Second)
	if !ok {
		t.Fatal("expected a remove event")
	}
	if event.Op != FileRemoved {
		t.Errorf("expected removed op, got %s", event.Op)
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := New(t.TempDir(), func(string) bool { return true })
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}

func TestFileOpString(t *testing.T) {
	cases := map[FileOp]string{
		FileCreated: "created",
		FileWritten: "written",
		FileRemoved: "removed",
		FileOp(99):  "unknown",
	}
	for op, want := range cases {
		if op.String() != want {
			t.Errorf("FileOp(%d).String() = %s, want %s", op, op.String(), want)
		}
	}
}
