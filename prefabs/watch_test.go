package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRelevantEvents(t *testing.T) {
	cases := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"yaml write", fsnotify.Event{Name: "fx/frozen_in.yaml", Op: fsnotify.Write}, true},
		{"yml create", fsnotify.Event{Name: "fx/pulse.YML", Op: fsnotify.Create}, true},
		{"script remove", fsnotify.Event{Name: "fx/scripts/shimmer.tengo", Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: "fx/frozen_in.yaml", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "fx/notes.txt", Op: fsnotify.Write}, false},
		{"editor swap", fsnotify.Event{Name: "fx/.frozen_in.yaml.swp", Op: fsnotify.Write}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := relevant(c.event); got != c.want {
				t.Fatalf("relevant(%v) = %v, want %v", c.event, got, c.want)
			}
		})
	}
}

func TestWatcherDebouncesAndPolls(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if changed, err := w.Poll(); len(changed) != 0 || err != nil {
		t.Fatalf("expected an empty poll, got %v, %v", changed, err)
	}

	path := filepath.Join(dir, "effect.yaml")
	for i := 0; i < 2; i++ {
		if err := os.WriteFile(path, []byte("name: effect\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var changed []string
	deadline := time.Now().Add(2 * time.Second)
	for len(changed) == 0 && time.Now().Before(deadline) {
		got, err := w.Poll()
		if err != nil {
			t.Fatalf("poll: %v", err)
		}
		changed = append(changed, got...)
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(3 * Debounce)
	got, err := w.Poll()
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	changed = append(changed, got...)

	if len(changed) != 1 || changed[0] != path {
		t.Fatalf("expected one change for %s, got %v", path, changed)
	}
}
