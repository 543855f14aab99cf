package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	cases := map[string]ChangeKind{
		"prefabs/player.yaml":         ChangePrefab,
		"levels/temple.YML":           ChangePrefab,
		"prefabs/scripts/enemy.tengo": ChangeScript,
		"README.md":                   0,
	}
	for path, want := range cases {
		if got := classify(path); got != want {
			t.Fatalf("classify(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	path := filepath.Join(dir, "enemy.yaml")
	if err := os.WriteFile(path, []byte("name: grux\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-w.Events:
		if c.Kind != ChangePrefab || filepath.Base(c.Path) != "enemy.yaml" {
			t.Fatalf("unexpected change %+v", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for change")
	}
}
