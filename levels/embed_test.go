package levels

import "testing"

func TestLoadEmbeddedLevels(t *testing.T) {
	names := Names()
	if len(names) < 2 {
		t.Fatalf("expected at least two levels, got %v", names)
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			lvl, err := Load(name)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if lvl.Name != name {
				t.Fatalf("expected name %q, got %q", name, lvl.Name)
			}
			if len(lvl.Entities) == 0 {
				t.Fatalf("level has no entities")
			}
			for i, e := range lvl.Entities {
				if e.Type == "" {
					t.Fatalf("entity %d has no type", i)
				}
			}
		})
	}
}

func TestLoadMissingLevel(t *testing.T) {
	if _, err := Load("nowhere"); err == nil {
		t.Fatalf("expected error")
	}
}
