package save

import (
	"context"
	"errors"
	"testing"

	"github.com/sagivt1/Adventure-arcade-game/common"
)

func sampleRecord() Record {
	return Record{
		Health:     42,
		MaxHealth:  100,
		Stamina:    80,
		MaxStamina: 150,
		Coins:      3,
		Location:   common.Vec3{X: 10, Y: -4, Z: 92},
		Rotation:   common.Rotator{Yaw: 90},
		LevelName:  "temple",
		WeaponName: "sword",
	}
}

func TestStores(t *testing.T) {
	ctx := context.Background()
	backends := []string{BackendFile, BackendSQLite}

	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			store, err := Open(ctx, backend, t.TempDir())
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer store.Close()

			if _, err := store.Load(ctx, "missing"); !errors.Is(err, ErrSlotNotFound) {
				t.Fatalf("expected ErrSlotNotFound, got %v", err)
			}

			rec := sampleRecord()
			if err := store.Save(ctx, DefaultSlot, rec); err != nil {
				t.Fatalf("save: %v", err)
			}
			got, err := store.Load(ctx, DefaultSlot)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got != rec {
				t.Fatalf("expected %+v, got %+v", rec, got)
			}
			if got.MaxStamina != 150 || got.MaxHealth != 100 {
				t.Fatalf("max stats mixed up: %+v", got)
			}

			rec.Coins = 9
			rec.WeaponName = ""
			if err := store.Save(ctx, DefaultSlot, rec); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err = store.Load(ctx, DefaultSlot)
			if err != nil {
				t.Fatalf("load after overwrite: %v", err)
			}
			if got.Coins != 9 || got.WeaponName != "" {
				t.Fatalf("overwrite not applied: %+v", got)
			}

			if err := store.Save(ctx, "second", rec); err != nil {
				t.Fatalf("save second: %v", err)
			}
			slots, err := store.List(ctx)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(slots) != 2 || slots[0] != DefaultSlot || slots[1] != "second" {
				t.Fatalf("unexpected slots %v", slots)
			}
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open(context.Background(), "tape", t.TempDir()); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestSanitizeSlot(t *testing.T) {
	cases := map[string]string{
		"":              DefaultSlot,
		"  ":            DefaultSlot,
		"slot 1":        "slot_1",
		"../etc/passwd": "etc_passwd",
		"Hero-2":        "Hero-2",
	}
	for in, want := range cases {
		if got := SanitizeSlot(in); got != want {
			t.Fatalf("SanitizeSlot(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFileStoreHonorsCanceledContext(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := store.Save(ctx, DefaultSlot, sampleRecord()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
