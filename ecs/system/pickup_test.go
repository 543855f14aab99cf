package system

import (
	"math"
	"testing"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

func addPickup(t *testing.T, w *ecs.World, at common.Vec3, p component.Pickup) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.PickupComponent.Kind(), &p)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{Position: at})
	return e
}

func TestCollect(t *testing.T) {
	cases := []struct {
		name   string
		pickup component.Pickup
		damage float64
		coins  int
		health float64
	}{
		{"coin_default_count", component.Pickup{Kind: component.PickupCoin}, 0, 1, 100},
		{"coin_stack", component.Pickup{Kind: component.PickupCoin, Count: 5}, 0, 5, 100},
		{"potion_heals", component.Pickup{Kind: component.PickupPotion, Amount: 30}, 50, 0, 80},
		{"potion_caps_at_max", component.Pickup{Kind: component.PickupPotion, Amount: 30}, 10, 0, 100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player := addPlayer(t, w, common.Vec3{})
			ch, _ := ecs.Get(w, player, component.CharacterComponent.Kind())
			ch.ApplyDamage(c.damage)

			at := common.Vec3{X: 40, Y: 10}
			item := addPickup(t, w, at, c.pickup)
			p, _ := ecs.Get(w, item, component.PickupComponent.Kind())
			Collect(w, player, item, p)

			if ch.Coins != c.coins || ch.Health != c.health {
				t.Fatalf("coins=%d health=%v, want %d %v", ch.Coins, ch.Health, c.coins, c.health)
			}
			if ecs.IsAlive(w, item) {
				t.Fatalf("pickup should be destroyed")
			}
			plog, _ := ecs.Get(w, player, component.PickupLogComponent.Kind())
			if len(plog.Locations) != 1 || plog.Locations[0] != at {
				t.Fatalf("expected location logged, got %v", plog.Locations)
			}
			collected := w.Events().DrainType(EventPickupCollected)
			if len(collected) != 1 || collected[0].Data.(PickupEvent).Kind != string(c.pickup.Kind) {
				t.Fatalf("unexpected pickup events %v", collected)
			}
			if n := len(w.Events().DrainType(EventMessage)); n != 1 {
				t.Fatalf("expected 1 message, got %d", n)
			}
		})
	}
}

func TestCollectUnknownKindKeepsPickup(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, common.Vec3{})
	item := addPickup(t, w, common.Vec3{}, component.Pickup{Kind: "gem"})
	p, _ := ecs.Get(w, item, component.PickupComponent.Kind())

	Collect(w, player, item, p)

	if !ecs.IsAlive(w, item) {
		t.Fatalf("unknown pickup should stay in the world")
	}
}

func TestPickupSystemCollectsOverlappingItems(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, common.Vec3{})
	coin := addPickup(t, w, common.Vec3{X: 30}, component.Pickup{Kind: component.PickupCoin, Count: 2})
	other := addPickup(t, w, common.Vec3{X: 900}, component.Pickup{Kind: component.PickupCoin})
	sword := addWeapon(t, w, "sword", 20, 150)

	ov, _ := ecs.Get(w, player, component.OverlapsComponent.Kind())
	ov.Items = []uint64{coin.Handle(), sword.Handle()}

	NewPickupSystem().Update(w)

	ch, _ := ecs.Get(w, player, component.CharacterComponent.Kind())
	if ch.Coins != 2 {
		t.Fatalf("expected 2 coins, got %d", ch.Coins)
	}
	if ecs.IsAlive(w, coin) || !ecs.IsAlive(w, other) || !ecs.IsAlive(w, sword) {
		t.Fatalf("only the overlapping pickup should be consumed")
	}
}

func TestPickupSystemIgnoresDeadCollector(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, common.Vec3{})
	coin := addPickup(t, w, common.Vec3{}, component.Pickup{Kind: component.PickupCoin})
	ch, _ := ecs.Get(w, player, component.CharacterComponent.Kind())
	ch.Die()
	ov, _ := ecs.Get(w, player, component.OverlapsComponent.Kind())
	ov.Items = []uint64{coin.Handle()}

	NewPickupSystem().Update(w)

	if !ecs.IsAlive(w, coin) {
		t.Fatalf("dead characters must not collect")
	}
}

func TestPickupSystemBobs(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDelta(0.5)
	coin := addPickup(t, w, common.Vec3{Z: 50}, component.Pickup{Kind: component.PickupCoin})

	NewPickupSystem().Update(w)

	tf, _ := ecs.Get(w, coin, component.TransformComponent.Kind())
	want := 50 + math.Sin(1.5)*12
	if math.Abs(tf.Position.Z-want) > 1e-9 {
		t.Fatalf("expected z=%v, got %v", want, tf.Position.Z)
	}
}
