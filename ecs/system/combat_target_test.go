package system

import (
	"testing"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

func TestCombatTargetPicksNearestAndReplacesStale(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDelta(1.0 / 60)
	player := addPlayer(t, w, common.Vec3{})
	near := addEnemy(t, w, common.Vec3{X: 100}, 50)
	far := addEnemy(t, w, common.Vec3{X: 300}, 50)

	ov, _ := ecs.Get(w, player, component.OverlapsComponent.Kind())
	ov.Enemies = []uint64{far.Handle(), near.Handle()}
	ct, _ := ecs.Get(w, player, component.CombatTargetComponent.Kind())
	ct.RetargetRequest = true

	sys := NewCombatTargetSystem()
	sys.Update(w)

	if !ct.HasTarget || ct.Target != near.Handle() {
		t.Fatalf("expected near target, got %+v", ct)
	}
	shown := w.Events().DrainType(EventShowEnemyHealth)
	if len(shown) != 1 || shown[0].Data != near.Handle() {
		t.Fatalf("expected show event for near, got %v", shown)
	}
	locs := w.Events().DrainType(EventEnemyLocation)
	if len(locs) != 1 {
		t.Fatalf("expected 1 location event, got %d", len(locs))
	}
	if loc := locs[0].Data.(EnemyLocationEvent); loc.Location.X != 100 || loc.Health != 1 {
		t.Fatalf("unexpected location event %+v", loc)
	}

	ecs.DestroyEntity(w, near)
	sys.Update(w)
	if !ct.HasTarget || ct.Target != far.Handle() {
		t.Fatalf("expected retarget to far after destroy, got %+v", ct)
	}
	if ct.RetargetRequest {
		t.Fatalf("retarget request should be consumed")
	}
}

func TestCombatTargetClearsAndHidesWhenEmpty(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, common.Vec3{})
	enemy := addEnemy(t, w, common.Vec3{X: 100}, 50)

	ct, _ := ecs.Get(w, player, component.CombatTargetComponent.Kind())
	ct.Set(component.TargetCandidate{Handle: enemy.Handle()})
	h, _ := ecs.Get(w, enemy, component.HealthComponent.Kind())
	h.ApplyDamage(100, player.Handle())

	NewCombatTargetSystem().Update(w)

	if ct.HasTarget {
		t.Fatalf("dead enemy should be dropped")
	}
	if n := len(w.Events().DrainType(EventHideEnemyHealth)); n != 1 {
		t.Fatalf("expected 1 hide event, got %d", n)
	}
}

func TestCombatTargetRetargetsOnOverlapChange(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, common.Vec3{})
	enemy := addEnemy(t, w, common.Vec3{X: 100}, 50)

	ov, _ := ecs.Get(w, player, component.OverlapsComponent.Kind())
	ov.Enemies = []uint64{enemy.Handle()}
	ov.EnemiesChanged = true

	NewCombatTargetSystem().Update(w)

	ct, _ := ecs.Get(w, player, component.CombatTargetComponent.Kind())
	if !ct.HasTarget || ct.Target != enemy.Handle() {
		t.Fatalf("expected overlap change to select enemy, got %+v", ct)
	}
}

func TestCombatTargetTurnsTowardTargetWhileAttacking(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDelta(0.05)
	player := addPlayer(t, w, common.Vec3{})
	enemy := addEnemy(t, w, common.Vec3{Y: 100}, 50)

	ct, _ := ecs.Get(w, player, component.CombatTargetComponent.Kind())
	ct.Set(component.TargetCandidate{Handle: enemy.Handle()})
	ct.InterpEnabled = true

	NewCombatTargetSystem().Update(w)

	tf, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	if tf.Rotation.Yaw < 44 || tf.Rotation.Yaw > 46 {
		t.Fatalf("expected yaw halfway to 90, got %v", tf.Rotation.Yaw)
	}
}

func TestCombatTargetSkipsDeadOwner(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, common.Vec3{})
	enemy := addEnemy(t, w, common.Vec3{X: 100}, 50)
	c, _ := ecs.Get(w, player, component.CharacterComponent.Kind())
	c.Die()

	ov, _ := ecs.Get(w, player, component.OverlapsComponent.Kind())
	ov.Enemies = []uint64{enemy.Handle()}
	ct, _ := ecs.Get(w, player, component.CombatTargetComponent.Kind())
	ct.RetargetRequest = true

	NewCombatTargetSystem().Update(w)

	if ct.HasTarget {
		t.Fatalf("dead owner should not acquire targets")
	}
}
