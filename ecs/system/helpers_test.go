package system

import (
	"testing"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func swingNotifies() []component.AnimNotify {
	return []component.AnimNotify{
		{Name: component.NotifyActivateCollision, At: 0.2},
		{Name: component.NotifyDeactivateCollision, At: 0.6},
		{Name: component.NotifyAttackEnd, At: 0.9},
	}
}

func testSections() []component.MontageSection {
	return []component.MontageSection{
		{Name: "Attack_1", Length: 1, Notifies: swingNotifies()},
		{Name: "Attack", Length: 1, Notifies: swingNotifies()},
		{Name: component.SectionDeath, Length: 1, Notifies: []component.AnimNotify{{Name: component.NotifyDeathEnd, At: 1}}},
	}
}

// addPlayer builds a player with every component the combat systems read.
func addPlayer(t *testing.T, w *ecs.World, at common.Vec3) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{Position: at})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.CharacterComponent.Kind(), component.NewCharacter(component.DefaultCharacterTuning(), 100, 100, 150, 150))
	mustAdd(t, w, e, component.MovementComponent.Kind(), &component.Movement{MaxSpeed: 650})
	mustAdd(t, w, e, component.CombatTargetComponent.Kind(), &component.CombatTarget{InterpSpeed: 10})
	mustAdd(t, w, e, component.AttackSequencerComponent.Kind(), component.NewAttackSequencer([]component.AttackVariant{{Section: "Attack_1", PlayRate: 2.2}}, nil))
	mustAdd(t, w, e, component.AnimatorComponent.Kind(), component.NewAnimator(testSections()))
	mustAdd(t, w, e, component.WeaponSlotComponent.Kind(), &component.WeaponSlot{})
	mustAdd(t, w, e, component.ActiveOverlapComponent.Kind(), &component.ActiveOverlap{})
	mustAdd(t, w, e, component.OverlapsComponent.Kind(), &component.Overlaps{})
	mustAdd(t, w, e, component.PickupLogComponent.Kind(), &component.PickupLog{})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Kind: component.BodyActor, Radius: 40})
	return e
}

func addEnemy(t *testing.T, w *ecs.World, at common.Vec3, health float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{})
	mustAdd(t, w, e, component.EnemyComponent.Kind(), &component.Enemy{
		Name:         "grunt",
		MoveSpeed:    300,
		AgroRadius:   600,
		CombatRadius: 150,
		AttackDamage: 10,
		AttackDelay:  1,
		DeathDelay:   1,
	})
	mustAdd(t, w, e, component.HealthComponent.Kind(), component.NewHealth(health))
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{Position: at})
	mustAdd(t, w, e, component.MovementComponent.Kind(), &component.Movement{MaxSpeed: 300})
	mustAdd(t, w, e, component.AnimatorComponent.Kind(), component.NewAnimator(testSections()))
	return e
}

func addWeapon(t *testing.T, w *ecs.World, name string, damage, reach float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.WeaponComponent.Kind(), &component.Weapon{Name: name, Damage: damage, Reach: reach})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{})
	return e
}

func addHUD(t *testing.T, w *ecs.World) *component.HUD {
	t.Helper()
	e := ecs.CreateEntity(w)
	hud := &component.HUD{}
	mustAdd(t, w, e, component.HUDComponent.Kind(), hud)
	return hud
}
