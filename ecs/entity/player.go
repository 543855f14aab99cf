package entity

import (
	"fmt"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
	"github.com/sagivt1/Adventure-arcade-game/prefabs"
)

// PlayerPersistentID tags the player so a save can find it.
const PlayerPersistentID = "player"

func NewPlayer(w *ecs.World, rng common.Rand) (ecs.Entity, error) {
	return NewPlayerAt(w, common.Vec3{}, 0, rng)
}

func NewPlayerAt(w *ecs.World, at common.Vec3, yaw float64, rng common.Rand) (ecs.Entity, error) {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}

	e := ecs.CreateEntity(w)
	fail := func(what string, err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("player: add %s: %w", what, err)
	}

	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return fail("player tag", err)
	}
	if err := ecs.Add(w, e, component.PersistentComponent.Kind(), &component.Persistent{ID: PlayerPersistentID}); err != nil {
		return fail("persistent", err)
	}
	if err := SetEntityTransform(w, e, at, yaw); err != nil {
		return fail("transform", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return fail("input", err)
	}

	character := component.NewCharacter(spec.Tuning(), spec.Health, spec.MaxHealth, spec.Stamina, spec.MaxStamina)
	if err := ecs.Add(w, e, component.CharacterComponent.Kind(), character); err != nil {
		return fail("character", err)
	}

	if err := ecs.Add(w, e, component.MovementComponent.Kind(), &component.Movement{
		MaxSpeed:   character.MaxSpeed,
		TurnRate:   spec.TurnRate,
		LookUpRate: spec.LookUpRate,
		ControlYaw: yaw,
		JumpSpeed:  spec.JumpSpeed,
		Gravity:    spec.Gravity,
		Grounded:   true,
	}); err != nil {
		return fail("movement", err)
	}

	if err := ecs.Add(w, e, component.CombatTargetComponent.Kind(), &component.CombatTarget{
		InterpSpeed:      spec.InterpSpeed,
		RetargetInterval: spec.RetargetInterval,
	}); err != nil {
		return fail("combat target", err)
	}

	if err := ecs.Add(w, e, component.AttackSequencerComponent.Kind(), component.NewAttackSequencer(spec.AttackVariants(), rng)); err != nil {
		return fail("attack sequencer", err)
	}
	if err := ecs.Add(w, e, component.AnimatorComponent.Kind(), component.NewAnimator(spec.Sections)); err != nil {
		return fail("animator", err)
	}
	if err := ecs.Add(w, e, component.WeaponSlotComponent.Kind(), &component.WeaponSlot{}); err != nil {
		return fail("weapon slot", err)
	}
	if err := ecs.Add(w, e, component.ActiveOverlapComponent.Kind(), &component.ActiveOverlap{}); err != nil {
		return fail("active overlap", err)
	}
	if err := ecs.Add(w, e, component.OverlapsComponent.Kind(), &component.Overlaps{}); err != nil {
		return fail("overlaps", err)
	}
	if err := ecs.Add(w, e, component.PickupLogComponent.Kind(), &component.PickupLog{}); err != nil {
		return fail("pickup log", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Kind:         component.BodyActor,
		Radius:       spec.Radius,
		DetectRadius: spec.DetectRadius,
		PickupRadius: spec.PickupRadius,
	}); err != nil {
		return fail("physics body", err)
	}

	return e, nil
}
