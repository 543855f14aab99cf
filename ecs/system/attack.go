package system

import (
	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

// BeginAttack starts a swing for e if its sequencer allows it. It plays the
// chosen section and asks the combat target tracker to retarget.
func BeginAttack(w *ecs.World, e ecs.Entity) bool {
	seq, ok := ecs.Get(w, e, component.AttackSequencerComponent.Kind())
	if !ok {
		return false
	}
	dead := false
	if c, ok := ecs.Get(w, e, component.CharacterComponent.Kind()); ok {
		dead = c.IsDead()
	}
	variant, ok := seq.Begin(dead)
	if !ok {
		return false
	}
	startSwing(w, e, seq, variant)
	return true
}

func startSwing(w *ecs.World, e ecs.Entity, seq *component.AttackSequencer, variant component.AttackVariant) {
	if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
		anim.PlayMontage(variant.PlayRate, variant.Section)
	}
	if ct, ok := ecs.Get(w, e, component.CombatTargetComponent.Kind()); ok {
		ct.InterpEnabled = seq.InterpToTarget
		ct.RetargetRequest = true
	}
}

// AttackSystem reacts to montage notifies of swinging characters and lands
// weapon hits on enemies in reach.
type AttackSystem struct{}

func NewAttackSystem() *AttackSystem {
	return &AttackSystem{}
}

func (a *AttackSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.AttackSequencerComponent.Kind(), component.AnimatorComponent.Kind(), func(e ecs.Entity, seq *component.AttackSequencer, anim *component.Animator) {
		_, weapon, hasWeapon := EquippedWeapon(w, e)

		if hasWeapon {
			if anim.HasFired(component.NotifyActivateCollision) {
				weapon.BeginSwing()
			}
			if weapon.CollisionActive {
				a.landHits(w, e, weapon)
			}
			if anim.HasFired(component.NotifyDeactivateCollision) {
				weapon.EndSwing()
			}
		}

		if !anim.HasFired(component.NotifyAttackEnd) || !seq.Attacking() {
			return
		}
		if hasWeapon {
			weapon.EndSwing()
		}
		held, dead := false, false
		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			held = in.PrimaryHeld
		}
		if c, ok := ecs.Get(w, e, component.CharacterComponent.Kind()); ok {
			dead = c.IsDead()
		}
		next, restarted := seq.End(held, dead)
		if restarted {
			startSwing(w, e, seq, next)
			return
		}
		if ct, ok := ecs.Get(w, e, component.CombatTargetComponent.Kind()); ok {
			ct.InterpEnabled = false
		}
	})
}

// landHits damages each live enemy inside the weapon's reach in front of the
// owner, once per swing.
func (a *AttackSystem) landHits(w *ecs.World, owner ecs.Entity, weapon *component.Weapon) {
	tf, ok := ecs.Get(w, owner, component.TransformComponent.Kind())
	if !ok {
		return
	}
	forward := tf.Rotation.Forward()
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), func(target ecs.Entity, _ *component.Enemy, ttf *component.Transform) {
		h := target.Handle()
		if weapon.HitThisSwing[h] {
			return
		}
		if health, ok := ecs.Get(w, target, component.HealthComponent.Kind()); ok && !health.IsAlive() {
			return
		}
		if !inReach(tf.Position, forward, ttf.Position, weapon.Reach) {
			return
		}
		weapon.HitThisSwing[h] = true
		w.Events().Emit(EventDamage, DamageEvent{Target: h, Causer: owner.Handle(), Amount: weapon.Damage})
	})
}

// inReach accepts targets within reach on the ground plane and inside a
// 120 degree cone around forward.
func inReach(from, forward, to common.Vec3, reach float64) bool {
	d := to.Sub(from)
	d.Z = 0
	if d.Len() > reach {
		return false
	}
	if d.IsNearlyZero() {
		return true
	}
	return d.Normalize().Dot(forward) >= 0.5
}
