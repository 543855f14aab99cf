package system

import (
	"log"

	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

// DamageSystem applies queued damage to characters and enemies, runs the
// death transition and removes dead enemies after their death delay.
type DamageSystem struct{}

func NewDamageSystem() *DamageSystem {
	return &DamageSystem{}
}

func (d *DamageSystem) Update(w *ecs.World) {
	if d == nil || w == nil {
		return
	}

	for _, evt := range w.Events().DrainType(EventDamage) {
		dmg, ok := evt.Data.(DamageEvent)
		if !ok {
			continue
		}
		ApplyDamage(w, ecs.FromHandle(dmg.Target), dmg.Amount, ecs.FromHandle(dmg.Causer))
	}

	d.expireDeadEnemies(w)
}

// ApplyDamage hurts target. When the blow kills it the death montage is
// played and the causer is told its target is gone.
func ApplyDamage(w *ecs.World, target ecs.Entity, amount float64, causer ecs.Entity) {
	if w == nil || !ecs.IsAlive(w, target) {
		return
	}

	killed := false
	if c, ok := ecs.Get(w, target, component.CharacterComponent.Kind()); ok {
		killed = c.ApplyDamage(amount)
	} else if h, ok := ecs.Get(w, target, component.HealthComponent.Kind()); ok {
		wasAlive := h.IsAlive()
		h.ApplyDamage(amount, causer.Handle())
		killed = wasAlive && !h.IsAlive()
	}
	if !killed {
		return
	}

	log.Printf("damage: entity=%v killed by=%v", target, causer)
	onDeath(w, target, causer)
}

func onDeath(w *ecs.World, target, causer ecs.Entity) {
	if anim, ok := ecs.Get(w, target, component.AnimatorComponent.Kind()); ok {
		anim.PlayMontage(1, component.SectionDeath)
	}
	if seq, ok := ecs.Get(w, target, component.AttackSequencerComponent.Kind()); ok && seq.Attacking() {
		seq.End(false, true)
	}
	if _, weapon, ok := EquippedWeapon(w, target); ok {
		weapon.EndSwing()
	}
	if mv, ok := ecs.Get(w, target, component.MovementComponent.Kind()); ok {
		mv.Direction = mv.Direction.Scale(0)
		mv.MaxSpeed = 0
	}
	if enemy, ok := ecs.Get(w, target, component.EnemyComponent.Kind()); ok {
		enemy.DeathTimer = enemy.DeathDelay
		enemy.HasValidTarget = false
		enemy.Target = 0
	}

	if ecs.IsAlive(w, causer) {
		if enemy, ok := ecs.Get(w, causer, component.EnemyComponent.Kind()); ok {
			enemy.HasValidTarget = false
			enemy.Target = 0
		}
	}

	// Trackers holding the dead entity drop it now rather than next retarget.
	ecs.ForEach(w, component.CombatTargetComponent.Kind(), func(_ ecs.Entity, ct *component.CombatTarget) {
		if ct.ClearIf(target.Handle()) {
			ct.RetargetRequest = true
		}
	})

	w.Events().Emit(EventDied, DiedEvent{Entity: target.Handle(), Causer: causer.Handle()})
}

func (d *DamageSystem) expireDeadEnemies(w *ecs.World) {
	dt := w.Delta()
	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.HealthComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, h *component.Health) {
		if h.IsAlive() {
			return
		}
		enemy.DeathTimer -= dt
		if enemy.DeathTimer <= 0 {
			ecs.DestroyEntity(w, e)
		}
	})
}
