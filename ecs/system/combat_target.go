package system

import (
	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

// CombatTargetSystem keeps each tracker pointed at the nearest live enemy in
// its detection volume and turns the owner toward it while attacking.
type CombatTargetSystem struct{}

func NewCombatTargetSystem() *CombatTargetSystem {
	return &CombatTargetSystem{}
}

func (s *CombatTargetSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.CombatTargetComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, ct *component.CombatTarget, tf *component.Transform) {
		if c, ok := ecs.Get(w, e, component.CharacterComponent.Kind()); ok && c.IsDead() {
			return
		}

		if ct.HasTarget && !targetUsable(w, ct.Target) {
			ct.Clear()
			ct.RetargetRequest = true
		}

		ov, hasOverlaps := ecs.Get(w, e, component.OverlapsComponent.Kind())
		ct.RetargetTimer -= dt
		due := ct.RetargetInterval > 0 && ct.RetargetTimer <= 0
		if ct.RetargetRequest || due || (hasOverlaps && ov.EnemiesChanged) {
			var enemies []uint64
			if hasOverlaps {
				enemies = ov.Enemies
			}
			s.retarget(w, ct, tf.Position, enemies)
			ct.RetargetRequest = false
			ct.RetargetTimer = ct.RetargetInterval
		}

		if !ct.HasTarget {
			return
		}
		target := ecs.FromHandle(ct.Target)
		ttf, ok := ecs.Get(w, target, component.TransformComponent.Kind())
		if !ok {
			return
		}
		ct.Location = ttf.Position

		fraction := 0.0
		if h, ok := ecs.Get(w, target, component.HealthComponent.Kind()); ok {
			fraction = h.Fraction()
		}
		w.Events().Emit(EventEnemyLocation, EnemyLocationEvent{Location: ct.Location, Health: fraction})

		if ct.InterpEnabled {
			tf.Rotation = common.InterpYawTo(tf.Rotation, common.LookAtYaw(tf.Position, ct.Location), dt, ct.InterpSpeed)
		}
	})
}

func (s *CombatTargetSystem) retarget(w *ecs.World, ct *component.CombatTarget, self common.Vec3, enemies []uint64) {
	candidates := make([]component.TargetCandidate, 0, len(enemies))
	for _, h := range enemies {
		if !targetUsable(w, h) {
			continue
		}
		tf, ok := ecs.Get(w, ecs.FromHandle(h), component.TransformComponent.Kind())
		if !ok {
			continue
		}
		candidates = append(candidates, component.TargetCandidate{Handle: h, Location: tf.Position})
	}

	best, ok := component.PickNearest(candidates, self)
	if !ok {
		ct.Clear()
		w.Events().Emit(EventHideEnemyHealth, nil)
		return
	}
	ct.Set(best)
	w.Events().Emit(EventShowEnemyHealth, best.Handle)
}

// targetUsable reports whether h still names a live, non-dead enemy.
func targetUsable(w *ecs.World, h uint64) bool {
	e := ecs.FromHandle(h)
	if !e.Valid() || !ecs.IsAlive(w, e) || !ecs.Has(w, e, component.EnemyComponent.Kind()) {
		return false
	}
	if health, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && !health.IsAlive() {
		return false
	}
	return true
}
