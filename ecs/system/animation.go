package system

import (
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

// AnimationSystem advances montage playback. Notifies crossed this tick are
// left in Animator.Fired for the systems that run after it.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if a == nil || w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.AnimatorComponent.Kind(), func(e ecs.Entity, anim *component.Animator) {
		anim.Advance(dt)
		if anim.HasFired(component.NotifyDeathEnd) {
			anim.Freeze()
		}
	})
}
