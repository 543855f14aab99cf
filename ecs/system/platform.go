package system

import (
	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

// arriveTolerance is how close a platform must get to its end point before
// it stops and turns around.
const arriveTolerance = 1.0

// PlatformSystem shuttles floating platforms between their two points.
type PlatformSystem struct{}

func NewPlatformSystem() *PlatformSystem { return &PlatformSystem{} }

func (s *PlatformSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()
	ecs.ForEach2(w, component.PlatformComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, p *component.Platform, tf *component.Transform) {
		tf.Position = StepPlatform(p, tf.Position, dt)
	})
}

// StepPlatform advances p by dt from pos and returns the new position. A
// resting platform counts its dwell timer down; a moving one eases toward
// End and swaps direction on arrival.
func StepPlatform(p *component.Platform, pos common.Vec3, dt float64) common.Vec3 {
	if p == nil {
		return pos
	}
	if !p.Interping {
		p.Timer -= dt
		if p.Timer <= 0 {
			p.Interping = true
		}
		return pos
	}

	pos = common.VInterpTo(pos, p.End, dt, p.InterpSpeed)
	traveled := pos.Sub(p.Start).Len()
	if p.Distance-traveled <= arriveTolerance {
		p.Interping = false
		p.Timer = p.InterpTime
		p.Swap()
	}
	return pos
}
