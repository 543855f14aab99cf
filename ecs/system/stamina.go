package system

import (
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

// StaminaSystem advances each character's stamina machine and surfaces the
// selected max speed to its movement block.
type StaminaSystem struct{}

func NewStaminaSystem() *StaminaSystem {
	return &StaminaSystem{}
}

func (s *StaminaSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.MovementComponent.Kind(), func(e ecs.Entity, c *component.Character, mv *component.Movement) {
		sprint := false
		if in, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			sprint = in.SprintHeld
		}
		c.Advance(dt, sprint, mv.IsMoving())
		mv.MaxSpeed = c.MaxSpeed
		if c.IsDead() {
			mv.MaxSpeed = 0
		}
	})
}
