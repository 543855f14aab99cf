package system

import (
	"log"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

// PlayerControllerSystem turns the input surface into movement commands,
// equip requests and attacks.
type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}
	dt := w.Delta()

	ecs.ForEach3(w, component.InputComponent.Kind(), component.CharacterComponent.Kind(), component.MovementComponent.Kind(), func(e ecs.Entity, in *component.Input, c *component.Character, mv *component.Movement) {
		if in.PausePressed {
			if hudEnt, ok := ecs.First(w, component.HUDComponent.Kind()); ok {
				hud, _ := ecs.Get(w, hudEnt, component.HUDComponent.Kind())
				hud.Paused = true
			}
		}

		p.quickSlot(w, e, in)

		dead := c.IsDead()
		attacking := false
		if seq, ok := ecs.Get(w, e, component.AttackSequencerComponent.Kind()); ok {
			attacking = seq.Attacking()
		}
		canMove := !dead && !attacking

		mv.MovingForward = false
		mv.MovingRight = false
		dir := common.Vec3{}
		control := common.Rotator{Yaw: mv.ControlYaw}
		if canMove && in.MoveForward != 0 {
			dir = dir.Add(control.Forward().Scale(in.MoveForward))
			mv.MovingForward = true
		}
		if canMove && in.MoveRight != 0 {
			dir = dir.Add(control.Right().Scale(in.MoveRight))
			mv.MovingRight = true
		}
		mv.Direction = dir.ClampMaxSize(1)

		if canMove && in.Turn != 0 {
			mv.ControlYaw = common.NormalizeAxis(mv.ControlYaw + in.Turn*mv.TurnRate*dt)
		}

		if in.JumpPressed && !dead && mv.Grounded {
			mv.JumpRequested = true
		}

		if in.PrimaryPressed && !dead {
			p.primary(w, e)
		}
	})
}

// quickSlot turns F5/F9 into requests for the active slot. Loading keeps
// the saved position and level. A dead player can load but not save.
func (p *PlayerControllerSystem) quickSlot(w *ecs.World, e ecs.Entity, in *component.Input) {
	if in.QuickSavePressed && !playerDead(w) {
		if err := Request(w, component.SaveRequestComponent.Kind(), component.SaveRequest{}); err != nil {
			log.Printf("player: entity=%v quicksave: %v", e, err)
		}
	}
	if in.QuickLoadPressed {
		if err := Request(w, component.LoadRequestComponent.Kind(), component.LoadRequest{SetPosition: true, SwitchLevel: true}); err != nil {
			log.Printf("player: entity=%v quickload: %v", e, err)
		}
	}
}

// primary equips the overlapping weapon when there is one and otherwise
// attacks with the equipped weapon.
func (p *PlayerControllerSystem) primary(w *ecs.World, e ecs.Entity) {
	if ov, ok := ecs.Get(w, e, component.ActiveOverlapComponent.Kind()); ok && ov.Item != 0 {
		item := ecs.FromHandle(ov.Item)
		if ecs.Has(w, item, component.WeaponComponent.Kind()) {
			if err := Equip(w, e, item); err != nil {
				log.Printf("player: entity=%v equip error: %v", e, err)
			}
			ov.Item = 0
		}
		return
	}
	if _, _, ok := EquippedWeapon(w, e); ok {
		BeginAttack(w, e)
	}
}
