package system

import (
	"log"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

// FloorSwitchSystem raises a door while a character stands on its switch
// plate and lowers it again SwitchTime seconds after they step off.
type FloorSwitchSystem struct{}

func NewFloorSwitchSystem() *FloorSwitchSystem { return &FloorSwitchSystem{} }

func (s *FloorSwitchSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.Delta()

	var actors []common.Vec3
	ecs.ForEach2(w, component.CharacterComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, c *component.Character, tf *component.Transform) {
		if !c.IsDead() {
			actors = append(actors, tf.Position)
		}
	})

	ecs.ForEach2(w, component.FloorSwitchComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, fs *component.FloorSwitch, tf *component.Transform) {
		on := false
		for _, p := range actors {
			if fs.Contains(p) {
				on = true
				break
			}
		}
		StepFloorSwitch(fs, on, dt)
		tf.Position = fs.SwitchLocation()
		syncDoor(w, e, fs)
	})
}

// StepFloorSwitch advances the switch state for one tick given whether a
// character is on the plate.
func StepFloorSwitch(fs *component.FloorSwitch, on bool, dt float64) {
	if fs == nil {
		return
	}
	switch {
	case on && !fs.CharacterOnSwitch:
		fs.CharacterOnSwitch = true
		fs.CloseArmed = false
		fs.DoorTarget = fs.DoorRaise
		fs.SwitchTarget = -fs.SwitchDrop
	case !on && fs.CharacterOnSwitch:
		fs.CharacterOnSwitch = false
		fs.CloseArmed = true
		fs.CloseTimer = fs.SwitchTime
	}

	if fs.CloseArmed {
		fs.CloseTimer -= dt
		if fs.CloseTimer <= 0 {
			fs.CloseArmed = false
			if !fs.CharacterOnSwitch {
				fs.DoorTarget = 0
				fs.SwitchTarget = 0
			}
		}
	}

	fs.DoorOffset = common.FInterpTo(fs.DoorOffset, fs.DoorTarget, dt, fs.TweenSpeed)
	fs.SwitchOffset = common.FInterpTo(fs.SwitchOffset, fs.SwitchTarget, dt, fs.TweenSpeed)
}

// DoorOpen reports whether the door has risen far enough to pass under.
func DoorOpen(fs *component.FloorSwitch) bool {
	return fs != nil && fs.DoorRaise > 0 && fs.DoorOffset >= fs.DoorRaise/2
}

func syncDoor(w *ecs.World, sw ecs.Entity, fs *component.FloorSwitch) {
	door := ecs.FromHandle(fs.Door)
	if !ecs.IsAlive(w, door) {
		return
	}
	if tf, ok := ecs.Get(w, door, component.TransformComponent.Kind()); ok {
		tf.Position.Z = fs.DoorLocation().Z
	}
	pb, ok := ecs.Get(w, door, component.PhysicsBodyComponent.Kind())
	if !ok {
		return
	}
	open := DoorOpen(fs)
	if pb.Disabled != open {
		pb.Disabled = open
		log.Printf("floor_switch: entity=%v door=%v open=%v", sw, door, open)
	}
}
