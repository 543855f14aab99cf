package component

import "github.com/sagivt1/Adventure-arcade-game/common"

// FloorSwitch opens a door while the player stands on it. After the player
// leaves, the door closes once SwitchTime has passed.
type FloorSwitch struct {
	// Door is the handle of the wall entity the switch opens.
	Door uint64

	HalfExtents common.Vec3
	SwitchTime  float64

	InitialDoor   common.Vec3
	InitialSwitch common.Vec3
	DoorRaise     float64
	SwitchDrop    float64
	TweenSpeed    float64

	// DoorOffset and SwitchOffset are the current Z offsets from the
	// initial locations; targets are what the tween moves toward.
	DoorOffset   float64
	SwitchOffset float64
	DoorTarget   float64
	SwitchTarget float64

	CharacterOnSwitch bool
	CloseTimer        float64
	CloseArmed        bool
}

// DoorLocation returns the door position for the current offset.
func (s *FloorSwitch) DoorLocation() common.Vec3 {
	if s == nil {
		return common.Vec3{}
	}
	return s.InitialDoor.Add(common.Vec3{Z: s.DoorOffset})
}

// SwitchLocation returns the switch plate position for the current offset.
func (s *FloorSwitch) SwitchLocation() common.Vec3 {
	if s == nil {
		return common.Vec3{}
	}
	return s.InitialSwitch.Add(common.Vec3{Z: s.SwitchOffset})
}

// Contains reports whether p lies in the trigger box around the switch.
func (s *FloorSwitch) Contains(p common.Vec3) bool {
	if s == nil {
		return false
	}
	d := p.Sub(s.InitialSwitch)
	return abs(d.X) <= s.HalfExtents.X && abs(d.Y) <= s.HalfExtents.Y && abs(d.Z) <= s.HalfExtents.Z
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

var FloorSwitchComponent = NewComponent[FloorSwitch]()
