package component

import "github.com/sagivt1/Adventure-arcade-game/common"

// Movement is the command block handed to the physics collaborator. The
// controller fills Direction and the Moving* intents; physics consumes them
// and reports blocking hits back through LastHit.
type Movement struct {
	// Direction is the accumulated input vector for this tick, length <= 1.
	Direction common.Vec3
	MaxSpeed  float64

	MovingForward bool
	MovingRight   bool

	TurnRate   float64
	LookUpRate float64
	ControlYaw float64

	JumpSpeed     float64
	Gravity       float64
	VerticalSpeed float64
	Grounded      bool
	JumpRequested bool

	LastHit BlockingHit
}

// IsMoving reports whether either movement axis produced input this tick.
func (m *Movement) IsMoving() bool {
	return m != nil && (m.MovingForward || m.MovingRight)
}

// BlockingHit describes the surface the last move ran into.
type BlockingHit struct {
	Blocked bool
	Normal  common.Vec3
	Time    float64
}

var MovementComponent = NewComponent[Movement]()
