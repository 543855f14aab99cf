package component

// Input stores the per-tick input surface for an entity: axis values and
// press/release edges for the discrete actions.
type Input struct {
	MoveForward float64
	MoveRight   float64
	Turn        float64
	LookUp      float64

	SprintHeld bool

	PrimaryHeld     bool
	PrimaryPressed  bool
	PrimaryReleased bool

	JumpPressed      bool
	PausePressed     bool
	QuickSavePressed bool
	QuickLoadPressed bool
}

var InputComponent = NewComponent[Input]()
