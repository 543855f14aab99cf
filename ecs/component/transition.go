package component

// Transition is a level exit: a circular volume that switches to
// TargetLevel when a living player enters it.
type Transition struct {
	TargetLevel string
	Radius      float64
}

var TransitionComponent = NewComponent[Transition]()
