package component

// LevelChangeRequest is a one-shot request emitted by gameplay systems (the
// TransitionSystem) asking PersistenceSystem to load a different level.
//
// Systems only emit data; PersistenceSystem owns IO and world rebuilds.
type LevelChangeRequest struct {
	TargetLevel string
}

var LevelChangeRequestComponent = NewComponent[LevelChangeRequest]()
