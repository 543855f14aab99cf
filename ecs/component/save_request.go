package component

// SaveRequest asks PersistenceSystem to write the player to Slot.
type SaveRequest struct {
	Slot string
}

var SaveRequestComponent = NewComponent[SaveRequest]()

// LoadRequest asks PersistenceSystem to restore the player from Slot.
// SetPosition also restores location and rotation; SwitchLevel loads the
// saved level first when it differs from the current one.
type LoadRequest struct {
	Slot        string
	SetPosition bool
	SwitchLevel bool
}

var LoadRequestComponent = NewComponent[LoadRequest]()
