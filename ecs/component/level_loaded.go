package component

// LevelLoaded is a transient marker added by PersistenceSystem once a level
// has been built. HUDSystem announces the level and removes it.
type LevelLoaded struct {
	Name     string
	Sequence uint64
}

var LevelLoadedComponent = NewComponent[LevelLoaded]()
