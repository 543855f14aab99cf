package component

// Persistent marks entities that survive a level switch.
type Persistent struct {
	ID                string
	KeepOnLevelChange bool
}

var PersistentComponent = NewComponent[Persistent]()

// Level is the singleton describing the loaded level.
type Level struct {
	Name string
}

var LevelComponent = NewComponent[Level]()
