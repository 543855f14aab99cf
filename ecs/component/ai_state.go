package component

// StateID identifies an AI FSM state.
type StateID string

// AIState stores the current FSM state of a scripted enemy.
type AIState struct {
	Current StateID
	Script  string
}

var AIStateComponent = NewComponent[AIState]()
