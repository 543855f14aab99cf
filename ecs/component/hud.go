package component

import "github.com/sagivt1/Adventure-arcade-game/common"

// HUD is the singleton UI state mirrored from world events.
type HUD struct {
	EnemyHealthVisible  bool
	EnemyLocation       common.Vec3
	EnemyHealthFraction float64

	Paused bool

	Message      string
	MessageTimer float64
}

// ShowMessage displays text for seconds.
func (h *HUD) ShowMessage(text string, seconds float64) {
	if h == nil {
		return
	}
	h.Message = text
	h.MessageTimer = seconds
}

var HUDComponent = NewComponent[HUD]()
