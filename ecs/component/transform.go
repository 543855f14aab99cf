package component

import "github.com/sagivt1/Adventure-arcade-game/common"

// Transform is an entity's world placement.
type Transform struct {
	Position common.Vec3
	Rotation common.Rotator
}

var TransformComponent = NewComponent[Transform]()
