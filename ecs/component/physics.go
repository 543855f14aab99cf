package component

import (
	"github.com/jakecoffman/cp"
	"github.com/sagivt1/Adventure-arcade-game/common"
)

// BodyKind selects how the physics system builds and filters a body.
type BodyKind int

const (
	BodyActor BodyKind = iota
	BodyItem
	BodyWall
	BodyPlatform
)

// PhysicsBody stores Chipmunk2D runtime data for a kinematic or static body.
// The cp plane maps to the world X/Y plane; Z is carried by the Transform.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Kind   BodyKind
	Radius float64
	Width  float64
	Height float64

	// SegmentTo is the far end of a wall segment; Radius is its half
	// thickness.
	SegmentTo common.Vec3
	// Disabled walls stop blocking movement (an open door).
	Disabled bool

	// DetectRadius is the combat detection volume around the body; zero
	// disables overlap collection.
	DetectRadius float64
	// PickupRadius is the item overlap volume.
	PickupRadius float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
