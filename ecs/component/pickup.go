package component

import "github.com/sagivt1/Adventure-arcade-game/common"

// PickupKind selects what a pickup grants.
type PickupKind string

const (
	PickupCoin   PickupKind = "coin"
	PickupPotion PickupKind = "potion"
)

// Pickup is a collectible consumed on overlap.
type Pickup struct {
	Kind   PickupKind
	Count  int
	Amount float64
	Radius float64

	BaseZ        float64
	BobAmplitude float64
	BobSpeed     float64
	BobPhase     float64
}

var PickupComponent = NewComponent[Pickup]()

// PickupLog records where the player collected pickups.
type PickupLog struct {
	Locations []common.Vec3
}

// Record appends a collection location.
func (l *PickupLog) Record(at common.Vec3) {
	if l == nil {
		return
	}
	l.Locations = append(l.Locations, at)
}

var PickupLogComponent = NewComponent[PickupLog]()
