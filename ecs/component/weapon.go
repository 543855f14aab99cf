package component

// WeaponState distinguishes a weapon lying in the world from one in hand.
type WeaponState int

const (
	WeaponPickUp WeaponState = iota
	WeaponEquipped
)

func (s WeaponState) String() string {
	if s == WeaponEquipped {
		return "equipped"
	}
	return "pickup"
}

// Weapon is an item entity that can be picked up and swung.
type Weapon struct {
	Name   string
	Damage float64
	Reach  float64
	State  WeaponState

	// Owner is the holder's handle once equipped.
	Owner uint64
	// Highlighted marks a pickup the player is standing next to.
	Highlighted bool

	CollisionActive bool
	// HitThisSwing records enemies already damaged by the current swing.
	HitThisSwing map[uint64]bool
}

// BeginSwing arms the hit collision and forgets previous victims.
func (w *Weapon) BeginSwing() {
	if w == nil {
		return
	}
	w.CollisionActive = true
	w.HitThisSwing = make(map[uint64]bool)
}

// EndSwing disarms the hit collision.
func (w *Weapon) EndSwing() {
	if w == nil {
		return
	}
	w.CollisionActive = false
}

var WeaponComponent = NewComponent[Weapon]()

// WeaponSlot is the single-slot inventory owned by a character.
type WeaponSlot struct {
	Equipped uint64
}

// Install puts weapon into the slot and returns whatever was there before.
// The caller is responsible for destroying the returned weapon first.
func (s *WeaponSlot) Install(weapon uint64) (previous uint64) {
	if s == nil {
		return 0
	}
	previous = s.Equipped
	s.Equipped = weapon
	return previous
}

// Empty reports whether no weapon is equipped.
func (s *WeaponSlot) Empty() bool {
	return s == nil || s.Equipped == 0
}

var WeaponSlotComponent = NewComponent[WeaponSlot]()

// ActiveOverlap is the item the character is currently standing on, if any.
type ActiveOverlap struct {
	Item uint64
}

var ActiveOverlapComponent = NewComponent[ActiveOverlap]()
