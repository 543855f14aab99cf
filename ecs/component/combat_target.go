package component

import "github.com/sagivt1/Adventure-arcade-game/common"

// TargetCandidate is a hostile entity inside the detection volume.
type TargetCandidate struct {
	Handle   uint64
	Location common.Vec3
}

// PickNearest returns the candidate closest to self. Ties keep the first
// candidate encountered; the physics overlap list is sorted by handle, so
// in play a tie goes to the lowest handle. ok is false for an empty slice.
func PickNearest(candidates []TargetCandidate, self common.Vec3) (TargetCandidate, bool) {
	if len(candidates) == 0 {
		return TargetCandidate{}, false
	}
	best := candidates[0]
	bestDist := best.Location.Dist(self)
	for _, c := range candidates[1:] {
		if d := c.Location.Dist(self); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best, true
}

// CombatTarget is a non-owning reference to the selected enemy. Target is an
// entity handle; systems must check liveness before dereferencing it.
type CombatTarget struct {
	Target    uint64
	HasTarget bool
	Location  common.Vec3

	InterpEnabled bool
	InterpSpeed   float64

	RetargetInterval float64
	RetargetTimer    float64
	RetargetRequest  bool
}

// Set selects a new target.
func (t *CombatTarget) Set(c TargetCandidate) {
	if t == nil {
		return
	}
	t.Target = c.Handle
	t.HasTarget = true
	t.Location = c.Location
}

// Clear drops the current target.
func (t *CombatTarget) Clear() {
	if t == nil {
		return
	}
	t.Target = 0
	t.HasTarget = false
}

// ClearIf drops the target when it refers to h. It reports whether it did.
func (t *CombatTarget) ClearIf(h uint64) bool {
	if t == nil || !t.HasTarget || t.Target != h {
		return false
	}
	t.Clear()
	return true
}

var CombatTargetComponent = NewComponent[CombatTarget]()
