package component

// Overlaps lists the handles currently inside an entity's detection volumes.
// The physics system rewrites it every tick and sets EnemiesChanged when the
// enemy set differs from the previous tick.
type Overlaps struct {
	Enemies []uint64
	Items   []uint64

	EnemiesChanged bool
}

// Contains reports whether h is in list.
func Contains(list []uint64, h uint64) bool {
	for _, v := range list {
		if v == h {
			return true
		}
	}
	return false
}

var OverlapsComponent = NewComponent[Overlaps]()
