package component

import "github.com/sagivt1/Adventure-arcade-game/common"

// AttackVariant is one swing: a montage section played at a rate.
type AttackVariant struct {
	Section  string
	PlayRate float64
}

// DefaultAttackVariants are the two swings of the combat montage.
func DefaultAttackVariants() []AttackVariant {
	return []AttackVariant{
		{Section: "Attack_1", PlayRate: 2.2},
		{Section: "Attack_2", PlayRate: 1.8},
	}
}

// AttackPhase is the sequencer state.
type AttackPhase int

const (
	AttackIdle AttackPhase = iota
	AttackAttacking
)

func (p AttackPhase) String() string {
	if p == AttackAttacking {
		return "attacking"
	}
	return "idle"
}

// AttackSequencer gates attack start/end and picks a variant per swing.
// InterpToTarget mirrors the phase: on while attacking so the character
// turns toward its combat target.
type AttackSequencer struct {
	Phase          AttackPhase
	Variants       []AttackVariant
	Current        AttackVariant
	InterpToTarget bool
	Swings         int

	Rand common.Rand
}

// NewAttackSequencer returns an idle sequencer. A nil rng gets a fixed-seed
// source so behavior stays reproducible.
func NewAttackSequencer(variants []AttackVariant, rng common.Rand) *AttackSequencer {
	if len(variants) == 0 {
		variants = DefaultAttackVariants()
	}
	if rng == nil {
		rng = common.NewRand(1)
	}
	return &AttackSequencer{Variants: variants, Rand: rng}
}

// Attacking reports whether a swing is in progress.
func (s *AttackSequencer) Attacking() bool {
	return s != nil && s.Phase == AttackAttacking
}

// Begin starts a swing. It is a no-op while attacking or when dead; ok
// reports whether a swing started.
func (s *AttackSequencer) Begin(dead bool) (AttackVariant, bool) {
	if s == nil || dead || s.Phase == AttackAttacking {
		return AttackVariant{}, false
	}
	s.Phase = AttackAttacking
	s.InterpToTarget = true
	s.Current = s.pick()
	s.Swings++
	return s.Current, true
}

// End finishes the swing. With the primary action still held it immediately
// begins the next one; restarted reports that case.
func (s *AttackSequencer) End(primaryHeld, dead bool) (next AttackVariant, restarted bool) {
	if s == nil {
		return AttackVariant{}, false
	}
	s.Phase = AttackIdle
	s.InterpToTarget = false
	s.Current = AttackVariant{}
	if primaryHeld {
		return s.Begin(dead)
	}
	return AttackVariant{}, false
}

func (s *AttackSequencer) pick() AttackVariant {
	if len(s.Variants) == 1 || s.Rand == nil {
		return s.Variants[0]
	}
	return s.Variants[s.Rand.Intn(len(s.Variants))]
}

var AttackSequencerComponent = NewComponent[AttackSequencer]()
