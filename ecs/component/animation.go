package component

import "sort"

// Montage notify names dispatched by the animation system.
const (
	NotifyActivateCollision   = "ActivateCollision"
	NotifyDeactivateCollision = "DeactivateCollision"
	NotifyAttackEnd           = "AttackEnd"
	NotifyDeathEnd            = "DeathEnd"
)

// SectionDeath is the terminal montage section played on death.
const SectionDeath = "Death"

// AnimNotify fires once when playback passes At seconds (rate 1 time).
type AnimNotify struct {
	Name string  `yaml:"name"`
	At   float64 `yaml:"at"`
}

// MontageSection is one named clip of a montage.
type MontageSection struct {
	Name     string       `yaml:"name"`
	Length   float64      `yaml:"length"`
	Notifies []AnimNotify `yaml:"notifies"`
}

// Animator plays one montage section at a time and records the notifies
// crossed during the last Advance in Fired.
type Animator struct {
	Sections map[string]MontageSection

	Section string
	Rate    float64
	Elapsed float64
	Playing bool
	// Frozen stops all playback; set by DeathEnd.
	Frozen bool

	Fired []string
	next  int
}

// NewAnimator indexes sections by name.
func NewAnimator(sections []MontageSection) *Animator {
	a := &Animator{Sections: make(map[string]MontageSection, len(sections))}
	for _, s := range sections {
		s.Notifies = append([]AnimNotify(nil), s.Notifies...)
		sort.SliceStable(s.Notifies, func(i, j int) bool { return s.Notifies[i].At < s.Notifies[j].At })
		a.Sections[s.Name] = s
	}
	return a
}

// PlayMontage starts section at rate, replacing whatever was playing.
// Unknown sections and frozen animators are ignored.
func (a *Animator) PlayMontage(rate float64, section string) bool {
	if a == nil || a.Frozen {
		return false
	}
	if _, ok := a.Sections[section]; !ok {
		return false
	}
	if rate <= 0 {
		rate = 1
	}
	a.Section = section
	a.Rate = rate
	a.Elapsed = 0
	a.Playing = true
	a.next = 0
	return true
}

// Freeze stops playback on the current pose.
func (a *Animator) Freeze() {
	if a == nil {
		return
	}
	a.Frozen = true
	a.Playing = false
}

// Advance moves playback forward and returns the notifies crossed.
func (a *Animator) Advance(dt float64) []string {
	if a == nil {
		return nil
	}
	a.Fired = a.Fired[:0]
	if a.Frozen || !a.Playing || dt <= 0 {
		return a.Fired
	}
	sec, ok := a.Sections[a.Section]
	if !ok {
		a.Playing = false
		return a.Fired
	}
	a.Elapsed += dt * a.Rate
	for a.next < len(sec.Notifies) && sec.Notifies[a.next].At <= a.Elapsed {
		a.Fired = append(a.Fired, sec.Notifies[a.next].Name)
		a.next++
	}
	if a.Elapsed >= sec.Length {
		a.Playing = false
	}
	return a.Fired
}

// HasFired reports whether name was crossed on the last Advance.
func (a *Animator) HasFired(name string) bool {
	if a == nil {
		return false
	}
	for _, n := range a.Fired {
		if n == name {
			return true
		}
	}
	return false
}

var AnimatorComponent = NewComponent[Animator]()
