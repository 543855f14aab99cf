package component

import (
	"testing"

	"github.com/sagivt1/Adventure-arcade-game/common"
)

func TestPickNearest(t *testing.T) {
	self := common.Vec3{}
	cases := []struct {
		name       string
		candidates []TargetCandidate
		want       uint64
		ok         bool
	}{
		{"empty", nil, 0, false},
		{"single", []TargetCandidate{{Handle: 7, Location: common.Vec3{X: 500}}}, 7, true},
		{
			"nearest_wins",
			[]TargetCandidate{
				{Handle: 1, Location: common.Vec3{X: 300}},
				{Handle: 2, Location: common.Vec3{X: 0, Y: -120}},
				{Handle: 3, Location: common.Vec3{X: 90, Y: 90, Z: 90}},
			},
			2, true,
		},
		{
			"tie_keeps_first",
			[]TargetCandidate{
				{Handle: 4, Location: common.Vec3{X: 100}},
				{Handle: 5, Location: common.Vec3{Y: 100}},
			},
			4, true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PickNearest(tc.candidates, self)
			if ok != tc.ok || got.Handle != tc.want {
				t.Fatalf("got %d ok=%v, want %d ok=%v", got.Handle, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestCombatTargetClearIf(t *testing.T) {
	var ct CombatTarget
	ct.Set(TargetCandidate{Handle: 9, Location: common.Vec3{X: 1}})
	if ct.ClearIf(3) {
		t.Fatalf("cleared for an unrelated handle")
	}
	if !ct.ClearIf(9) || ct.HasTarget {
		t.Fatalf("expected target cleared")
	}
}
