package system

import (
	"testing"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

func TestBeginAttackPlaysVariant(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, common.Vec3{})

	if !BeginAttack(w, player) {
		t.Fatalf("expected attack to start")
	}
	anim, _ := ecs.Get(w, player, component.AnimatorComponent.Kind())
	if !anim.Playing || anim.Section != "Attack_1" || anim.Rate != 2.2 {
		t.Fatalf("unexpected montage %q rate=%v playing=%v", anim.Section, anim.Rate, anim.Playing)
	}
	ct, _ := ecs.Get(w, player, component.CombatTargetComponent.Kind())
	if !ct.RetargetRequest || !ct.InterpEnabled {
		t.Fatalf("expected retarget request and interp, got %+v", ct)
	}

	if BeginAttack(w, player) {
		t.Fatalf("second begin while attacking should be ignored")
	}
	seq, _ := ecs.Get(w, player, component.AttackSequencerComponent.Kind())
	if seq.Swings != 1 {
		t.Fatalf("expected 1 swing, got %d", seq.Swings)
	}
}

func TestBeginAttackIgnoredWhenDead(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, common.Vec3{})
	c, _ := ecs.Get(w, player, component.CharacterComponent.Kind())
	c.Die()

	if BeginAttack(w, player) {
		t.Fatalf("dead character must not attack")
	}
}

func TestAttackEndRetriggersWhileHeld(t *testing.T) {
	cases := []struct {
		name      string
		held      bool
		attacking bool
		swings    int
		interp    bool
	}{
		{"held_restarts", true, true, 2, true},
		{"released_stops", false, false, 1, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			player := addPlayer(t, w, common.Vec3{})
			if !BeginAttack(w, player) {
				t.Fatalf("expected attack to start")
			}
			in, _ := ecs.Get(w, player, component.InputComponent.Kind())
			in.PrimaryHeld = c.held
			anim, _ := ecs.Get(w, player, component.AnimatorComponent.Kind())
			anim.Fired = []string{component.NotifyAttackEnd}

			NewAttackSystem().Update(w)

			seq, _ := ecs.Get(w, player, component.AttackSequencerComponent.Kind())
			if seq.Attacking() != c.attacking || seq.Swings != c.swings {
				t.Fatalf("attacking=%v swings=%d, want %v %d", seq.Attacking(), seq.Swings, c.attacking, c.swings)
			}
			ct, _ := ecs.Get(w, player, component.CombatTargetComponent.Kind())
			if ct.InterpEnabled != c.interp {
				t.Fatalf("interp=%v, want %v", ct.InterpEnabled, c.interp)
			}
		})
	}
}

func TestAttackLandsHitsOncePerSwing(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, common.Vec3{})
	front := addEnemy(t, w, common.Vec3{X: 100}, 50)
	addEnemy(t, w, common.Vec3{X: -100}, 50)
	addEnemy(t, w, common.Vec3{X: 500}, 50)

	sword := addWeapon(t, w, "sword", 20, 150)
	if err := Equip(w, player, sword); err != nil {
		t.Fatalf("equip: %v", err)
	}
	if !BeginAttack(w, player) {
		t.Fatalf("expected attack to start")
	}

	sys := NewAttackSystem()
	anim, _ := ecs.Get(w, player, component.AnimatorComponent.Kind())

	anim.Fired = []string{component.NotifyActivateCollision}
	sys.Update(w)
	hits := w.Events().DrainType(EventDamage)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	dmg := hits[0].Data.(DamageEvent)
	if dmg.Target != front.Handle() || dmg.Causer != player.Handle() || dmg.Amount != 20 {
		t.Fatalf("unexpected damage %+v", dmg)
	}

	anim.Fired = nil
	sys.Update(w)
	if n := len(w.Events().DrainType(EventDamage)); n != 0 {
		t.Fatalf("same swing must not hit twice, got %d", n)
	}

	anim.Fired = []string{component.NotifyDeactivateCollision}
	sys.Update(w)
	_, wp, _ := EquippedWeapon(w, player)
	if wp.CollisionActive {
		t.Fatalf("collision should be off after DeactivateCollision")
	}
}

func TestInReach(t *testing.T) {
	forward := common.Vec3{X: 1}
	cases := []struct {
		name string
		to   common.Vec3
		want bool
	}{
		{"ahead", common.Vec3{X: 100}, true},
		{"behind", common.Vec3{X: -100}, false},
		{"too_far", common.Vec3{X: 200}, false},
		{"inside_cone", common.Vec3{X: 100, Y: 50}, true},
		{"outside_cone", common.Vec3{X: 10, Y: 100}, false},
		{"same_spot", common.Vec3{}, true},
		{"height_ignored", common.Vec3{X: 100, Z: 500}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := inReach(common.Vec3{}, forward, c.to, 150); got != c.want {
				t.Fatalf("inReach(%+v)=%v, want %v", c.to, got, c.want)
			}
		})
	}
}
