package system

import (
	"math"
	"testing"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

func TestPlayerControllerMovement(t *testing.T) {
	diag := math.Sqrt(0.5)
	cases := []struct {
		name        string
		input       component.Input
		prepare     func(w *ecs.World, e ecs.Entity)
		wantDir     common.Vec3
		wantForward bool
		wantRight   bool
		wantYaw     float64
		wantJump    bool
	}{
		{
			name:        "forward",
			input:       component.Input{MoveForward: 1},
			wantDir:     common.Vec3{X: 1},
			wantForward: true,
		},
		{
			name:        "diagonal_clamped",
			input:       component.Input{MoveForward: 1, MoveRight: 1},
			wantDir:     common.Vec3{X: diag, Y: diag},
			wantForward: true,
			wantRight:   true,
		},
		{
			name:    "turn",
			input:   component.Input{Turn: 1},
			wantYaw: 45,
		},
		{
			name:     "jump_when_grounded",
			input:    component.Input{JumpPressed: true},
			prepare:  func(w *ecs.World, e ecs.Entity) { mv, _ := ecs.Get(w, e, component.MovementComponent.Kind()); mv.Grounded = true },
			wantJump: true,
		},
		{
			name:  "jump_in_air_ignored",
			input: component.Input{JumpPressed: true},
		},
		{
			name:  "dead_is_frozen",
			input: component.Input{MoveForward: 1, Turn: 1, JumpPressed: true},
			prepare: func(w *ecs.World, e ecs.Entity) {
				c, _ := ecs.Get(w, e, component.CharacterComponent.Kind())
				c.Die()
				mv, _ := ecs.Get(w, e, component.MovementComponent.Kind())
				mv.Grounded = true
			},
		},
		{
			name:  "attacking_cannot_move",
			input: component.Input{MoveForward: 1, Turn: 1},
			prepare: func(w *ecs.World, e ecs.Entity) {
				seq, _ := ecs.Get(w, e, component.AttackSequencerComponent.Kind())
				seq.Begin(false)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			w.SetDelta(0.5)
			e := addPlayer(t, w, common.Vec3{})
			mv, _ := ecs.Get(w, e, component.MovementComponent.Kind())
			mv.TurnRate = 90
			if tc.prepare != nil {
				tc.prepare(w, e)
			}
			in, _ := ecs.Get(w, e, component.InputComponent.Kind())
			*in = tc.input

			NewPlayerControllerSystem().Update(w)

			if mv.Direction.Sub(tc.wantDir).Len() > 1e-9 {
				t.Fatalf("direction = %+v, want %+v", mv.Direction, tc.wantDir)
			}
			if mv.MovingForward != tc.wantForward || mv.MovingRight != tc.wantRight {
				t.Fatalf("moving forward=%v right=%v, want %v %v", mv.MovingForward, mv.MovingRight, tc.wantForward, tc.wantRight)
			}
			if math.Abs(mv.ControlYaw-tc.wantYaw) > 1e-9 {
				t.Fatalf("control yaw = %v, want %v", mv.ControlYaw, tc.wantYaw)
			}
			if mv.JumpRequested != tc.wantJump {
				t.Fatalf("jump requested = %v, want %v", mv.JumpRequested, tc.wantJump)
			}
		})
	}
}

func TestPlayerControllerPauseAndQuickSlot(t *testing.T) {
	w := ecs.NewWorld()
	hud := addHUD(t, w)
	e := addPlayer(t, w, common.Vec3{})
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	*in = component.Input{PausePressed: true, QuickSavePressed: true, QuickLoadPressed: true}

	NewPlayerControllerSystem().Update(w)

	if !hud.Paused {
		t.Fatalf("expected the HUD paused")
	}
	if _, ok := ecs.First(w, component.SaveRequestComponent.Kind()); !ok {
		t.Fatalf("expected a save request")
	}
	req, ok := firstRequest(w, component.LoadRequestComponent.Kind())
	if !ok || !req.SetPosition || !req.SwitchLevel || req.Slot != "" {
		t.Fatalf("unexpected load request %+v ok=%v", req, ok)
	}
}

func TestPlayerControllerPrimaryEquipsThenAttacks(t *testing.T) {
	w := ecs.NewWorld()
	e := addPlayer(t, w, common.Vec3{})
	sword := addWeapon(t, w, "sword", 25, 120)
	ov, _ := ecs.Get(w, e, component.ActiveOverlapComponent.Kind())
	ov.Item = sword.Handle()
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	in.PrimaryPressed = true
	sys := NewPlayerControllerSystem()

	sys.Update(w)
	if _, weapon, ok := EquippedWeapon(w, e); !ok || weapon.Name != "sword" {
		t.Fatalf("expected the sword equipped")
	}
	if ov.Item != 0 {
		t.Fatalf("equip should consume the overlap")
	}
	seq, _ := ecs.Get(w, e, component.AttackSequencerComponent.Kind())
	if seq.Attacking() {
		t.Fatalf("equipping should not swing")
	}

	sys.Update(w)
	if !seq.Attacking() {
		t.Fatalf("second press should attack with the equipped weapon")
	}
}

func TestPlayerControllerPrimaryWithoutWeaponDoesNothing(t *testing.T) {
	w := ecs.NewWorld()
	e := addPlayer(t, w, common.Vec3{})
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	in.PrimaryPressed = true

	NewPlayerControllerSystem().Update(w)

	seq, _ := ecs.Get(w, e, component.AttackSequencerComponent.Kind())
	if seq.Attacking() {
		t.Fatalf("unarmed player should not attack")
	}
}

func TestPlayerControllerDeadPlayerCannotQuickSave(t *testing.T) {
	w := ecs.NewWorld()
	e := addPlayer(t, w, common.Vec3{})
	c, _ := ecs.Get(w, e, component.CharacterComponent.Kind())
	c.Die()
	in, _ := ecs.Get(w, e, component.InputComponent.Kind())
	*in = component.Input{QuickSavePressed: true, QuickLoadPressed: true}

	NewPlayerControllerSystem().Update(w)

	if _, ok := ecs.First(w, component.SaveRequestComponent.Kind()); ok {
		t.Fatalf("dead player should not queue a save")
	}
	if _, ok := ecs.First(w, component.LoadRequestComponent.Kind()); !ok {
		t.Fatalf("dead player should still be able to load")
	}
}
