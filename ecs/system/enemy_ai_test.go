package system

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/d5/tengo/v2"

	"github.com/sagivt1/Adventure-arcade-game/common"
	"github.com/sagivt1/Adventure-arcade-game/ecs"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
	"github.com/sagivt1/Adventure-arcade-game/prefabs"
)

const testEnemyScript = "enemy.tengo"

func addScriptedEnemy(t *testing.T, w *ecs.World, at common.Vec3, script string) (ecs.Entity, *component.AIState) {
	t.Helper()
	e := addEnemy(t, w, at, 50)
	state := &component.AIState{Script: script}
	mustAdd(t, w, e, component.AIStateComponent.Kind(), state)
	return e, state
}

func TestLoadEnemyScriptReadsInitialState(t *testing.T) {
	rt, err := loadEnemyScript(testEnemyScript)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rt.initial != "idle" {
		t.Fatalf("expected idle, got %q", rt.initial)
	}
	if _, err := loadEnemyScript(""); err == nil {
		t.Fatalf("expected an error for an empty path")
	}
	if _, err := loadEnemyScript("missing.tengo"); err == nil {
		t.Fatalf("expected an error for a missing script")
	}
}

func TestEnemyAIChasesPlayerInAgroRange(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDelta(0.1)
	player := addPlayer(t, w, common.Vec3{X: 400})
	enemy, state := addScriptedEnemy(t, w, common.Vec3{}, testEnemyScript)

	sys := NewEnemyAISystem()
	sys.Update(w)

	en, _ := ecs.Get(w, enemy, component.EnemyComponent.Kind())
	if !en.HasValidTarget || en.Target != player.Handle() {
		t.Fatalf("expected player acquired, got %+v", en)
	}
	if state.Current != "chase" {
		t.Fatalf("expected chase, got %q", state.Current)
	}

	sys.Update(w)
	mv, _ := ecs.Get(w, enemy, component.MovementComponent.Kind())
	if math.Abs(mv.Direction.X-1) > 1e-9 || mv.MaxSpeed != 300 || !mv.MovingForward {
		t.Fatalf("expected to move toward the player, got %+v", mv)
	}
}

func TestEnemyAIIgnoresPlayerOutOfRange(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, common.Vec3{X: 5000})
	enemy, state := addScriptedEnemy(t, w, common.Vec3{}, testEnemyScript)

	NewEnemyAISystem().Update(w)

	en, _ := ecs.Get(w, enemy, component.EnemyComponent.Kind())
	if en.HasValidTarget || state.Current != "idle" {
		t.Fatalf("expected idle without target, got %q %+v", state.Current, en)
	}
}

func TestEnemyAIAttacksAndDealsDamage(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDelta(0.1)
	player := addPlayer(t, w, common.Vec3{X: 100})
	enemy, state := addScriptedEnemy(t, w, common.Vec3{}, testEnemyScript)
	sys := NewEnemyAISystem()

	sys.Update(w)
	sys.Update(w)
	if state.Current != "attack" {
		t.Fatalf("expected attack, got %q", state.Current)
	}

	sys.Update(w)
	en, _ := ecs.Get(w, enemy, component.EnemyComponent.Kind())
	anim, _ := ecs.Get(w, enemy, component.AnimatorComponent.Kind())
	if !en.Attacking || anim.Section != enemyAttackSection || en.AttackTimer != en.AttackDelay {
		t.Fatalf("expected attack started, got attacking=%v section=%q timer=%v", en.Attacking, anim.Section, en.AttackTimer)
	}
	tf, _ := ecs.Get(w, enemy, component.TransformComponent.Kind())
	if tf.Rotation.Yaw != 0 {
		t.Fatalf("expected to face the player, got yaw %v", tf.Rotation.Yaw)
	}

	anim.Fired = []string{component.NotifyActivateCollision}
	sys.Update(w)
	hits := w.Events().DrainType(EventDamage)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	if dmg := hits[0].Data.(DamageEvent); dmg.Target != player.Handle() || dmg.Causer != enemy.Handle() || dmg.Amount != 10 {
		t.Fatalf("unexpected damage %+v", dmg)
	}

	anim.Fired = []string{component.NotifyAttackEnd}
	sys.Update(w)
	if en.Attacking {
		t.Fatalf("AttackEnd should clear the attacking flag")
	}
}

func TestEnemyAIDropsDeadPlayer(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, common.Vec3{X: 300})
	enemy, state := addScriptedEnemy(t, w, common.Vec3{}, testEnemyScript)
	sys := NewEnemyAISystem()
	sys.Update(w)
	if state.Current != "chase" {
		t.Fatalf("expected chase, got %q", state.Current)
	}

	c, _ := ecs.Get(w, player, component.CharacterComponent.Kind())
	c.Die()
	sys.Update(w)

	en, _ := ecs.Get(w, enemy, component.EnemyComponent.Kind())
	if en.HasValidTarget || state.Current != "idle" {
		t.Fatalf("expected idle after the player died, got %q %+v", state.Current, en)
	}
}

func TestEnemyAIEntersDeadState(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, common.Vec3{X: 300})
	enemy, state := addScriptedEnemy(t, w, common.Vec3{}, testEnemyScript)
	sys := NewEnemyAISystem()
	sys.Update(w)

	h, _ := ecs.Get(w, enemy, component.HealthComponent.Kind())
	h.ApplyDamage(100, 0)
	sys.Update(w)

	if state.Current != "dead" {
		t.Fatalf("expected dead, got %q", state.Current)
	}
	mv, _ := ecs.Get(w, enemy, component.MovementComponent.Kind())
	if !mv.Direction.IsNearlyZero() {
		t.Fatalf("dead enemy should stop, got %+v", mv.Direction)
	}
}

func TestEnemyAIMissingScriptIsRemembered(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, common.Vec3{X: 300})
	_, state := addScriptedEnemy(t, w, common.Vec3{}, "missing.tengo")
	sys := NewEnemyAISystem()

	sys.Update(w)
	if !sys.failed["missing.tengo"] || len(sys.runtimes) != 0 {
		t.Fatalf("expected the failure recorded, got failed=%v runtimes=%d", sys.failed, len(sys.runtimes))
	}
	if state.Current != "" {
		t.Fatalf("state should not advance without a script, got %q", state.Current)
	}

	sys.Invalidate("missing.tengo")
	if sys.failed["missing.tengo"] {
		t.Fatalf("invalidate should clear the failure")
	}
}

func TestEnemyAIInvalidateAndPrune(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w, common.Vec3{X: 300})
	a, _ := addScriptedEnemy(t, w, common.Vec3{}, testEnemyScript)
	addScriptedEnemy(t, w, common.Vec3{Y: 50}, testEnemyScript)
	sys := NewEnemyAISystem()
	sys.Update(w)
	if len(sys.runtimes) != 2 {
		t.Fatalf("expected 2 runtimes, got %d", len(sys.runtimes))
	}

	ecs.DestroyEntity(w, a)
	sys.Update(w)
	if len(sys.runtimes) != 1 {
		t.Fatalf("destroyed enemy runtime should be pruned, got %d", len(sys.runtimes))
	}

	sys.Invalidate(testEnemyScript)
	if len(sys.runtimes) != 0 {
		t.Fatalf("invalidate should drop runtimes, got %d", len(sys.runtimes))
	}
}

// writeScript places src under a temporary prefabs dir for the test.
func writeScript(t *testing.T, name, src string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "scripts"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scripts", name), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	prev := prefabs.DiskDir
	prefabs.DiskDir = dir
	t.Cleanup(func() { prefabs.DiskDir = prev })
}

func transitionEngine(es *enemyScript) *tengo.ImmutableMap {
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"transition": &tengo.UserFunction{Name: "transition", Value: func(args ...tengo.Object) (tengo.Object, error) {
			es.request(objectAsString(args[0]))
			return tengo.UndefinedValue, nil
		}},
	}}
}

func TestLoadEnemyScriptRequiresHooks(t *testing.T) {
	writeScript(t, "partial.tengo", `
onEnter := func(engine, state, current) {}
update := func(engine, state, current) {}
`)
	if _, err := loadEnemyScript("partial.tengo"); err == nil {
		t.Fatalf("expected an error for a script without onExit")
	}
}

func TestEnemyScriptFollowsEnterTransitions(t *testing.T) {
	writeScript(t, "chain.tengo", `
initial_state := "start"

onEnter := func(engine, state, current) {
	if is_undefined(state.enters) {
		state.enters = 0
	}
	state.enters += 1
	if current == "a" {
		engine.transition("b")
	}
}

update := func(engine, state, current) {
	if current == "start" {
		engine.transition("a")
	}
}

onExit := func(engine, state, current) {}
`)
	es, err := loadEnemyScript("chain.tengo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	state := &component.AIState{}
	if err := es.step(state, transitionEngine(es)); err != nil {
		t.Fatalf("step: %v", err)
	}
	if state.Current != "b" {
		t.Fatalf("expected b, got %q", state.Current)
	}
	if got := objectAsString(es.memory.Value["enters"]); got != "3" {
		t.Fatalf("expected 3 enters (start, a, b), got %s", got)
	}
}

func TestEnemyScriptStopsEndlessTransitions(t *testing.T) {
	writeScript(t, "loop.tengo", `
onEnter := func(engine, state, current) {
	if current == "ping" {
		engine.transition("pong")
	} else if current == "pong" {
		engine.transition("ping")
	}
}
update := func(engine, state, current) { engine.transition("ping") }
onExit := func(engine, state, current) {}
`)
	es, err := loadEnemyScript("loop.tengo")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	state := &component.AIState{}
	if err := es.step(state, transitionEngine(es)); err == nil {
		t.Fatalf("expected a transition chain error")
	}
	if es.pending != "" {
		t.Fatalf("pending transition should be dropped, got %q", es.pending)
	}
}
