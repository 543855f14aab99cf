package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
	"github.com/sagivt1/Adventure-arcade-game/prefabs"
)

// Hooks every enemy script has to define.
var enemyScriptHooks = []string{"onEnter", "update", "onExit"}

// maxEnterChain bounds how many transitions onEnter may request in a
// single tick before the script is considered stuck.
const maxEnterChain = 4

const enemyScriptDispatch = `
if ai_hook == "update" {
	update(ai_engine, ai_memory, ai_state)
} else if ai_hook == "enter" {
	onEnter(ai_engine, ai_memory, ai_state)
} else if ai_hook == "exit" {
	onExit(ai_engine, ai_memory, ai_state)
}
`

// enemyScript is one compiled FSM script bound to a single enemy. memory is
// a map the script may use to keep values between ticks.
type enemyScript struct {
	path     string
	compiled *tengo.Compiled
	memory   *tengo.Map
	initial  component.StateID
	entered  bool
	pending  component.StateID
}

// loadEnemyScript compiles the script at path with the math and text
// modules available. initial_state, when set, overrides "idle".
func loadEnemyScript(path string) (*enemyScript, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("ai: empty script path")
	}
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("ai: load script %s: %w", path, err)
	}

	script := tengo.NewScript(append(append([]byte{}, src...), enemyScriptDispatch...))
	for name, v := range map[string]any{"ai_hook": "", "ai_engine": map[string]any{}, "ai_memory": map[string]any{}, "ai_state": ""} {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("ai: script %s: %w", path, err)
		}
	}
	script.SetImports(stdlib.GetModuleMap("math", "text", "fmt"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: compile script %s: %w", path, err)
	}
	es := &enemyScript{
		path:     path,
		compiled: compiled,
		memory:   &tengo.Map{Value: map[string]tengo.Object{}},
		initial:  "idle",
	}

	// An empty hook runs the top level so globals get their values.
	if err := es.run("", es.initial, nil); err != nil {
		return nil, fmt.Errorf("ai: run script %s: %w", path, err)
	}
	for _, hook := range enemyScriptHooks {
		if !compiled.IsDefined(hook) {
			return nil, fmt.Errorf("ai: script %s: missing %s", path, hook)
		}
	}
	if compiled.IsDefined("initial_state") {
		if s := strings.TrimSpace(objectAsString(compiled.Get("initial_state").Object())); s != "" {
			es.initial = component.StateID(s)
		}
	}
	return es, nil
}

// request records the state the script asked to move to. The change is
// applied after the running hook returns.
func (es *enemyScript) request(next string) {
	if next = strings.TrimSpace(next); next != "" {
		es.pending = component.StateID(next)
	}
}

func (es *enemyScript) run(hook string, current component.StateID, engine *tengo.ImmutableMap) error {
	if engine == nil {
		engine = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	vars := []struct {
		name  string
		value any
	}{
		{"ai_hook", hook},
		{"ai_engine", engine},
		{"ai_memory", es.memory},
		{"ai_state", string(current)},
	}
	for _, v := range vars {
		if err := es.compiled.Set(v.name, v.value); err != nil {
			return err
		}
	}
	return es.compiled.Run()
}

// step runs one tick for state: onEnter the first time, then update, then
// any transitions the hooks requested.
func (es *enemyScript) step(state *component.AIState, engine *tengo.ImmutableMap) error {
	if state.Current == "" {
		state.Current = es.initial
	}
	if !es.entered {
		es.entered = true
		if err := es.run("enter", state.Current, engine); err != nil {
			return fmt.Errorf("onEnter %s: %w", state.Current, err)
		}
	}
	if err := es.run("update", state.Current, engine); err != nil {
		return fmt.Errorf("update %s: %w", state.Current, err)
	}

	for i := 0; es.pending != "" && es.pending != state.Current; i++ {
		if i == maxEnterChain {
			es.pending = ""
			return fmt.Errorf("state %s: transition chain longer than %d", state.Current, maxEnterChain)
		}
		if err := es.run("exit", state.Current, engine); err != nil {
			return fmt.Errorf("onExit %s: %w", state.Current, err)
		}
		state.Current, es.pending = es.pending, ""
		if err := es.run("enter", state.Current, engine); err != nil {
			return fmt.Errorf("onEnter %s: %w", state.Current, err)
		}
	}
	es.pending = ""
	return nil
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	switch v := obj.(type) {
	case nil:
		return ""
	case *tengo.String:
		return v.Value
	case *tengo.Undefined:
		return ""
	default:
		return v.String()
	}
}
