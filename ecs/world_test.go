package ecs

import (
	"testing"

	"github.com/sagivt1/Adventure-arcade-game/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex >= 0 {
				if !DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if IsAlive(w, ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if DestroyEntity(w, ents[c.destroyIndex]) {
					t.Fatalf("second DestroyEntity should return false")
				}
			}
		})
	}
}

func TestStaleHandleAfterReuse(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()

	old := CreateEntity(w)
	if err := Add(w, old, kind, intPtr(1)); err != nil {
		t.Fatal(err)
	}
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected id reuse, got %d and %d", fresh.id(), old.id())
	}
	if fresh == old {
		t.Fatalf("reused slot must carry a new generation")
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle resolved as alive")
	}
	if _, ok := Get(w, old, kind); ok {
		t.Fatalf("stale handle returned a component")
	}
	if _, ok := Get(w, fresh, kind); ok {
		t.Fatalf("fresh entity inherited a component from the destroyed one")
	}
	if !IsAlive(w, FromHandle(fresh.Handle())) {
		t.Fatalf("handle round trip lost liveness")
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]()
	h2 := component.NewComponent[string]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
			teardown: func() bool { return Remove(w, e1, h1.Kind()) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, h2.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2.Kind()) || !Has(w, e2, h2.Kind()) {
					t.Fatalf("expected both entities to have string component")
				}
			},
			teardown: func() bool { return Remove(w, e1, h2.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}

	t.Run("rejects_nil_and_dead", func(t *testing.T) {
		if err := Add[int](w, e1, h1.Kind(), nil); err != component.ErrNilComponent {
			t.Fatalf("expected ErrNilComponent, got %v", err)
		}
		dead := CreateEntity(w)
		DestroyEntity(w, dead)
		if err := Add(w, dead, h1.Kind(), intPtr(1)); err != component.ErrEntityNotAlive {
			t.Fatalf("expected ErrEntityNotAlive, got %v", err)
		}
	})
}

func TestForEachAndQuery(t *testing.T) {
	w := NewWorld()
	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	for _, step := range []struct {
		e    Entity
		kind component.ComponentKind[int]
		v    int
	}{{e1, ka, 1}, {e2, ka, 2}, {e2, kb, 3}, {e3, kb, 4}} {
		if err := Add(w, step.e, step.kind, intPtr(step.v)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	var seen []Entity
	ForEach(w, ka, func(e Entity, _ *int) { seen = append(seen, e) })
	set := toSet(seen)
	if _, ok := set[e1]; !ok {
		t.Fatalf("expected e1 in ForEach result")
	}
	if _, ok := set[e3]; ok {
		t.Fatalf("did not expect e3 in ForEach result")
	}

	both := Query(w, ka, kb)
	if len(both) != 1 || both[0] != e2 {
		t.Fatalf("expected only e2, got %v", both)
	}

	var pairs int
	ForEach2(w, ka, kb, func(e Entity, a *int, b *int) {
		pairs++
		if *a != 2 || *b != 3 {
			t.Fatalf("unexpected values %d %d", *a, *b)
		}
	})
	if pairs != 1 {
		t.Fatalf("expected one pair, got %d", pairs)
	}

	DestroyEntity(w, e2)
	if got := Query(w, ka, kb); len(got) != 0 {
		t.Fatalf("expected empty result after destroy, got %v", got)
	}

	first, ok := First(w, kb)
	if !ok || first != e3 {
		t.Fatalf("expected e3 as first kb holder, got %v ok=%v", first, ok)
	}
}

func TestForEachAllowsDestroyDuringVisit(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]()
	for i := 0; i < 4; i++ {
		e := CreateEntity(w)
		if err := Add(w, e, kind, intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}
	visited := 0
	ForEach(w, kind, func(e Entity, _ *int) {
		visited++
		DestroyEntity(w, e)
	})
	if visited != 4 {
		t.Fatalf("expected 4 visits, got %d", visited)
	}
	if len(Entities(w)) != 0 {
		t.Fatalf("expected no entities left")
	}
}

func TestEventQueueDrainType(t *testing.T) {
	var q EventQueue
	q.Emit("a", 1)
	q.Emit("b", 2)
	q.Emit("a", 3)

	got := q.DrainType("a")
	if len(got) != 2 || got[0].Data != 1 || got[1].Data != 3 {
		t.Fatalf("unexpected drained events %v", got)
	}
	rest := q.Drain()
	if len(rest) != 1 || rest[0].Type != "b" {
		t.Fatalf("unexpected remaining events %v", rest)
	}
}

func TestSchedulerRunsInOrderAndFlushes(t *testing.T) {
	w := NewWorld()
	var order []string
	s := NewScheduler(
		SystemFunc(func(w *World) {
			order = append(order, "first")
			w.Events().Emit("ping", nil)
		}),
		SystemFunc(func(w *World) {
			order = append(order, "second")
			if w.Delta() != 0.5 {
				t.Fatalf("expected delta 0.5, got %v", w.Delta())
			}
		}),
	)
	s.Update(w, 0.5)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected order %v", order)
	}
	if w.Events().Len() != 0 {
		t.Fatalf("expected events flushed after tick")
	}
	if w.Tick() != 1 {
		t.Fatalf("expected tick 1, got %d", w.Tick())
	}
}
