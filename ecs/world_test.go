package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/ssu/ecs/component"
)

var (
	testValueComponent = component.NewComponent[int]("test_value")
	testNameComponent  = component.NewComponent[string]("test_name")
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
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("destroying twice should fail")
			}
		})
	}
}

func TestWorldRecyclesIDsWithNewGeneration(t *testing.T) {
	w := NewWorld()
	first := CreateEntity(w)
	DestroyEntity(w, first)
	second := CreateEntity(w)

	if second.ID != first.ID || second.Gen == first.Gen {
		t.Fatalf("expected recycled id with new generation, got %v then %v", first, second)
	}
	if IsAlive(w, first) {
		t.Fatalf("stale handle must not be alive")
	}
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()
	a := CreateEntity(w)
	b := CreateEntity(w)

	if err := Add(w, a, testValueComponent, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := Add(w, b, testValueComponent, 4); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := Add(w, a, testNameComponent, "a"); err != nil {
		t.Fatalf("add: %v", err)
	}

	if v, ok := Get(w, a, testValueComponent); !ok || v != 3 {
		t.Fatalf("expected 3, got %v ok=%v", v, ok)
	}
	if Has(w, b, testNameComponent) {
		t.Fatalf("b has no name")
	}

	sum := 0
	ForEach(w, testValueComponent, func(_ Entity, v int) { sum += v })
	if sum != 7 {
		t.Fatalf("expected sum 7, got %d", sum)
	}

	pairs := 0
	ForEach2(w, testValueComponent, testNameComponent, func(e Entity, v int, name string) {
		if e != a || v != 3 || name != "a" {
			t.Fatalf("unexpected pair %v %d %q", e, v, name)
		}
		pairs++
	})
	if pairs != 1 {
		t.Fatalf("expected one pair, got %d", pairs)
	}

	DestroyEntity(w, a)
	if Has(w, a, testValueComponent) || Has(w, a, testNameComponent) {
		t.Fatalf("destroyed entity kept components")
	}
	if v, ok := Get(w, b, testValueComponent); !ok || v != 4 {
		t.Fatalf("swap-remove broke b: %v ok=%v", v, ok)
	}

	if !Remove(w, b, testValueComponent) || Remove(w, b, testValueComponent) {
		t.Fatalf("remove should succeed once")
	}
}

func TestWorldAddErrors(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	DestroyEntity(w, e)

	if err := Add(w, e, testValueComponent, 1); !errors.Is(err, component.ErrEntityNotAlive) {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
	var zero component.ComponentHandle[int]
	if err := Add(w, CreateEntity(w), zero, 1); !errors.Is(err, component.ErrInvalidComponentKind) {
		t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
	}
}

func TestWorldUpdatePhases(t *testing.T) {
	w := NewWorld()
	var order []string
	w.AddSystem(PhaseLateUpdate, SystemFunc(func(w *World) {
		order = append(order, "late")
		if n := len(w.Events().DrainType("ping")); n != 1 {
			t.Fatalf("late system expected 1 ping, got %d", n)
		}
	}))
	w.AddSystem(PhaseUpdate, SystemFunc(func(w *World) {
		order = append(order, "update")
		if w.DeltaTime() != 0.25 {
			t.Fatalf("expected dt 0.25, got %v", w.DeltaTime())
		}
		w.Events().Push(Event{Type: "ping"})
		w.Events().Push(Event{Type: "other"})
	}))
	w.AddSystem(PhaseUpdate, nil)

	w.Update(0.25)
	if len(order) != 2 || order[0] != "update" || order[1] != "late" {
		t.Fatalf("unexpected order %v", order)
	}
	if w.Events().Len() != 0 {
		t.Fatalf("events must be flushed after update")
	}
	if w.Frame() != 1 {
		t.Fatalf("expected frame 1, got %d", w.Frame())
	}
}

func TestEventQueueDrainType(t *testing.T) {
	var q EventQueue
	q.Push(Event{Type: "a", Data: 1})
	q.Push(Event{Type: "b", Data: 2})
	q.Push(Event{Type: "a", Data: 3})

	got := q.DrainType("a")
	if len(got) != 2 || got[0].Data != 1 || got[1].Data != 3 {
		t.Fatalf("unexpected drained events %v", got)
	}
	rest := q.Drain()
	if len(rest) != 1 || rest[0].Type != "b" {
		t.Fatalf("unexpected remaining events %v", rest)
	}
	if q.Len() != 0 {
		t.Fatalf("queue should be empty")
	}
}
