package ecs

import "github.com/milk9111/ssu/ecs/component"

// Phase selects the scheduler a system runs in.
type Phase int

const (
	PhaseUpdate Phase = iota
	PhaseLateUpdate
)

// World owns entities, component stores and the per-frame schedulers.
// Update systems run before late-update systems on every frame.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	update   *Scheduler
	late     *Scheduler
	events   EventQueue

	dt    float32
	frame uint64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores: map[component.ComponentID]store{},
		update: NewScheduler(),
		late:   NewScheduler(),
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its id.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.removeAny(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities lists live entities in id order.
func Entities(w *World) []Entity {
	return w.entities.entities()
}

// AddSystem appends a system to the given phase.
func (w *World) AddSystem(phase Phase, s System) {
	if phase == PhaseLateUpdate {
		w.late.Add(s)
		return
	}
	w.update.Add(s)
}

// Update runs one frame of dt seconds: update systems, late-update systems,
// then drops undrained events.
func (w *World) Update(dt float32) {
	if w == nil {
		return
	}
	w.dt = dt
	w.frame++
	w.update.Update(w)
	w.late.Update(w)
	w.events.flush()
}

// DeltaTime is the duration of the frame being updated.
func (w *World) DeltaTime() float32 {
	return w.dt
}

// Frame counts completed and in-progress updates.
func (w *World) Frame() uint64 {
	return w.frame
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
