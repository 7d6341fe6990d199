package system

import (
	"github.com/milk9111/ssu/ecs"
	"github.com/milk9111/ssu/ecs/component"
	"github.com/milk9111/ssu/ssu"
)

// EventPropertyChanged is pushed for every value a binder writes.
const EventPropertyChanged = "ssu.property_changed"

// PropertyChangedEvent is the Data of an EventPropertyChanged event.
type PropertyChangedEvent struct {
	Entity ecs.Entity
	Change ssu.PropertyChange
}

// BinderSystem drives binders in one frame phase. The update-phase system
// also starts binders the first time it sees them.
type BinderSystem struct {
	Phase ecs.Phase
	// PublishChanges forwards binder writes to the world event queue.
	PublishChanges bool
}

func NewBinderSystem(phase ecs.Phase) *BinderSystem {
	return &BinderSystem{Phase: phase}
}

func (s *BinderSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.BinderComponent, func(e ecs.Entity, b *ssu.Binder) {
		if b == nil {
			return
		}
		if s.Phase == ecs.PhaseLateUpdate {
			b.LateUpdate()
			return
		}
		life, ok := lifecycleFor(w, e)
		if !ok {
			return
		}
		if !life.BinderStarted {
			life.BinderStarted = true
			if s.PublishChanges {
				b.OnChange(func(c ssu.PropertyChange) {
					w.Events().Push(ecs.Event{
						Type: EventPropertyChanged,
						Data: PropertyChangedEvent{Entity: e, Change: c},
					})
				})
			}
			b.Start()
		}
		b.Update()
	})
}

// PropertyEventSystem hands drained property change events to Handle. Add
// it after the late-update binder system so post-frame writes are seen.
type PropertyEventSystem struct {
	Handle func(PropertyChangedEvent)
}

func (s *PropertyEventSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range w.Events().DrainType(EventPropertyChanged) {
		change, ok := evt.Data.(PropertyChangedEvent)
		if !ok || s.Handle == nil {
			continue
		}
		s.Handle(change)
	}
}
