package system

import (
	"log"

	"github.com/milk9111/ssu/ecs"
	"github.com/milk9111/ssu/ecs/component"
	"github.com/milk9111/ssu/ssu"
)

// SequencerSystem runs the host hooks of every sequencer once, then advances
// it by the frame delta.
type SequencerSystem struct{}

func NewSequencerSystem() *SequencerSystem {
	return &SequencerSystem{}
}

func (s *SequencerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	dt := w.DeltaTime()
	ecs.ForEach(w, component.SequencerComponent, func(e ecs.Entity, seq *ssu.Sequencer) {
		if seq == nil {
			return
		}
		life, ok := lifecycleFor(w, e)
		if !ok {
			return
		}
		if !life.Enabled {
			life.Enabled = true
			seq.Enable()
		}
		if !life.Started {
			life.Started = true
			seq.Start()
		}
		seq.Tick(dt)
	})
}

// SetEnabled toggles an entity's sequencer the way a host enables and
// disables a component.
func SetEnabled(w *ecs.World, e ecs.Entity, enabled bool) {
	seq, ok := ecs.Get(w, e, component.SequencerComponent)
	if !ok || seq == nil {
		return
	}
	life, ok := lifecycleFor(w, e)
	if !ok || life.Enabled == enabled {
		return
	}
	life.Enabled = enabled
	if enabled {
		seq.Enable()
		return
	}
	seq.Disable()
}

// lifecycleFor returns the entity's lifecycle, attaching a new one when
// missing. It reports false when the lifecycle could not be stored.
func lifecycleFor(w *ecs.World, e ecs.Entity) (*component.Lifecycle, bool) {
	if life, ok := ecs.Get(w, e, component.LifecycleComponent); ok && life != nil {
		return life, true
	}
	life := &component.Lifecycle{}
	if err := ecs.Add(w, e, component.LifecycleComponent, life); err != nil {
		log.Printf("system: lifecycle for entity %d: %v", e.ID, err)
		return nil, false
	}
	return life, true
}
