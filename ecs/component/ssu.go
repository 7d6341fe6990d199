package component

import "github.com/milk9111/ssu/ssu"

// SequencerComponent attaches an animator sequencer to an entity. Its
// renderer is whatever draws the entity.
var SequencerComponent = NewComponent[*ssu.Sequencer]("sequencer")

// BinderComponent attaches a shader field binder to an entity.
var BinderComponent = NewComponent[*ssu.Binder]("binder")

// Lifecycle tracks which host hooks already ran for an entity's SSU
// components.
type Lifecycle struct {
	Enabled       bool
	Started       bool
	BinderStarted bool
}

var LifecycleComponent = NewComponent[*Lifecycle]("lifecycle")
