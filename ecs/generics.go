package ecs

import "github.com/milk9111/ssu/ecs/component"

func storeFor[T any](w *World, handle component.ComponentHandle[T], create bool) *SparseSet[T] {
	if w.stores == nil {
		w.stores = map[component.ComponentID]store{}
	}
	if s, ok := w.stores[handle.ID()]; ok {
		return s.(*SparseSet[T])
	}
	if !create {
		return nil
	}
	s := &SparseSet[T]{}
	w.stores[handle.ID()] = s
	return s
}

// Add attaches value to e, replacing a previous value of the same component.
func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	if !handle.Valid() {
		return component.ErrInvalidComponentKind
	}
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, handle, true).Set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	s := storeFor(w, handle, false)
	if s == nil {
		return false
	}
	return s.Remove(e)
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	s := storeFor(w, handle, false)
	return s != nil && s.Has(e)
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	s := storeFor(w, handle, false)
	if s == nil {
		var zero T
		return zero, false
	}
	return s.Get(e)
}

// ForEach visits every entity with the component. The callback must not add
// or remove components of the same type.
func ForEach[T any](w *World, handle component.ComponentHandle[T], fn func(e Entity, v T)) {
	s := storeFor(w, handle, false)
	if s == nil {
		return
	}
	for i, e := range s.denseEntities {
		fn(e, s.denseValues[i])
	}
}

// ForEach2 visits entities that have both components, iterating the smaller
// store.
func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(e Entity, a A, b B)) {
	sa, sb := storeFor(w, ha, false), storeFor(w, hb, false)
	if sa == nil || sb == nil {
		return
	}
	if sa.Len() <= sb.Len() {
		for i, e := range sa.denseEntities {
			if b, ok := sb.Get(e); ok {
				fn(e, sa.denseValues[i], b)
			}
		}
		return
	}
	for i, e := range sb.denseEntities {
		if a, ok := sa.Get(e); ok {
			fn(e, a, sb.denseValues[i])
		}
	}
}
