package ecs

// SparseSet stores one component type keyed by entity id, densely packed for
// iteration. Removal swaps the last element into the hole.
type SparseSet[T any] struct {
	denseEntities []Entity
	denseValues   []T
	sparse        []int
}

func (s *SparseSet[T]) index(e Entity) (int, bool) {
	if e.ID <= 0 || e.ID-1 >= len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[e.ID-1]
	if idx < 0 || idx >= len(s.denseEntities) || s.denseEntities[idx] != e {
		return 0, false
	}
	return idx, true
}

// Has reports whether e has a value in the set.
func (s *SparseSet[T]) Has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

// Get returns the value for e.
func (s *SparseSet[T]) Get(e Entity) (T, bool) {
	idx, ok := s.index(e)
	if !ok {
		var zero T
		return zero, false
	}
	return s.denseValues[idx], true
}

// Set inserts or replaces the value for e.
func (s *SparseSet[T]) Set(e Entity, v T) {
	if e.ID <= 0 {
		return
	}
	for e.ID-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if idx, ok := s.index(e); ok {
		s.denseValues[idx] = v
		return
	}
	s.denseEntities = append(s.denseEntities, e)
	s.denseValues = append(s.denseValues, v)
	s.sparse[e.ID-1] = len(s.denseEntities) - 1
}

// Remove deletes the value for e if present.
func (s *SparseSet[T]) Remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.denseEntities) - 1
	moved := s.denseEntities[last]

	s.denseEntities[idx] = moved
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[moved.ID-1] = idx

	var zero T
	s.denseValues[last] = zero
	s.denseEntities = s.denseEntities[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[e.ID-1] = -1
	return true
}

func (s *SparseSet[T]) Len() int {
	return len(s.denseEntities)
}

// Entities returns the dense entity list. Do not modify it.
func (s *SparseSet[T]) Entities() []Entity {
	return s.denseEntities
}

// removeAny lets the world drop an entity from every store without knowing T.
func (s *SparseSet[T]) removeAny(e Entity) {
	s.Remove(e)
}

type store interface {
	removeAny(e Entity)
	Len() int
}
