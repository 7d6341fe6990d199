package ecs

// entityStore tracks entity generations and recycles free ids.
type entityStore struct {
	gen   []int
	alive []bool
	free  []int
}

func (s *entityStore) create() Entity {
	if n := len(s.free); n > 0 {
		id := s.free[n-1]
		s.free = s.free[:n-1]
		s.alive[id-1] = true
		return Entity{ID: id, Gen: s.gen[id-1]}
	}
	s.gen = append(s.gen, 0)
	s.alive = append(s.alive, true)
	return Entity{ID: len(s.gen), Gen: 0}
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.ID - 1
	s.gen[idx]++
	s.alive[idx] = false
	s.free = append(s.free, e.ID)
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	if e.ID <= 0 || e.ID > len(s.gen) {
		return false
	}
	idx := e.ID - 1
	return s.alive[idx] && s.gen[idx] == e.Gen
}

// entities lists the live handles in id order.
func (s *entityStore) entities() []Entity {
	out := make([]Entity, 0, len(s.gen)-len(s.free))
	for i, ok := range s.alive {
		if ok {
			out = append(out, Entity{ID: i + 1, Gen: s.gen[i]})
		}
	}
	return out
}
