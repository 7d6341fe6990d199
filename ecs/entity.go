package ecs

import "strconv"

// Entity is a generational handle. The zero Entity is never alive.
type Entity struct {
	ID  int
	Gen int
}

func (e Entity) Valid() bool {
	return e.ID > 0
}

func (e Entity) String() string {
	return strconv.Itoa(e.ID) + "." + strconv.Itoa(e.Gen)
}
