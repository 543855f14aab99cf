package ecs

import "strconv"

// Entity is a generational handle into a World. Components that need to refer
// to another entity store the raw uint64 (see Handle) and resolve it back with
// FromHandle, checking IsAlive before use.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

// Valid reports whether the handle was ever issued. It says nothing about
// liveness.
func (e Entity) Valid() bool {
	return e.id() > 0
}

// Handle returns the raw value for storage inside components.
func (e Entity) Handle() uint64 {
	return uint64(e)
}

// FromHandle converts a stored handle back to an Entity.
func FromHandle(h uint64) Entity {
	return Entity(h)
}
