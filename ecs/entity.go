package ecs

import "math"

// EntityId is an opaque handle naming a row across all component storages of a World.
// Ids are issued in increasing order starting at 1 and are never reused.
type EntityId uint64

// NilEntity is never issued by a World.
const NilEntity EntityId = 0

// entityAllocator hands out monotonically increasing entity ids.
type entityAllocator struct {
	next EntityId
}

func newEntityAllocator() entityAllocator {
	return entityAllocator{next: 1}
}

// allocate returns a fresh id. Exhausting the id space is an invariant violation.
func (a *entityAllocator) allocate() EntityId {
	if a.next == math.MaxUint64 {
		panic("ecs: entity id space exhausted")
	}
	id := a.next
	a.next++
	return id
}

// issued returns how many ids have been handed out.
func (a *entityAllocator) issued() int {
	return int(a.next - 1)
}
