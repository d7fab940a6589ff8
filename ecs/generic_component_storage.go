package ecs

import (
	"iter"
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

const (
	genericBlockSize = 64
)

// Entry is a copied (entity, component) pair produced by ComponentStorage.Snapshot.
type Entry[T any] struct {
	Entity EntityId
	Value  T
}

// ComponentStorage holds every component of type T in a World, keyed by entity.
// Values are stored densely in fixed-size blocks. Blocks are never moved once allocated,
// so pointers returned by GetMut remain valid when more components are inserted.
type ComponentStorage[T any] struct {
	typ       reflect.Type
	blocks    []*[genericBlockSize]T
	entities  []EntityId
	index     *intmap.Map[EntityId, int]
	iterating int
}

func newComponentStorage[T any]() *ComponentStorage[T] {
	return &ComponentStorage[T]{
		typ:   reflect.TypeFor[T](),
		index: intmap.New[EntityId, int](genericBlockSize),
	}
}

func (cs *ComponentStorage[T]) slot(index int) *T {
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

// Insert stores value for the entity, replacing any previous value.
// Inserting while the storage is being iterated panics.
func (cs *ComponentStorage[T]) Insert(id EntityId, value T) {
	if cs.iterating > 0 {
		panic("ecs: " + cs.typ.String() + " storage modified during iteration")
	}

	if index, ok := cs.index.Get(id); ok {
		*cs.slot(index) = value
		return
	}

	index := len(cs.entities)
	if index/genericBlockSize >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, new([genericBlockSize]T))
	}

	*cs.slot(index) = value
	cs.entities = append(cs.entities, id)
	cs.index.Put(id, index)
}

// Get returns a copy of the entity's component.
func (cs *ComponentStorage[T]) Get(id EntityId) (T, bool) {
	index, ok := cs.index.Get(id)
	if !ok {
		var zero T
		return zero, false
	}
	return *cs.slot(index), true
}

// GetMut returns a pointer to the entity's component, or nil if it has none.
func (cs *ComponentStorage[T]) GetMut(id EntityId) *T {
	index, ok := cs.index.Get(id)
	if !ok {
		return nil
	}
	return cs.slot(index)
}

// GetAny returns the component as a *T boxed in an any, or nil.
func (cs *ComponentStorage[T]) GetAny(id EntityId) any {
	ptr := cs.GetMut(id)
	if ptr == nil {
		return nil
	}
	return ptr
}

// Has reports whether the entity has a component of type T.
func (cs *ComponentStorage[T]) Has(id EntityId) bool {
	return cs.index.Has(id)
}

// Len returns the number of entities holding a T.
func (cs *ComponentStorage[T]) Len() int {
	return len(cs.entities)
}

// Type returns the component type stored here.
func (cs *ComponentStorage[T]) Type() reflect.Type {
	return cs.typ
}

// Iter yields every (entity, component) pair in insertion order.
// Values are copies; use GetMut to write.
func (cs *ComponentStorage[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		cs.iterating++
		defer func() { cs.iterating-- }()

		for i, id := range cs.entities {
			if !yield(id, *cs.slot(i)) {
				return
			}
		}
	}
}

// Entities yields the entities holding a T in insertion order.
func (cs *ComponentStorage[T]) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		cs.iterating++
		defer func() { cs.iterating-- }()

		for _, id := range cs.entities {
			if !yield(id) {
				return
			}
		}
	}
}

// Snapshot copies out all pairs so callers can mutate the World while walking the result.
func (cs *ComponentStorage[T]) Snapshot() []Entry[T] {
	entries := make([]Entry[T], len(cs.entities))
	for i, id := range cs.entities {
		entries[i] = Entry[T]{Entity: id, Value: *cs.slot(i)}
	}
	return entries
}

func (cs *ComponentStorage[T]) pointer(id EntityId) unsafe.Pointer {
	return unsafe.Pointer(cs.GetMut(id))
}

// insertFrom copies the T at src into the storage.
func (cs *ComponentStorage[T]) insertFrom(id EntityId, src unsafe.Pointer) {
	cs.Insert(id, *(*T)(src))
}
