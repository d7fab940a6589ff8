package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// iComponentStorage is the type-erased view of a ComponentStorage[T] held by the World registry.
type iComponentStorage interface {
	Type() reflect.Type
	Len() int
	Has(id EntityId) bool
	GetAny(id EntityId) any
	Entities() iter.Seq[EntityId]

	pointer(id EntityId) unsafe.Pointer
	insertFrom(id EntityId, src unsafe.Pointer)
}
