package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View joins several component storages of a World.
// The type T should be a struct with embedded pointer fields for each component type.
// Named fields can be marked as optional using the `ecs:"optional"` struct tag.
// A field of type EntityId, embedded or named, receives the id of the current entity.
type View[T any] struct {
	world       *World
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr

	hasIdField bool
	idOffset   uintptr
}

var entityIdType = reflect.TypeFor[EntityId]()

// NewView creates a new view for the given struct type.
// Embedded pointer fields are always required.
func NewView[T any](world *World) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{
		world:       world,
		types:       make([]reflect.Type, 0, structType.NumField()),
		optional:    make([]bool, 0, structType.NumField()),
		fieldOffset: make([]uintptr, 0, structType.NumField()),
	}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityIdType {
			v.hasIdField = true
			v.idOffset = field.Offset
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		v.types = append(v.types, fieldType.Elem())
		v.fieldOffset = append(v.fieldOffset, field.Offset)

		// Embedded fields (field.Anonymous) are always required
		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}
		v.optional = append(v.optional, isOptional)
	}

	if len(v.requiredTypes()) == 0 {
		panic("View requires at least one required component")
	}

	return v
}

// resolveStorages looks up the storage of every field; entries are nil for unused types.
func (v *View[T]) resolveStorages() []iComponentStorage {
	storages := make([]iComponentStorage, len(v.types))
	for i, t := range v.types {
		storages[i] = v.world.registry.lookup(t)
	}
	return storages
}

func (v *View[T]) populateResult(resultPtr unsafe.Pointer, id EntityId, storages []iComponentStorage) bool {
	for i, storage := range storages {
		fieldPtr := unsafe.Add(resultPtr, v.fieldOffset[i])

		var componentPtr unsafe.Pointer
		if storage != nil {
			componentPtr = storage.pointer(id)
		}

		if componentPtr == nil && !v.optional[i] {
			return false
		}
		*(*unsafe.Pointer)(fieldPtr) = componentPtr
	}

	if v.hasIdField {
		*(*EntityId)(unsafe.Add(resultPtr, v.idOffset)) = id
	}
	return true
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is missing any required components.
// Optional components are set to nil if not present.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	return v.populateResult(unsafe.Pointer(ptr), id, v.resolveStorages())
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// driver picks the smallest required storage to walk. Returns nil when some required
// type has no storage, in which case nothing can match.
func (v *View[T]) driver(storages []iComponentStorage) iComponentStorage {
	var smallest iComponentStorage
	for i, storage := range storages {
		if v.optional[i] {
			continue
		}
		if storage == nil {
			return nil
		}
		if smallest == nil || storage.Len() < smallest.Len() {
			smallest = storage
		}
	}
	return smallest
}

// Iter returns an iterator over all entities that have all the required components for this view.
// The iterator yields (EntityId, T) pairs where T is the populated view struct.
// Adding a new entity to the storage that drives the iteration panics.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		storages := v.resolveStorages()
		driver := v.driver(storages)
		if driver == nil {
			return
		}

		var result T
		resultPtr := unsafe.Pointer(&result)

		for id := range driver.Entities() {
			if !v.populateResult(resultPtr, id, storages) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs).
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates a new entity with components copied from the view struct.
// Every component type in the view must already have a storage (see RegisterComponent).
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)
	storages := v.resolveStorages()

	for i, t := range v.types {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))
		if componentPtr == nil && !v.optional[i] {
			panic("required component is nil in View.Spawn")
		}
		if componentPtr != nil && storages[i] == nil {
			panic("component type " + t.String() + " not registered")
		}
	}

	id := v.world.CreateEntity()
	for i, storage := range storages {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))
		if componentPtr == nil {
			continue
		}
		storage.insertFrom(id, componentPtr)
	}
	return id
}

// requiredTypes returns a slice of only the required (non-optional) component types
func (v *View[T]) requiredTypes() []reflect.Type {
	required := make([]reflect.Type, 0, len(v.types))
	for i, typ := range v.types {
		if !v.optional[i] {
			required = append(required, typ)
		}
	}
	return required
}
