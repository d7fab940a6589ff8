package ecs

import (
	"iter"
	"reflect"

	"github.com/rs/zerolog"
)

// World owns the entity allocator, one storage per component type and the singleton
// resources. It is not safe for concurrent use.
type World struct {
	entities   entityAllocator
	registry   *ComponentRegistry
	singletons map[reflect.Type]*singletonEntry
	logger     zerolog.Logger
}

// WorldOption configures a World.
type WorldOption func(*World)

// WithLogger sets the logger used for registry events.
func WithLogger(logger zerolog.Logger) WorldOption {
	return func(w *World) {
		w.logger = logger
	}
}

// NewWorld creates an empty world.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		entities:   newEntityAllocator(),
		registry:   newComponentRegistry(),
		singletons: make(map[reflect.Type]*singletonEntry),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// CreateEntity returns an id distinct from every id previously issued by this world.
func (w *World) CreateEntity() EntityId {
	return w.entities.allocate()
}

// EntityCount returns the number of entities created so far.
func (w *World) EntityCount() int {
	return w.entities.issued()
}

// Entities yields every issued id in allocation order.
func (w *World) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		n := EntityId(w.entities.issued())
		for id := EntityId(1); id <= n; id++ {
			if !yield(id) {
				return
			}
		}
	}
}

// AddComponent attaches value to the entity, overwriting any existing T.
func AddComponent[T any](w *World, id EntityId, value T) {
	RegisterComponent[T](w).Insert(id, value)
}

// GetComponent returns a copy of the entity's T. It never creates a storage.
func GetComponent[T any](w *World, id EntityId) (T, bool) {
	storage := storageOf[T](w)
	if storage == nil {
		var zero T
		return zero, false
	}
	return storage.Get(id)
}

// GetComponentMut returns a pointer to the entity's T, or nil if it has none.
func GetComponentMut[T any](w *World, id EntityId) *T {
	storage := storageOf[T](w)
	if storage == nil {
		return nil
	}
	return storage.GetMut(id)
}

// HasComponent reports whether the entity holds a T.
func HasComponent[T any](w *World, id EntityId) bool {
	storage := storageOf[T](w)
	return storage != nil && storage.Has(id)
}

// GetStorage returns the whole table for T. A type that was never added yields an empty table.
func GetStorage[T any](w *World) *ComponentStorage[T] {
	return RegisterComponent[T](w)
}

// GetComponent returns a pointer to the component of the given type boxed in an any,
// or nil. Intended for tooling that only knows the reflect.Type.
func (w *World) GetComponent(id EntityId, compType reflect.Type) any {
	storage := w.registry.lookup(compType)
	if storage == nil {
		return nil
	}
	return storage.GetAny(id)
}

// HasComponent is the reflect.Type counterpart of HasComponent[T].
func (w *World) HasComponent(id EntityId, compType reflect.Type) bool {
	storage := w.registry.lookup(compType)
	return storage != nil && storage.Has(id)
}

// ComponentTypes lists the types the entity holds, in registration order.
func (w *World) ComponentTypes(id EntityId) []reflect.Type {
	var types []reflect.Type
	for _, t := range w.registry.order {
		if w.registry.storages[t].Has(id) {
			types = append(types, t)
		}
	}
	return types
}

// StorageTypes lists every registered component type in registration order.
func (w *World) StorageTypes() []reflect.Type {
	types := make([]reflect.Type, len(w.registry.order))
	copy(types, w.registry.order)
	return types
}

// StorageLen returns how many entities hold the given type.
func (w *World) StorageLen(compType reflect.Type) int {
	storage := w.registry.lookup(compType)
	if storage == nil {
		return 0
	}
	return storage.Len()
}

// ComponentReader looks up a component by reflect.Type. *World implements it.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a pointer to the entity's T through a ComponentReader, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	ptr, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return ptr
}
