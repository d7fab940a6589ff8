package ecs

import (
	"reflect"
)

// ComponentRegistry maps each component type to its storage. Every World owns one,
// so independent worlds never share tables.
type ComponentRegistry struct {
	storages map[reflect.Type]iComponentStorage
	order    []reflect.Type
}

func newComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		storages: make(map[reflect.Type]iComponentStorage),
	}
}

func (r *ComponentRegistry) lookup(t reflect.Type) iComponentStorage {
	return r.storages[t]
}

func (r *ComponentRegistry) add(storage iComponentStorage) {
	t := storage.Type()
	r.storages[t] = storage
	r.order = append(r.order, t)
}

// checkComponentType rejects kinds that are references rather than values.
func checkComponentType(t reflect.Type) {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("ecs: components cannot be pointers, maps, channels, functions or interfaces: " + t.String())
	}
}

// storageOf returns the typed storage for T, or nil if T was never used in the world.
func storageOf[T any](w *World) *ComponentStorage[T] {
	storage := w.registry.lookup(reflect.TypeFor[T]())
	if storage == nil {
		return nil
	}
	return storage.(*ComponentStorage[T])
}

// RegisterComponent creates the storage for T if it does not exist yet and returns it.
// Calling it is optional: AddComponent and GetStorage register lazily.
func RegisterComponent[T any](w *World) *ComponentStorage[T] {
	if storage := storageOf[T](w); storage != nil {
		return storage
	}

	t := reflect.TypeFor[T]()
	checkComponentType(t)

	storage := newComponentStorage[T]()
	w.registry.add(storage)
	w.logger.Debug().Str("component", t.String()).Msg("component storage created")
	return storage
}
