package ecs

import (
	"reflect"
	"unsafe"
)

type singletonEntry struct {
	typ     reflect.Type
	dataPtr unsafe.Pointer
}

// AddSingleton stores value as the world-wide instance of its type, replacing any previous one.
// Singleton accessors see the replacement on their next Get; raw pointers from an earlier
// Get or ReadSingleton keep pointing at the old value.
func (w *World) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	if t == nil {
		panic("ecs: cannot add nil singleton")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
		value = reflect.ValueOf(value).Elem().Interface()
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))

	if entry, ok := w.singletons[t]; ok {
		entry.dataPtr = ptr.UnsafePointer()
		w.logger.Debug().Str("singleton", t.String()).Msg("singleton replaced")
		return
	}
	w.singletons[t] = &singletonEntry{
		typ:     t,
		dataPtr: ptr.UnsafePointer(),
	}
	w.logger.Debug().Str("singleton", t.String()).Msg("singleton added")
}

// ReadSingleton sets *target to the stored singleton of type T, where target is a **T.
// Returns false if no such singleton exists.
func (w *World) ReadSingleton(target any) bool {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr || targetValue.Elem().Kind() != reflect.Ptr {
		panic("ecs: ReadSingleton target must be a pointer to a pointer")
	}

	entry := w.getSingletonEntry(targetValue.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	targetValue.Elem().Set(reflect.NewAt(entry.typ, entry.dataPtr))
	return true
}

func (w *World) getSingletonEntry(t reflect.Type) *singletonEntry {
	return w.singletons[t]
}

// Singleton provides efficient access to a single component instance
// that is not associated with any entity. Use this for global game state,
// configuration, or other singleton data.
type Singleton[T any] struct {
	world *World
	entry *singletonEntry
}

// NewSingleton creates a new Singleton accessor for the given world.
// If the singleton does not exist yet it is created from initializer, or the zero value.
func NewSingleton[T any](world *World, initializer ...T) *Singleton[T] {
	componentType := reflect.TypeFor[T]()

	entry := world.getSingletonEntry(componentType)
	if entry == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		world.AddSingleton(value)
		entry = world.getSingletonEntry(componentType)
	}

	return &Singleton[T]{
		world: world,
		entry: entry,
	}
}

// Init binds the Singleton to a world. Called by the Scheduler during system registration.
func (s *Singleton[T]) Init(world *World) {
	s.world = world
	s.entry = nil
	s.lookup()
}

// Get returns a pointer to the singleton, or nil if it has not been added.
func (s *Singleton[T]) Get() *T {
	if !s.Exists() {
		return nil
	}
	return (*T)(s.entry.dataPtr)
}

// lookup binds the world's entry once it exists. Entries are never removed, so a bound
// entry stays current across AddSingleton replacements.
func (s *Singleton[T]) lookup() {
	if s.entry != nil || s.world == nil {
		return
	}
	s.entry = s.world.getSingletonEntry(reflect.TypeFor[T]())
}

// Exists reports whether the singleton has been added to the world.
func (s *Singleton[T]) Exists() bool {
	s.lookup()
	return s.entry != nil
}
