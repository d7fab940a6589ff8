package ecs_test

import "github.com/plus3/pixelworld/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

// Heading is structurally identical to Velocity but is a distinct component.
type Heading struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

// spawn creates an entity and attaches each component through its typed setter.
func spawn(world *ecs.World, setters ...func(*ecs.World, ecs.EntityId)) ecs.EntityId {
	id := world.CreateEntity()
	for _, set := range setters {
		set(world, id)
	}
	return id
}

func with[T any](value T) func(*ecs.World, ecs.EntityId) {
	return func(w *ecs.World, id ecs.EntityId) {
		ecs.AddComponent(w, id, value)
	}
}
