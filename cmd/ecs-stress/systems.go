package main

import (
	"math/rand/v2"

	"github.com/plus3/pixelworld/ecs"
	"github.com/plus3/pixelworld/engine"
)

// Arena bounds the simulated area. Stored as a singleton.
type Arena struct {
	Width  float64
	Height float64
}

// Lifetime counts down ticks until the entity turns around.
type Lifetime struct {
	Remaining int
	Span      int
}

// Spawner tracks growth of the population during the run. Stored as a singleton.
type Spawner struct {
	PerTick int
	Limit   int
	Spawned int
}

// WrapSystem keeps moving entities inside the arena.
type WrapSystem struct {
	Bodies ecs.Query[struct{ *engine.Position }]
	Arena  ecs.Singleton[Arena]
}

func (s *WrapSystem) Execute(frame *ecs.UpdateFrame) {
	arena := s.Arena.Get()
	for body := range s.Bodies.Values() {
		body.Position.X = wrap(body.Position.X, arena.Width)
		body.Position.Y = wrap(body.Position.Y, arena.Height)
	}
}

func wrap(v, size float64) float64 {
	for v < 0 {
		v += size
	}
	for v >= size {
		v -= size
	}
	return v
}

// LifetimeSystem reverses an entity's velocity each time its lifetime runs out.
type LifetimeSystem struct {
	Agents ecs.Query[struct {
		*Lifetime
		*engine.Velocity
	}]
}

func (s *LifetimeSystem) Execute(frame *ecs.UpdateFrame) {
	for agent := range s.Agents.Values() {
		agent.Lifetime.Remaining--
		if agent.Lifetime.Remaining > 0 {
			continue
		}
		agent.Lifetime.Remaining = agent.Lifetime.Span
		agent.Velocity.X = -agent.Velocity.X
		agent.Velocity.Y = -agent.Velocity.Y
	}
}

// SpawnSystem adds a few entities every tick until the limit is reached.
type SpawnSystem struct {
	Spawner ecs.Singleton[Spawner]
	Arena   ecs.Singleton[Arena]
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	spawner := s.Spawner.Get()
	for i := 0; i < spawner.PerTick && spawner.Spawned < spawner.Limit; i++ {
		SpawnRandomEntity(frame.World, *s.Arena.Get(), rand.IntN(4)+1)
		spawner.Spawned++
	}
}

// SpawnRandomEntity creates an entity with a Position and up to three more components.
func SpawnRandomEntity(world *ecs.World, arena Arena, extra int) ecs.EntityId {
	id := world.CreateEntity()
	ecs.AddComponent(world, id, engine.Position{
		X: rand.Float64() * arena.Width,
		Y: rand.Float64() * arena.Height,
	})
	if extra > 1 {
		ecs.AddComponent(world, id, engine.Velocity{
			X: rand.Float64()*2*engine.MaxVelocity - engine.MaxVelocity,
			Y: rand.Float64()*2*engine.MaxVelocity - engine.MaxVelocity,
		})
	}
	if extra > 2 {
		span := rand.IntN(120) + 1
		ecs.AddComponent(world, id, Lifetime{Remaining: span, Span: span})
	}
	if extra > 3 {
		ecs.AddComponent(world, id, engine.Size{Width: 1 + rand.Float64()*4, Height: 1 + rand.Float64()*4})
	}
	return id
}

// RegisterSystems wires the stress systems in execution order.
func RegisterSystems(scheduler *ecs.Scheduler) {
	scheduler.Register(&SpawnSystem{})
	scheduler.Register(&LifetimeSystem{})
	scheduler.Register(&engine.MovementSystem{})
	scheduler.Register(&WrapSystem{})
}
