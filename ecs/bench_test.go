package ecs_test

import (
	"testing"

	"github.com/plus3/pixelworld/ecs"
)

func populate(world *ecs.World, n int) []ecs.EntityId {
	ids := make([]ecs.EntityId, n)
	for i := range ids {
		ids[i] = world.CreateEntity()
		ecs.AddComponent(world, ids[i], Position{X: float32(i), Y: float32(i)})
		if i%2 == 0 {
			ecs.AddComponent(world, ids[i], Velocity{DX: 1, DY: 1})
		}
	}
	return ids
}

func BenchmarkAddComponent(b *testing.B) {
	world := ecs.NewWorld()
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ecs.AddComponent(world, world.CreateEntity(), Position{X: 1, Y: 1})
	}
}

func BenchmarkGetComponent(b *testing.B) {
	world := ecs.NewWorld()
	ids := populate(world, 10000)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = ecs.GetComponent[Position](world, ids[i%len(ids)])
	}
}

func BenchmarkStorageIter(b *testing.B) {
	world := ecs.NewWorld()
	populate(world, 10000)
	storage := ecs.GetStorage[Position](world)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var sum float32
		for _, pos := range storage.Iter() {
			sum += pos.X
		}
		_ = sum
	}
}

func BenchmarkViewIter(b *testing.B) {
	world := ecs.NewWorld()
	populate(world, 10000)
	view := ecs.NewView[movable](world)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for item := range view.Values() {
			item.Position.X += item.Velocity.DX
		}
	}
}

func BenchmarkSnapshotApply(b *testing.B) {
	world := ecs.NewWorld()
	populate(world, 10000)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for _, entry := range ecs.GetStorage[Velocity](world).Snapshot() {
			if pos := ecs.GetComponentMut[Position](world, entry.Entity); pos != nil {
				pos.X += entry.Value.DX
			}
		}
	}
}
