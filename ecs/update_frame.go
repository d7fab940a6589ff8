package ecs

// UpdateFrame is passed to every system during one Scheduler tick.
type UpdateFrame struct {
	DeltaTime float64
	Tick      uint64
	World     *World
}

func newUpdateFrame(dt float64, tick uint64, world *World) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Tick:      tick,
		World:     world,
	}
}
