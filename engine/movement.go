package engine

import "github.com/plus3/pixelworld/ecs"

// MovementSystem adds each entity's Velocity into its Position once per tick.
// The query is collected before Execute runs, so positions are written after every
// mover has been gathered.
type MovementSystem struct {
	Movers ecs.Query[struct {
		*Velocity
		*Position
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	for mover := range s.Movers.Values() {
		mover.Position.X += mover.Velocity.X
		mover.Position.Y += mover.Velocity.Y
	}
}
