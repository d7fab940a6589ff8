package engine

import (
	"github.com/plus3/pixelworld/ecs"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const (
	// RGBASize is the number of bytes per pixel.
	RGBASize = 4

	MaxVelocity  = 5.0
	VelocityStep = 1.0

	// TicksPerSecond is the simulation rate assumed by UpdateEntityPositions.
	TicksPerSecond = 60

	DefaultPlayerSprite = "Player.png"
)

var (
	playerSpawn = Position{X: 100, Y: 100}
	playerSize  = Size{Width: 50, Height: 50}
)

// SpriteLoader decodes a named image asset.
type SpriteLoader interface {
	LoadSprite(name string) (Sprite, error)
}

type options struct {
	logger       zerolog.Logger
	playerSprite string
}

// Option configures NewGameState.
type Option func(*options)

// WithLogger sets the logger passed to the World and used for engine events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPlayerSprite overrides the asset name of the player sprite.
func WithPlayerSprite(name string) Option {
	return func(o *options) {
		o.playerSprite = name
	}
}

// GameState owns the World, the simulation scheduler and the player handle.
type GameState struct {
	width     int
	height    int
	world     *ecs.World
	scheduler *ecs.Scheduler
	player    ecs.EntityId
	logger    zerolog.Logger
}

// NewGameState builds a world containing the player entity. The player sprite is
// fetched through sprites; a loader failure is returned.
func NewGameState(width, height int, sprites SpriteLoader, opts ...Option) (*GameState, error) {
	o := options{
		logger:       zerolog.Nop(),
		playerSprite: DefaultPlayerSprite,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if width <= 0 || height <= 0 {
		return nil, eris.Errorf("invalid frame size %dx%d", width, height)
	}

	sprite, err := sprites.LoadSprite(o.playerSprite)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to load player sprite %q", o.playerSprite)
	}
	if !sprite.Valid() {
		return nil, eris.Errorf("sprite %q has %d bytes, want %d", o.playerSprite, len(sprite.Pixels), sprite.Width*sprite.Height*RGBASize)
	}

	world := ecs.NewWorld(ecs.WithLogger(o.logger))

	player := world.CreateEntity()
	ecs.AddComponent(world, player, playerSpawn)
	ecs.AddComponent(world, player, Velocity{})
	ecs.AddComponent(world, player, playerSize)
	ecs.AddComponent(world, player, Player{})
	ecs.AddComponent(world, player, sprite)

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&MovementSystem{})

	o.logger.Debug().
		Uint64("entity", uint64(player)).
		Int("sprite_width", sprite.Width).
		Int("sprite_height", sprite.Height).
		Msg("player spawned")

	return &GameState{
		width:     width,
		height:    height,
		world:     world,
		scheduler: scheduler,
		player:    player,
		logger:    o.logger,
	}, nil
}

func (g *GameState) World() *ecs.World {
	return g.world
}

func (g *GameState) Scheduler() *ecs.Scheduler {
	return g.scheduler
}

// Player returns the handle of the player entity.
func (g *GameState) Player() ecs.EntityId {
	return g.player
}

func (g *GameState) Width() int {
	return g.width
}

func (g *GameState) Height() int {
	return g.height
}

// UpdateEntityPositions advances the simulation by one tick: every entity holding both
// a Velocity and a Position moves by its velocity. Velocity without Position is inert.
func (g *GameState) UpdateEntityPositions() {
	g.scheduler.Once(1.0 / TicksPerSecond)
}

// UpdatePlayerVelocity applies one impulse to the player. An impulse opposite to the
// current motion stops that axis; otherwise the axis steps by VelocityStep, clamped
// to ±MaxVelocity.
// Unknown directions are ignored.
func (g *GameState) UpdatePlayerVelocity(direction Direction) {
	velocity := ecs.GetComponentMut[Velocity](g.world, g.player)
	if velocity == nil {
		return
	}

	switch direction {
	case DirectionUp:
		velocity.Y = stepAxis(velocity.Y, -VelocityStep)
	case DirectionDown:
		velocity.Y = stepAxis(velocity.Y, VelocityStep)
	case DirectionLeft:
		velocity.X = stepAxis(velocity.X, -VelocityStep)
	case DirectionRight:
		velocity.X = stepAxis(velocity.X, VelocityStep)
	}
}

// ZeroPlayerVel stops the player on the selected axes.
func (g *GameState) ZeroPlayerVel(x, y bool) {
	velocity := ecs.GetComponentMut[Velocity](g.world, g.player)
	if velocity == nil {
		return
	}
	if x {
		velocity.X = 0
	}
	if y {
		velocity.Y = 0
	}
}

// stepAxis applies one impulse to a velocity component. An impulse against the
// current motion only stops the axis; the next impulse starts moving the other way.
func stepAxis(v, delta float64) float64 {
	if (delta > 0 && v < 0) || (delta < 0 && v > 0) {
		return 0
	}
	return max(-MaxVelocity, min(MaxVelocity, v+delta))
}
