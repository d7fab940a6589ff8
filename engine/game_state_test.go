package engine_test

import (
	"errors"
	"testing"

	"github.com/plus3/pixelworld/ecs"
	"github.com/plus3/pixelworld/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLoader serves sprites from memory.
type stubLoader map[string]engine.Sprite

func (l stubLoader) LoadSprite(name string) (engine.Sprite, error) {
	sprite, ok := l[name]
	if !ok {
		return engine.Sprite{}, errors.New("no such sprite")
	}
	return sprite, nil
}

// solidSprite builds a w×h sprite filled with one colour.
func solidSprite(w, h int, rgba [4]byte) engine.Sprite {
	pixels := make([]byte, 0, w*h*4)
	for i := 0; i < w*h; i++ {
		pixels = append(pixels, rgba[:]...)
	}
	return engine.Sprite{Width: w, Height: h, Pixels: pixels}
}

var red = [4]byte{0xff, 0x00, 0x00, 0xff}

func newGame(t *testing.T, width, height int) *engine.GameState {
	t.Helper()
	game, err := engine.NewGameState(width, height, stubLoader{
		engine.DefaultPlayerSprite: solidSprite(2, 2, red),
	})
	require.NoError(t, err)
	return game
}

func playerVelocity(t *testing.T, game *engine.GameState) engine.Velocity {
	t.Helper()
	vel, ok := ecs.GetComponent[engine.Velocity](game.World(), game.Player())
	require.True(t, ok)
	return vel
}

func setPlayerVelocity(t *testing.T, game *engine.GameState, v engine.Velocity) {
	t.Helper()
	ptr := ecs.GetComponentMut[engine.Velocity](game.World(), game.Player())
	require.NotNil(t, ptr)
	*ptr = v
}

func TestNewGameStateSpawnsPlayer(t *testing.T) {
	game := newGame(t, 320, 240)
	world := game.World()
	player := game.Player()

	pos, ok := ecs.GetComponent[engine.Position](world, player)
	require.True(t, ok)
	assert.Equal(t, engine.Position{X: 100, Y: 100}, pos)

	size, ok := ecs.GetComponent[engine.Size](world, player)
	require.True(t, ok)
	assert.Equal(t, engine.Size{Width: 50, Height: 50}, size)

	assert.Equal(t, engine.Velocity{}, playerVelocity(t, game))
	assert.True(t, ecs.HasComponent[engine.Player](world, player))
	assert.True(t, ecs.HasComponent[engine.Sprite](world, player))
	assert.Equal(t, 320, game.Width())
	assert.Equal(t, 240, game.Height())
}

func TestNewGameStateErrors(t *testing.T) {
	t.Run("missing sprite", func(t *testing.T) {
		_, err := engine.NewGameState(10, 10, stubLoader{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), engine.DefaultPlayerSprite)
	})

	t.Run("custom sprite name", func(t *testing.T) {
		game, err := engine.NewGameState(10, 10, stubLoader{
			"hero.png": solidSprite(1, 1, red),
		}, engine.WithPlayerSprite("hero.png"))
		require.NoError(t, err)
		assert.NotNil(t, game)
	})

	t.Run("inconsistent sprite", func(t *testing.T) {
		_, err := engine.NewGameState(10, 10, stubLoader{
			engine.DefaultPlayerSprite: {Width: 4, Height: 4, Pixels: make([]byte, 3)},
		})
		assert.Error(t, err)
	})

	t.Run("bad frame size", func(t *testing.T) {
		_, err := engine.NewGameState(0, 10, stubLoader{
			engine.DefaultPlayerSprite: solidSprite(1, 1, red),
		})
		assert.Error(t, err)
	})
}

func TestUpdateEntityPositions(t *testing.T) {
	game := newGame(t, 320, 240)
	world := game.World()

	e := world.CreateEntity()
	ecs.AddComponent(world, e, engine.Position{X: 10, Y: 10})
	ecs.AddComponent(world, e, engine.Velocity{X: 2, Y: -1})

	game.UpdateEntityPositions()
	pos, _ := ecs.GetComponent[engine.Position](world, e)
	assert.Equal(t, engine.Position{X: 12, Y: 9}, pos)

	game.UpdateEntityPositions()
	pos, _ = ecs.GetComponent[engine.Position](world, e)
	assert.Equal(t, engine.Position{X: 14, Y: 8}, pos)
}

func TestUpdateEntityPositionsSkipsVelocityWithoutPosition(t *testing.T) {
	game := newGame(t, 320, 240)
	world := game.World()

	e := world.CreateEntity()
	ecs.AddComponent(world, e, engine.Velocity{X: 3, Y: 3})

	assert.NotPanics(t, game.UpdateEntityPositions)
	assert.False(t, ecs.HasComponent[engine.Position](world, e))
}

func TestUpdateEntityPositionsMovesPlayer(t *testing.T) {
	game := newGame(t, 320, 240)
	setPlayerVelocity(t, game, engine.Velocity{X: -1, Y: 2})

	game.UpdateEntityPositions()

	pos, _ := ecs.GetComponent[engine.Position](game.World(), game.Player())
	assert.Equal(t, engine.Position{X: 99, Y: 102}, pos)
}

func TestUpdatePlayerVelocityClamps(t *testing.T) {
	game := newGame(t, 320, 240)

	for i := 0; i < 5; i++ {
		game.UpdatePlayerVelocity(engine.DirectionRight)
	}
	assert.Equal(t, 5.0, playerVelocity(t, game).X)

	game.UpdatePlayerVelocity(engine.DirectionRight)
	assert.Equal(t, float64(engine.MaxVelocity), playerVelocity(t, game).X)
}

func TestUpdatePlayerVelocityStopsOnReversal(t *testing.T) {
	game := newGame(t, 320, 240)

	for i := 0; i < 3; i++ {
		game.UpdatePlayerVelocity(engine.DirectionRight)
	}
	require.Equal(t, 3.0, playerVelocity(t, game).X)

	game.UpdatePlayerVelocity(engine.DirectionLeft)
	assert.Equal(t, 0.0, playerVelocity(t, game).X, "reversing stops instead of decrementing")

	game.UpdatePlayerVelocity(engine.DirectionLeft)
	assert.Equal(t, -1.0, playerVelocity(t, game).X, "the next impulse moves the other way")

	game.UpdatePlayerVelocity(engine.DirectionRight)
	assert.Equal(t, 0.0, playerVelocity(t, game).X)
}

func TestUpdatePlayerVelocityDirections(t *testing.T) {
	tests := []struct {
		name      string
		start     engine.Velocity
		direction engine.Direction
		want      engine.Velocity
	}{
		{"up from rest", engine.Velocity{}, engine.DirectionUp, engine.Velocity{Y: -1}},
		{"down from rest", engine.Velocity{}, engine.DirectionDown, engine.Velocity{Y: 1}},
		{"left from rest", engine.Velocity{}, engine.DirectionLeft, engine.Velocity{X: -1}},
		{"right from rest", engine.Velocity{}, engine.DirectionRight, engine.Velocity{X: 1}},
		{"up while falling stops", engine.Velocity{X: 2, Y: 4}, engine.DirectionUp, engine.Velocity{X: 2, Y: 0}},
		{"down while rising stops", engine.Velocity{Y: -4}, engine.DirectionDown, engine.Velocity{Y: 0}},
		{"right while moving left stops", engine.Velocity{X: -2}, engine.DirectionRight, engine.Velocity{X: 0}},
		{"up clamps", engine.Velocity{Y: -5}, engine.DirectionUp, engine.Velocity{Y: -5}},
		{"left accelerates", engine.Velocity{X: -2, Y: 1}, engine.DirectionLeft, engine.Velocity{X: -3, Y: 1}},
		{"fractional speed reverses to zero", engine.Velocity{X: 0.5}, engine.DirectionLeft, engine.Velocity{X: 0}},
		{"reversal at max speed stops", engine.Velocity{X: 5, Y: -5}, engine.DirectionLeft, engine.Velocity{X: 0, Y: -5}},
		{"unknown direction", engine.Velocity{X: 1, Y: 1}, engine.Direction("sideways"), engine.Velocity{X: 1, Y: 1}},
		{"empty direction", engine.Velocity{X: 1}, engine.Direction(""), engine.Velocity{X: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := newGame(t, 320, 240)
			setPlayerVelocity(t, game, tt.start)

			game.UpdatePlayerVelocity(tt.direction)

			assert.Equal(t, tt.want, playerVelocity(t, game))
		})
	}
}

func TestZeroPlayerVel(t *testing.T) {
	tests := []struct {
		x, y bool
		want engine.Velocity
	}{
		{true, false, engine.Velocity{X: 0, Y: -3}},
		{false, true, engine.Velocity{X: 4, Y: 0}},
		{true, true, engine.Velocity{}},
		{false, false, engine.Velocity{X: 4, Y: -3}},
	}

	for _, tt := range tests {
		game := newGame(t, 320, 240)
		setPlayerVelocity(t, game, engine.Velocity{X: 4, Y: -3})

		game.ZeroPlayerVel(tt.x, tt.y)

		assert.Equal(t, tt.want, playerVelocity(t, game), "x=%v y=%v", tt.x, tt.y)
	}
}

func TestParseDirection(t *testing.T) {
	for _, name := range []string{"up", "down", "left", "right"} {
		d, ok := engine.ParseDirection(name)
		assert.True(t, ok)
		assert.Equal(t, engine.Direction(name), d)
	}

	_, ok := engine.ParseDirection("UP")
	assert.False(t, ok)
}
