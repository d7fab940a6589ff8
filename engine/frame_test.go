package engine_test

import (
	"testing"

	"github.com/plus3/pixelworld/ecs"
	"github.com/plus3/pixelworld/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var background = []byte{0x48, 0xb2, 0xe8, 0xff}

func pixelAt(frame []byte, width, x, y int) []byte {
	i := (y*width + x) * engine.RGBASize
	return frame[i : i+engine.RGBASize]
}

func movePlayer(t *testing.T, game *engine.GameState, x, y float64) {
	t.Helper()
	pos := ecs.GetComponentMut[engine.Position](game.World(), game.Player())
	require.NotNil(t, pos)
	pos.X, pos.Y = x, y
}

func TestGenerateFrameLengthAndBackground(t *testing.T) {
	game := newGame(t, 8, 6)
	movePlayer(t, game, 100, 100) // off screen

	frame := game.GenerateFrame()
	require.Len(t, frame, 8*6*4)

	for i := 0; i < len(frame); i += 4 {
		assert.Equal(t, background, frame[i:i+4], "pixel %d", i/4)
	}
}

func TestGenerateFrameBlitsSpriteAtTruncatedPosition(t *testing.T) {
	game := newGame(t, 8, 6)
	movePlayer(t, game, 3.9, 1.2)

	frame := game.GenerateFrame()

	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			inSprite := x >= 3 && x < 5 && y >= 1 && y < 3
			want := background
			if inSprite {
				want = red[:]
			}
			assert.Equal(t, want, pixelAt(frame, 8, x, y), "(%d,%d)", x, y)
		}
	}
}

func TestGenerateFrameClipsSprite(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		inside [][2]int
	}{
		{"top left overhang", -1, -1, [][2]int{{0, 0}}},
		{"bottom right overhang", 3, 2, [][2]int{{3, 2}}},
		{"fully outside", -5, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := newGame(t, 4, 3)
			movePlayer(t, game, tt.x, tt.y)

			frame := game.GenerateFrame()

			lit := 0
			for i := 0; i < len(frame); i += 4 {
				if frame[i] == 0xff && frame[i+1] == 0 {
					lit++
				}
			}
			assert.Equal(t, len(tt.inside), lit)
			for _, p := range tt.inside {
				assert.Equal(t, byte(0xff), pixelAt(frame, 4, p[0], p[1])[0])
			}
		})
	}
}

func TestGenerateFrameSkipsTransparentPixels(t *testing.T) {
	sprite := engine.Sprite{
		Width:  2,
		Height: 1,
		Pixels: []byte{
			0x00, 0xff, 0x00, 0xff,
			0x00, 0x00, 0x00, 0x00,
		},
	}
	game, err := engine.NewGameState(4, 1, stubLoader{engine.DefaultPlayerSprite: sprite})
	require.NoError(t, err)
	movePlayer(t, game, 0, 0)

	frame := game.GenerateFrame()

	assert.Equal(t, []byte{0x00, 0xff, 0x00, 0xff}, pixelAt(frame, 4, 0, 0))
	assert.Equal(t, background, pixelAt(frame, 4, 1, 0))
}

func TestDrawFrameReusesBuffer(t *testing.T) {
	game := newGame(t, 4, 4)
	movePlayer(t, game, 0, 0)

	buf := make([]byte, engine.FrameLen(4, 4))
	game.DrawFrame(buf)
	assert.Equal(t, red[:], pixelAt(buf, 4, 0, 0))

	movePlayer(t, game, 2, 2)
	game.DrawFrame(buf)
	assert.Equal(t, background, pixelAt(buf, 4, 0, 0))
	assert.Equal(t, red[:], pixelAt(buf, 4, 3, 3))

	assert.Panics(t, func() { game.DrawFrame(make([]byte, 3)) })
}

func TestGenerateFrameFollowsSimulation(t *testing.T) {
	game := newGame(t, 10, 10)
	movePlayer(t, game, 0, 0)
	game.UpdatePlayerVelocity(engine.DirectionRight)
	game.UpdatePlayerVelocity(engine.DirectionDown)

	game.UpdateEntityPositions()
	game.UpdateEntityPositions()

	frame := game.GenerateFrame()
	assert.Equal(t, background, pixelAt(frame, 10, 1, 1))
	assert.Equal(t, red[:], pixelAt(frame, 10, 2, 2))
}
