package renderer

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/pixelworld/config"
	"github.com/plus3/pixelworld/ecs"
	"github.com/plus3/pixelworld/ecs/debugui"
	"github.com/plus3/pixelworld/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeys struct {
	held     map[ebiten.Key]int
	released map[ebiten.Key]bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{
		held:     make(map[ebiten.Key]int),
		released: make(map[ebiten.Key]bool),
	}
}

func (k *fakeKeys) PressDuration(key ebiten.Key) int {
	return k.held[key]
}

func (k *fakeKeys) JustReleased(key ebiten.Key) bool {
	return k.released[key]
}

// press starts holding key this tick.
func (k *fakeKeys) press(key ebiten.Key) {
	k.held[key] = 1
}

// tick ages held keys and clears release events.
func (k *fakeKeys) tick() {
	for key := range k.held {
		k.held[key]++
	}
	k.released = make(map[ebiten.Key]bool)
}

func (k *fakeKeys) release(key ebiten.Key) {
	delete(k.held, key)
	k.released[key] = true
}

type stubLoader struct{}

func (stubLoader) LoadSprite(string) (engine.Sprite, error) {
	return engine.Sprite{Width: 1, Height: 1, Pixels: []byte{1, 2, 3, 255}}, nil
}

func newApp(t *testing.T) (*App, *engine.GameState, *fakeKeys) {
	t.Helper()
	state, err := engine.NewGameState(320, 240, stubLoader{})
	require.NoError(t, err)
	keys := newFakeKeys()
	app := CreateApp(config.Default(), state, WithKeyState(keys))
	return app, state, keys
}

func velocityOf(t *testing.T, state *engine.GameState) engine.Velocity {
	t.Helper()
	v, ok := ecs.GetComponent[engine.Velocity](state.World(), state.Player())
	require.True(t, ok)
	return v
}

func positionOf(t *testing.T, state *engine.GameState) engine.Position {
	t.Helper()
	p, ok := ecs.GetComponent[engine.Position](state.World(), state.Player())
	require.True(t, ok)
	return p
}

func TestUpdatePressMovesPlayer(t *testing.T) {
	app, state, keys := newApp(t)

	keys.press(ebiten.KeyArrowRight)
	require.NoError(t, app.Update())

	assert.Equal(t, engine.Velocity{X: 1}, velocityOf(t, state))
	assert.Equal(t, engine.Position{X: 101, Y: 100}, positionOf(t, state))
}

func TestUpdateHeldKeyRepeats(t *testing.T) {
	app, state, keys := newApp(t)

	keys.press(ebiten.KeyW)
	require.NoError(t, app.Update())
	assert.Equal(t, engine.Velocity{Y: -1}, velocityOf(t, state))

	for i := 1; i < repeatDelay; i++ {
		keys.tick()
		require.NoError(t, app.Update())
	}
	assert.Equal(t, engine.Velocity{Y: -2}, velocityOf(t, state), "first repeat fires after the delay")

	for i := 0; i < repeatInterval; i++ {
		keys.tick()
		require.NoError(t, app.Update())
	}
	assert.Equal(t, engine.Velocity{Y: -3}, velocityOf(t, state))
}

func TestUpdateReleaseZeroesAxis(t *testing.T) {
	app, state, keys := newApp(t)

	keys.press(ebiten.KeyArrowLeft)
	keys.press(ebiten.KeyArrowDown)
	require.NoError(t, app.Update())
	assert.Equal(t, engine.Velocity{X: -1, Y: 1}, velocityOf(t, state))

	keys.tick()
	keys.release(ebiten.KeyArrowLeft)
	require.NoError(t, app.Update())

	assert.Equal(t, engine.Velocity{X: 0, Y: 1}, velocityOf(t, state))
}

func TestUpdateReleaseKeepsAxisWhileOtherKeyHeld(t *testing.T) {
	app, state, keys := newApp(t)

	keys.press(ebiten.KeyArrowLeft)
	keys.press(ebiten.KeyA)
	require.NoError(t, app.Update())
	assert.Equal(t, engine.Velocity{X: -2}, velocityOf(t, state))

	keys.tick()
	keys.release(ebiten.KeyArrowLeft)
	require.NoError(t, app.Update())

	assert.Equal(t, engine.Velocity{X: -2}, velocityOf(t, state))
}

func TestUpdateEscapeTerminates(t *testing.T) {
	app, state, keys := newApp(t)

	keys.press(ebiten.KeyEscape)
	assert.ErrorIs(t, app.Update(), ebiten.Termination)
	assert.Equal(t, engine.Position{X: 100, Y: 100}, positionOf(t, state), "no tick after quitting")
}

func TestUpdateSkipsInputWhenImguiOwnsKeyboard(t *testing.T) {
	app, state, keys := newApp(t)
	state.World().AddSingleton(debugui.ImguiInputState{WantCaptureKeyboard: true})

	keys.press(ebiten.KeyArrowRight)
	require.NoError(t, app.Update())

	assert.Equal(t, engine.Velocity{}, velocityOf(t, state))
}

func TestLayoutIsFrameSize(t *testing.T) {
	app, _, _ := newApp(t)

	w, h := app.Layout(1920, 1080)
	assert.Equal(t, 320, w)
	assert.Equal(t, 240, h)

	ww, wh := app.windowSize()
	assert.Equal(t, 640, ww)
	assert.Equal(t, 480, wh)
}

func TestRepeats(t *testing.T) {
	assert.False(t, repeats(0))
	assert.True(t, repeats(1))
	assert.False(t, repeats(2))
	assert.True(t, repeats(repeatDelay))
	assert.False(t, repeats(repeatDelay+1))
	assert.True(t, repeats(repeatDelay+repeatInterval))
}
