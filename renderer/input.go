package renderer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/pixelworld/engine"
)

// Held keys re-send their direction like an OS key repeat, counted in ticks.
const (
	repeatDelay    = 30
	repeatInterval = 4
)

// KeyState reports keyboard state for the current tick.
type KeyState interface {
	// PressDuration is 0 for a key that is up and 1 on the tick it goes down.
	PressDuration(key ebiten.Key) int
	JustReleased(key ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) PressDuration(key ebiten.Key) int {
	return inpututil.KeyPressDuration(key)
}

func (ebitenKeys) JustReleased(key ebiten.Key) bool {
	return inpututil.IsKeyJustReleased(key)
}

type binding struct {
	direction engine.Direction
	keys      []ebiten.Key
}

var bindings = []binding{
	{engine.DirectionUp, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}},
	{engine.DirectionDown, []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}},
	{engine.DirectionLeft, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}},
	{engine.DirectionRight, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}},
}

func vertical(d engine.Direction) bool {
	return d == engine.DirectionUp || d == engine.DirectionDown
}

func repeats(duration int) bool {
	if duration == 1 {
		return true
	}
	return duration >= repeatDelay && (duration-repeatDelay)%repeatInterval == 0
}

// applyInput turns this tick's key events into velocity changes on state.
func applyInput(keys KeyState, state *engine.GameState) {
	var releasedX, releasedY, heldX, heldY bool

	for _, b := range bindings {
		for _, key := range b.keys {
			if d := keys.PressDuration(key); d > 0 {
				if vertical(b.direction) {
					heldY = true
				} else {
					heldX = true
				}
				if repeats(d) {
					state.UpdatePlayerVelocity(b.direction)
				}
			}
			if keys.JustReleased(key) {
				if vertical(b.direction) {
					releasedY = true
				} else {
					releasedX = true
				}
			}
		}
	}

	zeroX := releasedX && !heldX
	zeroY := releasedY && !heldY
	if zeroX || zeroY {
		state.ZeroPlayerVel(zeroX, zeroY)
	}
}
