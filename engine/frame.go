package engine

import "github.com/plus3/pixelworld/ecs"

var backgroundColor = [RGBASize]byte{0x48, 0xb2, 0xe8, 0xff}

// FrameLen is the byte length of a frame for the given dimensions.
func FrameLen(width, height int) int {
	return width * height * RGBASize
}

// GenerateFrame rasterizes the current state into a new RGBA buffer of
// Width()*Height()*4 bytes.
func (g *GameState) GenerateFrame() []byte {
	frame := make([]byte, FrameLen(g.width, g.height))
	g.DrawFrame(frame)
	return frame
}

// DrawFrame rasterizes into frame, which must be FrameLen(Width(), Height()) bytes.
// The background is filled first, then the player sprite is copied at its position
// truncated to whole pixels.
func (g *GameState) DrawFrame(frame []byte) {
	if len(frame) != FrameLen(g.width, g.height) {
		panic("engine: frame buffer has wrong length")
	}
	drawBackground(frame)
	g.drawPlayer(frame)
}

func drawBackground(frame []byte) {
	for i := 0; i < len(frame); i += RGBASize {
		copy(frame[i:i+RGBASize], backgroundColor[:])
	}
}

func (g *GameState) drawPlayer(frame []byte) {
	sprite, ok := ecs.GetComponent[Sprite](g.world, g.player)
	if !ok {
		return
	}
	position, ok := ecs.GetComponent[Position](g.world, g.player)
	if !ok {
		return
	}

	blit(frame, g.width, g.height, &sprite, int(position.X), int(position.Y))
}

// blit copies sprite into frame with its top-left corner at (originX, originY),
// clipping to the frame. Fully transparent pixels are left untouched.
func blit(frame []byte, width, height int, sprite *Sprite, originX, originY int) {
	x0 := max(originX, 0)
	y0 := max(originY, 0)
	x1 := min(originX+sprite.Width, width)
	y1 := min(originY+sprite.Height, height)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			src := sprite.At(x-originX, y-originY)
			if src[3] == 0 {
				continue
			}
			dst := (y*width + x) * RGBASize
			copy(frame[dst:dst+RGBASize], src)
		}
	}
}
