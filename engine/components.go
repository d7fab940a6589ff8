package engine

type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

type Size struct {
	Width, Height float64
}

// Player marks the entity driven by keyboard input.
type Player struct{}

// Sprite is a decoded image flattened to non-premultiplied RGBA, row-major.
// len(Pixels) must equal Width*Height*4.
type Sprite struct {
	Width  int
	Height int
	Pixels []byte
}

// At returns the RGBA quadruple at (x, y) inside the sprite.
func (s *Sprite) At(x, y int) []byte {
	i := (y*s.Width + x) * RGBASize
	return s.Pixels[i : i+RGBASize]
}

// Valid reports whether the pixel buffer matches the declared dimensions.
func (s *Sprite) Valid() bool {
	return s.Width >= 0 && s.Height >= 0 && len(s.Pixels) == s.Width*s.Height*RGBASize
}
