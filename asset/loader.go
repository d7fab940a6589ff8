// Package asset decodes image files into engine sprites.
package asset

import (
	"image"
	"image/draw"
	_ "image/png"
	"io/fs"
	"os"

	"github.com/plus3/pixelworld/engine"
	"github.com/rotisserie/eris"
)

// FSLoader loads sprites from a filesystem. Any format registered with the image
// package can be decoded; PNG is registered here.
type FSLoader struct {
	FS fs.FS
}

// NewDirLoader loads sprites from files under dir.
func NewDirLoader(dir string) *FSLoader {
	return &FSLoader{FS: os.DirFS(dir)}
}

// LoadSprite opens and decodes the named asset.
func (l *FSLoader) LoadSprite(name string) (engine.Sprite, error) {
	f, err := l.FS.Open(name)
	if err != nil {
		return engine.Sprite{}, eris.Wrapf(err, "failed to open asset %q", name)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return engine.Sprite{}, eris.Wrapf(err, "failed to decode asset %q", name)
	}

	return SpriteFromImage(img), nil
}

// SpriteFromImage flattens img into non-premultiplied RGBA rows.
func SpriteFromImage(img image.Image) engine.Sprite {
	bounds := img.Bounds()
	rgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return engine.Sprite{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: rgba.Pix,
	}
}
