package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ssu/ssu"
)

var images = map[ssu.TextureID]*ebiten.Image{}

// RegisterImage stores an image by texture id.
func RegisterImage(id ssu.TextureID, img *ebiten.Image) {
	if id == "" || img == nil {
		return
	}
	images[id] = img
}

// GetImage returns a registered image, or nil.
func GetImage(id ssu.TextureID) *ebiten.Image {
	if id == "" {
		return nil
	}
	return images[id]
}

// LoadImage decodes an image file and registers it under its path.
func LoadImage(path string) (*ebiten.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("render: empty image path")
	}
	id := ssu.TextureID(filepath.ToSlash(path))
	if img := GetImage(id); img != nil {
		return img, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: read %s: %w", path, err)
	}
	im, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("render: decode %s: %w", path, err)
	}
	img := ebiten.NewImageFromImage(im)
	RegisterImage(id, img)
	return img, nil
}
