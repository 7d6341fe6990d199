package main

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ssu/render"
)

// generateSprite draws a soft shaded disc used when no image is given.
func generateSprite(w, h int) *ebiten.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	r := math.Min(cx, cy) - 1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			d := math.Hypot(dx, dy) / r
			if d > 1 {
				continue
			}
			light := 1 - 0.5*math.Hypot(dx/r+0.35, dy/r+0.35)
			v := uint8(math.Max(0.2, math.Min(1, light)) * 255)
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: uint8(float64(v) * 0.7), B: uint8(float64(v) * 0.5), A: 255})
		}
	}
	return ebiten.NewImageFromImage(img)
}

// registerNoise creates the noise textures referenced by the frozen
// prefabs. They match the sprite size because Kage needs same-sized sources.
func registerNoise(w, h int) {
	render.RegisterImage("frozen_noise", valueNoise(w, h, 8, 1))
	render.RegisterImage("frozen_noise_fine", valueNoise(w, h, 3, 2))
}

func valueNoise(w, h, cell int, seed int64) *ebiten.Image {
	rng := rand.New(rand.NewSource(seed))
	gw, gh := w/cell+2, h/cell+2
	grid := make([]float64, gw*gh)
	for i := range grid {
		grid[i] = rng.Float64()
	}
	at := func(x, y int) float64 { return grid[(y%gh)*gw+(x%gw)] }

	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx, gy := x/cell, y/cell
			fx := float64(x%cell) / float64(cell)
			fy := float64(y%cell) / float64(cell)
			top := at(gx, gy)*(1-fx) + at(gx+1, gy)*fx
			bottom := at(gx, gy+1)*(1-fx) + at(gx+1, gy+1)*fx
			img.SetGray(x, y, color.Gray{Y: uint8((top*(1-fy) + bottom*fy) * 255)})
		}
	}
	return ebiten.NewImageFromImage(img)
}
