package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ssu/ecs/component"
	"github.com/milk9111/ssu/ssu"
)

// SpriteRenderer draws an image through a ShaderMaterial. It is the
// ssu.Renderer a sequencer commits its property block to.
type SpriteRenderer struct {
	Image    *ebiten.Image
	Material *ShaderMaterial

	block *ssu.PropertyBlock
}

func NewSpriteRenderer(img *ebiten.Image, m *ShaderMaterial) *SpriteRenderer {
	return &SpriteRenderer{Image: img, Material: m, block: ssu.NewPropertyBlock()}
}

// SetPropertyBlock copies b; later changes to b need another commit.
func (r *SpriteRenderer) SetPropertyBlock(b *ssu.PropertyBlock) {
	if r.block == nil {
		r.block = ssu.NewPropertyBlock()
	}
	r.block.Clear()
	if b == nil {
		return
	}
	b.Range(func(name string, v ssu.Value) bool {
		_ = r.block.Set(name, v)
		return true
	})
}

// PropertyBlock returns the last committed block.
func (r *SpriteRenderer) PropertyBlock() *ssu.PropertyBlock {
	if r.block == nil {
		r.block = ssu.NewPropertyBlock()
	}
	return r.block
}

// Draw renders the sprite with geo applied. Without a shader the image is
// drawn plainly; a texture slot without a registered image falls back to the
// sprite so the shader still receives same-sized sources.
func (r *SpriteRenderer) Draw(screen *ebiten.Image, geo ebiten.GeoM) {
	if r == nil || r.Image == nil || screen == nil {
		return
	}
	if r.Material == nil || r.Material.Shader == nil {
		op := &ebiten.DrawImageOptions{GeoM: geo}
		screen.DrawImage(r.Image, op)
		return
	}

	b := r.Image.Bounds()
	op := &ebiten.DrawRectShaderOptions{GeoM: geo}
	op.Images[0] = r.Image
	for i, id := range r.Material.Textures(r.block) {
		img := GetImage(id)
		if img == nil || img.Bounds().Size() != b.Size() {
			img = r.Image
		}
		op.Images[i+1] = img
	}
	op.Uniforms = r.Material.Uniforms(r.block)
	screen.DrawRectShader(b.Dx(), b.Dy(), r.Material.Shader, op)
}

var SpriteComponent = component.NewComponent[*SpriteRenderer]("sprite")
