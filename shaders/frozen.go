// Package shaders holds the game's shader sources and the field bindings
// that drive them.
package shaders

import (
	_ "embed"

	"github.com/milk9111/ssu/ssu"
)

//go:embed frozen.kage
var FrozenSource []byte

// Keywords toggled by Frozen.
const (
	KeywordSnow      = "FROZEN_SNOW"
	KeywordHighlight = "FROZEN_HIGHLIGHT"
)

// Frozen is the designer-facing state of the frozen shader.
type Frozen struct {
	Fade     float32
	Tint     ssu.Color
	Contrast float32

	SnowColor    ssu.Color
	SnowContrast float32
	SnowDensity  float32
	SnowScale    ssu.Vec2

	HighlightColor           ssu.Color
	HighlightContrast        float32
	HighlightDensity         float32
	HighlightSpeed           ssu.Vec2
	HighlightScale           ssu.Vec2
	HighlightDistortion      ssu.Vec2
	HighlightDistortionSpeed ssu.Vec2
	HighlightDistortionScale ssu.Vec2

	Snow      bool
	Highlight bool
}

// NewFrozen returns fields with both keywords enabled, matching the
// shader's default variant.
func NewFrozen() Frozen {
	return Frozen{Snow: true, Highlight: true}
}

// Bindings declares the Frozen, FrozenSnow and FrozenHighlight property
// groups over f.
func (f *Frozen) Bindings() *ssu.BindingTable {
	return ssu.NewBindingTable().
		Group("Frozen").
		Float("Fade", &f.Fade).
		Color("Tint", &f.Tint).
		Float("Contrast", &f.Contrast).
		Group("FrozenSnow").
		Color("Color", &f.SnowColor).
		Float("Contrast", &f.SnowContrast).
		Float("Density", &f.SnowDensity).
		Vector2("Scale", &f.SnowScale).
		Group("FrozenHighlight").
		Color("Color", &f.HighlightColor).
		Float("Contrast", &f.HighlightContrast).
		Float("Density", &f.HighlightDensity).
		Vector2("Speed", &f.HighlightSpeed).
		Vector2("Scale", &f.HighlightScale).
		Vector2("Distortion", &f.HighlightDistortion).
		Vector2("DistortionSpeed", &f.HighlightDistortionSpeed).
		Vector2("DistortionScale", &f.HighlightDistortionScale).
		ResetGroup().
		Keyword(KeywordSnow, &f.Snow, false).
		Keyword(KeywordHighlight, &f.Highlight, false)
}

// NewFrozenBinder binds f to m.
func NewFrozenBinder(m ssu.Material, f *Frozen) *ssu.Binder {
	return ssu.NewBinder(m, f.Bindings())
}

// Property declares one shader uniform with its default value. Components
// is the width of vec2 uniforms; zero means all four.
type Property struct {
	Name       string
	Default    ssu.Value
	Components int
}

// FrozenProperties lists the uniforms of frozen.kage. Time is advanced by
// the host every frame; FrozenNoise is sampled from image slot 1.
func FrozenProperties() []Property {
	vec2 := func(name string, x, y float32) Property {
		return Property{Name: name, Default: ssu.VectorValue(ssu.Vec4{X: x, Y: y}), Components: 2}
	}
	return []Property{
		{Name: "Time", Default: ssu.FloatValue(0)},
		{Name: "FrozenFade", Default: ssu.FloatValue(0)},
		{Name: "FrozenTint", Default: ssu.ColorValue(ssu.Color{R: 0.55, G: 0.8, B: 1, A: 1})},
		{Name: "FrozenContrast", Default: ssu.FloatValue(1)},
		{Name: "FrozenSnowColor", Default: ssu.ColorValue(ssu.White)},
		{Name: "FrozenSnowContrast", Default: ssu.FloatValue(1)},
		{Name: "FrozenSnowDensity", Default: ssu.FloatValue(0.5)},
		vec2("FrozenSnowScale", 1, 1),
		{Name: "FrozenHighlightColor", Default: ssu.ColorValue(ssu.Color{R: 0.8, G: 0.95, B: 1, A: 1})},
		{Name: "FrozenHighlightContrast", Default: ssu.FloatValue(1)},
		{Name: "FrozenHighlightDensity", Default: ssu.FloatValue(0.3)},
		vec2("FrozenHighlightSpeed", 0.1, 0),
		vec2("FrozenHighlightScale", 1, 1),
		vec2("FrozenHighlightDistortion", 0.02, 0.02),
		vec2("FrozenHighlightDistortionSpeed", 0.5, 0.5),
		vec2("FrozenHighlightDistortionScale", 4, 4),
		{Name: "FrozenNoise", Default: ssu.TextureValue("frozen_noise")},
	}
}

// FrozenDefaults returns FrozenProperties as a name to value map.
func FrozenDefaults() map[string]ssu.Value {
	props := FrozenProperties()
	out := make(map[string]ssu.Value, len(props))
	for _, p := range props {
		out[p.Name] = p.Default
	}
	return out
}
