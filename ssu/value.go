package ssu

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/milk9111/ssu/common"
)

// PropertyKind is the type of value an animator produces.
type PropertyKind int

const (
	KindNone PropertyKind = iota
	KindFloat
	KindColor
	KindVector
	KindTexture
	KindInt
)

func (k PropertyKind) String() string {
	switch k {
	case KindFloat:
		return "Float"
	case KindColor:
		return "Color"
	case KindVector:
		return "Vector"
	case KindTexture:
		return "Texture"
	case KindInt:
		return "Int"
	default:
		return fmt.Sprintf("PropertyKind(%d)", int(k))
	}
}

// ParsePropertyKind accepts the lower-case names used in prefab files.
func ParsePropertyKind(s string) (PropertyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "float":
		return KindFloat, nil
	case "color":
		return KindColor, nil
	case "vector":
		return KindVector, nil
	case "texture":
		return KindTexture, nil
	case "int":
		return KindInt, nil
	}
	return KindNone, fmt.Errorf("ssu: unknown property kind %q", s)
}

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

// ColorFrom converts any image/color value. Alpha is un-premultiplied.
func ColorFrom(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float32(n.R) / 0xff,
		G: float32(n.G) / 0xff,
		B: float32(n.B) / 0xff,
		A: float32(n.A) / 0xff,
	}
}

func (c Color) Lerp(to Color, t float32) Color {
	return Color{
		R: common.Lerp(c.R, to.R, t),
		G: common.Lerp(c.G, to.G, t),
		B: common.Lerp(c.B, to.B, t),
		A: common.Lerp(c.A, to.A, t),
	}
}

func (c Color) Slice() []float32 {
	return []float32{c.R, c.G, c.B, c.A}
}

func (c Color) String() string {
	return fmt.Sprintf("RGBA(%.3f, %.3f, %.3f, %.3f)", c.R, c.G, c.B, c.A)
}

// Vec4 is a four component vector.
type Vec4 struct {
	X, Y, Z, W float32
}

func (v Vec4) Lerp(to Vec4, t float32) Vec4 {
	return Vec4{
		X: common.Lerp(v.X, to.X, t),
		Y: common.Lerp(v.Y, to.Y, t),
		Z: common.Lerp(v.Z, to.Z, t),
		W: common.Lerp(v.W, to.W, t),
	}
}

func (v Vec4) Slice() []float32 {
	return []float32{v.X, v.Y, v.Z, v.W}
}

func (v Vec4) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f, %.3f)", v.X, v.Y, v.Z, v.W)
}

// Vec2 is written to materials as (X, Y, 0, 0).
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Vec4() Vec4 {
	return Vec4{X: v.X, Y: v.Y}
}

// TextureID names a texture known to the host renderer. The empty id is an
// unset texture.
type TextureID string

// Value carries exactly one typed property value, selected by Kind.
type Value struct {
	Kind    PropertyKind
	Float   float32
	Color   Color
	Vector  Vec4
	Int     int
	Texture TextureID
}

func FloatValue(f float32) Value { return Value{Kind: KindFloat, Float: f} }
func ColorValue(c Color) Value { return Value{Kind: KindColor, Color: c} }
func VectorValue(v Vec4) Value { return Value{Kind: KindVector, Vector: v} }
func IntValue(i int) Value { return Value{Kind: KindInt, Int: i} }
func TextureValue(id TextureID) Value { return Value{Kind: KindTexture, Texture: id} }

// IsZero reports whether v carries no value at all.
func (v Value) IsZero() bool {
	return v.Kind == KindNone
}

// Equal compares the payload selected by Kind only.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindFloat:
		return v.Float == o.Float
	case KindColor:
		return v.Color == o.Color
	case KindVector:
		return v.Vector == o.Vector
	case KindInt:
		return v.Int == o.Int
	case KindTexture:
		return v.Texture == o.Texture
	}
	return true
}

func (v Value) String() string {
	switch v.Kind {
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindColor:
		return v.Color.String()
	case KindVector:
		return v.Vector.String()
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindTexture:
		if v.Texture == "" {
			return "<no texture>"
		}
		return string(v.Texture)
	}
	return "<none>"
}
