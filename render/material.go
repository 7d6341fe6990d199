package render

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ssu/ssu"
)

// MaxTextureSlots is the number of extra images a shader can sample besides
// the sprite in slot 0.
const MaxTextureSlots = 3

// KeywordPrefix is prepended to a keyword name to form its float uniform.
const KeywordPrefix = "Keyword"

// Uniform declares one shader property.
type Uniform struct {
	Name    string
	Default ssu.Value
	// Components trims colors and vectors for vec2/vec3 uniforms. Zero
	// means all four.
	Components int
}

// ShaderMaterial is an ssu.Material over a compiled Kage shader. Texture
// properties are bound to image slots 1..3 in declaration order.
type ShaderMaterial struct {
	Shader *ebiten.Shader

	uniforms map[string]Uniform
	values   map[string]ssu.Value
	slots    []string
	keywords map[string]bool
}

func NewShaderMaterial(shader *ebiten.Shader, uniforms ...Uniform) (*ShaderMaterial, error) {
	m := &ShaderMaterial{
		Shader:   shader,
		uniforms: make(map[string]Uniform, len(uniforms)),
		values:   make(map[string]ssu.Value, len(uniforms)),
		keywords: map[string]bool{},
	}
	for _, u := range uniforms {
		if u.Name == "" {
			return nil, fmt.Errorf("%w: uniform without name", ssu.ErrInvalidConfiguration)
		}
		if _, dup := m.uniforms[u.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate uniform %q", ssu.ErrInvalidConfiguration, u.Name)
		}
		if u.Default.Kind == ssu.KindNone {
			return nil, fmt.Errorf("%w: uniform %q has no kind", ssu.ErrInvalidConfiguration, u.Name)
		}
		if u.Default.Kind == ssu.KindTexture {
			if len(m.slots) == MaxTextureSlots {
				return nil, fmt.Errorf("%w: more than %d textures", ssu.ErrInvalidConfiguration, MaxTextureSlots)
			}
			m.slots = append(m.slots, u.Name)
		}
		m.uniforms[u.Name] = u
		m.values[u.Name] = u.Default
	}
	return m, nil
}

func (m *ShaderMaterial) HasProperty(name string) bool {
	_, ok := m.uniforms[name]
	return ok
}

func (m *ShaderMaterial) Float(name string) float32 { return m.values[name].Float }
func (m *ShaderMaterial) Color(name string) ssu.Color { return m.values[name].Color }
func (m *ShaderMaterial) Vector(name string) ssu.Vec4 { return m.values[name].Vector }
func (m *ShaderMaterial) Int(name string) int { return m.values[name].Int }
func (m *ShaderMaterial) Texture(name string) ssu.TextureID { return m.values[name].Texture }

func (m *ShaderMaterial) SetFloat(name string, v float32) { m.set(name, ssu.FloatValue(v)) }
func (m *ShaderMaterial) SetColor(name string, v ssu.Color) { m.set(name, ssu.ColorValue(v)) }
func (m *ShaderMaterial) SetVector(name string, v ssu.Vec4) { m.set(name, ssu.VectorValue(v)) }
func (m *ShaderMaterial) SetInt(name string, v int) { m.set(name, ssu.IntValue(v)) }
func (m *ShaderMaterial) SetTexture(name string, v ssu.TextureID) { m.set(name, ssu.TextureValue(v)) }

// set ignores undeclared names and kind mismatches.
func (m *ShaderMaterial) set(name string, v ssu.Value) {
	u, ok := m.uniforms[name]
	if !ok || u.Default.Kind != v.Kind {
		return
	}
	m.values[name] = v
}

func (m *ShaderMaterial) EnableKeyword(name string) { m.keywords[name] = true }
func (m *ShaderMaterial) DisableKeyword(name string) { m.keywords[name] = false }

func (m *ShaderMaterial) IsKeywordEnabled(name string) bool {
	return m.keywords[name]
}

// TextureSlots lists texture property names by slot, starting at slot 1.
func (m *ShaderMaterial) TextureSlots() []string {
	return append([]string(nil), m.slots...)
}

// Names lists declared uniforms, sorted.
func (m *ShaderMaterial) Names() []string {
	names := make([]string, 0, len(m.uniforms))
	for name := range m.uniforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolve returns the material value for name with block overrides applied.
func (m *ShaderMaterial) resolve(name string, block *ssu.PropertyBlock) ssu.Value {
	v := m.values[name]
	if block == nil {
		return v
	}
	if o, ok := block.Get(name); ok && o.Kind == v.Kind {
		return o
	}
	return v
}

// Uniforms builds the DrawRectShader uniform map: material values, then the
// block's overrides, then one float per keyword. Textures are not uniforms.
func (m *ShaderMaterial) Uniforms(block *ssu.PropertyBlock) map[string]any {
	out := make(map[string]any, len(m.uniforms)+len(m.keywords))
	for name, u := range m.uniforms {
		v := m.resolve(name, block)
		switch v.Kind {
		case ssu.KindFloat:
			out[name] = v.Float
		case ssu.KindInt:
			out[name] = int32(v.Int)
		case ssu.KindColor:
			out[name] = trim(v.Color.Slice(), u.Components)
		case ssu.KindVector:
			out[name] = trim(v.Vector.Slice(), u.Components)
		}
	}
	for name, on := range m.keywords {
		if on {
			out[KeywordPrefix+name] = float32(1)
		} else {
			out[KeywordPrefix+name] = float32(0)
		}
	}
	return out
}

// Textures returns the texture id bound to each extra slot.
func (m *ShaderMaterial) Textures(block *ssu.PropertyBlock) [MaxTextureSlots]ssu.TextureID {
	var out [MaxTextureSlots]ssu.TextureID
	for i, name := range m.slots {
		out[i] = m.resolve(name, block).Texture
	}
	return out
}

func trim(v []float32, n int) []float32 {
	if n <= 0 || n >= len(v) {
		return v
	}
	return v[:n]
}
