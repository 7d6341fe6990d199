package ssu

import "sort"

// Material is the host engine's material surface.
type Material interface {
	HasProperty(name string) bool
	Float(name string) float32
	Color(name string) Color
	Vector(name string) Vec4
	Int(name string) int
	Texture(name string) TextureID

	SetFloat(name string, v float32)
	SetColor(name string, v Color)
	SetVector(name string, v Vec4)
	SetInt(name string, v int)
	SetTexture(name string, v TextureID)

	EnableKeyword(name string)
	DisableKeyword(name string)
	IsKeywordEnabled(name string) bool
}

// MapMaterial is an in-memory Material. Only declared properties exist;
// setting an undeclared name is ignored like a shader without that uniform.
type MapMaterial struct {
	props    map[string]Value
	keywords map[string]bool

	writes        int
	keywordWrites int
}

// NewMapMaterial declares the given properties with their initial values.
func NewMapMaterial(props map[string]Value) *MapMaterial {
	m := &MapMaterial{
		props:    make(map[string]Value, len(props)),
		keywords: map[string]bool{},
	}
	for name, v := range props {
		m.props[name] = v
	}
	return m
}

func (m *MapMaterial) HasProperty(name string) bool {
	_, ok := m.props[name]
	return ok
}

func (m *MapMaterial) Get(name string) (Value, bool) {
	v, ok := m.props[name]
	return v, ok
}

func (m *MapMaterial) Float(name string) float32 { return m.props[name].Float }
func (m *MapMaterial) Color(name string) Color { return m.props[name].Color }
func (m *MapMaterial) Vector(name string) Vec4 { return m.props[name].Vector }
func (m *MapMaterial) Int(name string) int { return m.props[name].Int }
func (m *MapMaterial) Texture(name string) TextureID { return m.props[name].Texture }

func (m *MapMaterial) SetFloat(name string, v float32) { m.write(name, FloatValue(v)) }
func (m *MapMaterial) SetColor(name string, v Color) { m.write(name, ColorValue(v)) }
func (m *MapMaterial) SetVector(name string, v Vec4) { m.write(name, VectorValue(v)) }
func (m *MapMaterial) SetInt(name string, v int) { m.write(name, IntValue(v)) }
func (m *MapMaterial) SetTexture(name string, v TextureID) { m.write(name, TextureValue(v)) }

func (m *MapMaterial) write(name string, v Value) {
	if !m.HasProperty(name) {
		return
	}
	m.props[name] = v
	m.writes++
}

func (m *MapMaterial) EnableKeyword(name string) {
	m.keywords[name] = true
	m.keywordWrites++
}

func (m *MapMaterial) DisableKeyword(name string) {
	m.keywords[name] = false
	m.keywordWrites++
}

func (m *MapMaterial) IsKeywordEnabled(name string) bool {
	return m.keywords[name]
}

// Writes counts property writes that reached a declared property.
func (m *MapMaterial) Writes() int { return m.writes }

// KeywordWrites counts keyword enable/disable calls.
func (m *MapMaterial) KeywordWrites() int { return m.keywordWrites }

// Names lists declared properties alphabetically.
func (m *MapMaterial) Names() []string {
	names := make([]string, 0, len(m.props))
	for name := range m.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetPropertyBlock copies every override of a committed block onto the
// declared properties without counting writes, so headless tools can use a
// MapMaterial as a Renderer.
func (m *MapMaterial) SetPropertyBlock(b *PropertyBlock) {
	b.Range(func(name string, v Value) bool {
		if m.HasProperty(name) {
			m.props[name] = v
		}
		return true
	})
}
