package ssu

import (
	"fmt"
	"sort"
)

// Renderer receives a committed property block. Implementations copy what
// they need; the block is reused by its owner.
type Renderer interface {
	SetPropertyBlock(b *PropertyBlock)
}

// PropertyBlock is a set of named per-renderer overrides on top of a material.
type PropertyBlock struct {
	values map[string]Value
	order  []string
}

func NewPropertyBlock() *PropertyBlock {
	return &PropertyBlock{values: map[string]Value{}}
}

func (b *PropertyBlock) SetFloat(name string, v float32) { b.set(name, FloatValue(v)) }
func (b *PropertyBlock) SetColor(name string, v Color) { b.set(name, ColorValue(v)) }
func (b *PropertyBlock) SetVector(name string, v Vec4) { b.set(name, VectorValue(v)) }
func (b *PropertyBlock) SetInt(name string, v int) { b.set(name, IntValue(v)) }
func (b *PropertyBlock) SetTexture(name string, v TextureID) { b.set(name, TextureValue(v)) }

// Set writes v through the setter matching its kind.
func (b *PropertyBlock) Set(name string, v Value) error {
	switch v.Kind {
	case KindFloat:
		b.SetFloat(name, v.Float)
	case KindColor:
		b.SetColor(name, v.Color)
	case KindVector:
		b.SetVector(name, v.Vector)
	case KindInt:
		b.SetInt(name, v.Int)
	case KindTexture:
		b.SetTexture(name, v.Texture)
	default:
		return fmt.Errorf("%w: %v for %q", ErrUnsupportedValueType, v.Kind, name)
	}
	return nil
}

func (b *PropertyBlock) set(name string, v Value) {
	if b.values == nil {
		b.values = map[string]Value{}
	}
	if _, ok := b.values[name]; !ok {
		b.order = append(b.order, name)
	}
	b.values[name] = v
}

// Get returns the override for name, if any.
func (b *PropertyBlock) Get(name string) (Value, bool) {
	if b == nil {
		return Value{}, false
	}
	v, ok := b.values[name]
	return v, ok
}

func (b *PropertyBlock) Len() int {
	if b == nil {
		return 0
	}
	return len(b.values)
}

func (b *PropertyBlock) IsEmpty() bool {
	return b.Len() == 0
}

func (b *PropertyBlock) Clear() {
	if b == nil {
		return
	}
	clear(b.values)
	b.order = b.order[:0]
}

// Range visits overrides in first-write order until fn returns false.
func (b *PropertyBlock) Range(fn func(name string, v Value) bool) {
	if b == nil {
		return
	}
	for _, name := range b.order {
		if !fn(name, b.values[name]) {
			return
		}
	}
}

// Names returns the override names sorted alphabetically.
func (b *PropertyBlock) Names() []string {
	if b == nil {
		return nil
	}
	names := append([]string(nil), b.order...)
	sort.Strings(names)
	return names
}

// Clone returns an independent copy.
func (b *PropertyBlock) Clone() *PropertyBlock {
	out := NewPropertyBlock()
	b.Range(func(name string, v Value) bool {
		out.set(name, v)
		return true
	})
	return out
}
