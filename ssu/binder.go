package ssu

import (
	"fmt"
	"log"
)

// UpdateType selects the frame phase in which a Binder synchronizes.
type UpdateType int

const (
	UpdateNone UpdateType = iota
	UpdatePerFrame
	UpdatePostFrame
)

func ParseUpdateType(s string) (UpdateType, error) {
	switch normalizeEnum(s) {
	case "", "none":
		return UpdateNone, nil
	case "perframe", "update":
		return UpdatePerFrame, nil
	case "postframe", "lateupdate":
		return UpdatePostFrame, nil
	}
	return 0, fmt.Errorf("ssu: unknown update type %q", s)
}

// Binding maps one field to a material property.
type Binding struct {
	Name      string
	ShortName string
	Group     string
	get       func() Value
	set       func(Value)
}

// KeywordBinding maps an optional bool field to a shader keyword.
type KeywordBinding struct {
	Name    string
	Field   *bool
	Initial bool
}

func (k KeywordBinding) enabled() bool {
	if k.Field == nil {
		return k.Initial
	}
	return *k.Field
}

// BindingTable is a declarative list of field to property mappings. Property
// names are the active group prefix followed by the short name.
type BindingTable struct {
	prefix   string
	bindings []Binding
	keywords []KeywordBinding
}

func NewBindingTable() *BindingTable {
	return &BindingTable{}
}

// Group sets the prefix for the bindings that follow.
func (t *BindingTable) Group(prefix string) *BindingTable {
	t.prefix = prefix
	return t
}

// ResetGroup drops the active prefix until the next Group.
func (t *BindingTable) ResetGroup() *BindingTable {
	t.prefix = ""
	return t
}

func (t *BindingTable) add(short string, get func() Value, set func(Value)) *BindingTable {
	t.bindings = append(t.bindings, Binding{
		Name:      t.prefix + short,
		ShortName: short,
		Group:     t.prefix,
		get:       get,
		set:       set,
	})
	return t
}

func (t *BindingTable) Float(short string, f *float32) *BindingTable {
	return t.add(short,
		func() Value { return FloatValue(*f) },
		func(v Value) { *f = v.Float })
}

func (t *BindingTable) Color(short string, c *Color) *BindingTable {
	return t.add(short,
		func() Value { return ColorValue(*c) },
		func(v Value) { *c = v.Color })
}

func (t *BindingTable) Vector(short string, vec *Vec4) *BindingTable {
	return t.add(short,
		func() Value { return VectorValue(*vec) },
		func(v Value) { *vec = v.Vector })
}

// Vector2 reads the first two components and writes (x, y, 0, 0).
func (t *BindingTable) Vector2(short string, vec *Vec2) *BindingTable {
	return t.add(short,
		func() Value { return VectorValue(vec.Vec4()) },
		func(v Value) { *vec = Vec2{X: v.Vector.X, Y: v.Vector.Y} })
}

func (t *BindingTable) Int(short string, i *int) *BindingTable {
	return t.add(short,
		func() Value { return IntValue(*i) },
		func(v Value) { *i = v.Int })
}

func (t *BindingTable) Texture(short string, id *TextureID) *BindingTable {
	return t.add(short,
		func() Value { return TextureValue(*id) },
		func(v Value) { *id = v.Texture })
}

// Bool is written as a float uniform: 1 when true, 0 otherwise.
func (t *BindingTable) Bool(short string, b *bool) *BindingTable {
	return t.add(short,
		func() Value {
			if *b {
				return FloatValue(1)
			}
			return FloatValue(0)
		},
		func(v Value) { *b = v.Float != 0 })
}

// Keyword maps a bool field to a keyword. A nil field always uses initial.
func (t *BindingTable) Keyword(name string, field *bool, initial bool) *BindingTable {
	t.keywords = append(t.keywords, KeywordBinding{Name: name, Field: field, Initial: initial})
	return t
}

func (t *BindingTable) Bindings() []Binding {
	return append([]Binding(nil), t.bindings...)
}

func (t *BindingTable) Keywords() []KeywordBinding {
	return append([]KeywordBinding(nil), t.keywords...)
}

// PropertyChange describes a value pushed to the material.
type PropertyChange struct {
	Name        string
	Previous    Value
	Current     Value
	HadPrevious bool
}

// Binder keeps declared fields and a material in sync, writing only values
// that changed since the last synchronization. Bind at most one Binder per
// material.
type Binder struct {
	Material   Material
	UpdateType UpdateType
	Logger     *log.Logger

	table        *BindingTable
	lastValues   map[string]Value
	lastKeywords map[string]bool
	listeners    []func(PropertyChange)
}

func NewBinder(m Material, table *BindingTable) *Binder {
	if table == nil {
		table = NewBindingTable()
	}
	return &Binder{
		Material:     m,
		table:        table,
		lastValues:   map[string]Value{},
		lastKeywords: map[string]bool{},
	}
}

func (b *Binder) Table() *BindingTable {
	return b.table
}

// OnChange registers a listener for every value actually written.
func (b *Binder) OnChange(fn func(PropertyChange)) {
	if fn == nil {
		return
	}
	b.listeners = append(b.listeners, fn)
}

// Start runs the first-frame initialization: fields from the material, then
// keywords from the fields.
func (b *Binder) Start() {
	b.InitializeFromMaterial()
	b.InitializeKeywords()
}

// InitializeFromMaterial copies current material values into bound fields.
// Properties the material lacks are left untouched.
func (b *Binder) InitializeFromMaterial() {
	if b.Material == nil {
		return
	}
	for _, bind := range b.table.bindings {
		if !b.Material.HasProperty(bind.Name) {
			continue
		}
		cur := bind.get()
		var v Value
		switch cur.Kind {
		case KindFloat:
			v = FloatValue(b.Material.Float(bind.Name))
		case KindColor:
			v = ColorValue(b.Material.Color(bind.Name))
		case KindVector:
			v = VectorValue(b.Material.Vector(bind.Name))
		case KindInt:
			v = IntValue(b.Material.Int(bind.Name))
		case KindTexture:
			v = TextureValue(b.Material.Texture(bind.Name))
		default:
			continue
		}
		bind.set(v)
	}
}

// InitializeKeywords writes every declared keyword's state.
func (b *Binder) InitializeKeywords() {
	if b.Material == nil {
		return
	}
	for _, kw := range b.table.keywords {
		b.writeKeyword(kw.Name, kw.enabled())
	}
}

// SynchronizeToMaterial pushes fields whose value differs from the last
// written one and notifies listeners. Keywords follow the same rule; a
// keyword that was never written is always written.
func (b *Binder) SynchronizeToMaterial() {
	if b.Material == nil {
		return
	}
	for _, bind := range b.table.bindings {
		if !b.Material.HasProperty(bind.Name) {
			continue
		}
		value := bind.get()
		prev, had := b.lastValues[bind.Name]
		if had && prev.Equal(value) {
			continue
		}
		if err := b.apply(bind.Name, value); err != nil {
			b.logger().Printf("ssu: %v", err)
			continue
		}
		b.lastValues[bind.Name] = value
		change := PropertyChange{Name: bind.Name, Previous: prev, Current: value, HadPrevious: had}
		for _, fn := range b.listeners {
			fn(change)
		}
	}

	for _, kw := range b.table.keywords {
		value := kw.enabled()
		if prev, ok := b.lastKeywords[kw.Name]; ok && prev == value {
			continue
		}
		b.writeKeyword(kw.Name, value)
	}
}

// Update is the per-frame hook.
func (b *Binder) Update() {
	if b.UpdateType == UpdatePerFrame {
		b.SynchronizeToMaterial()
	}
}

// LateUpdate is the post-frame hook.
func (b *Binder) LateUpdate() {
	if b.UpdateType == UpdatePostFrame {
		b.SynchronizeToMaterial()
	}
}

func (b *Binder) apply(name string, v Value) error {
	switch v.Kind {
	case KindFloat:
		b.Material.SetFloat(name, v.Float)
	case KindColor:
		b.Material.SetColor(name, v.Color)
	case KindVector:
		b.Material.SetVector(name, v.Vector)
	case KindInt:
		b.Material.SetInt(name, v.Int)
	case KindTexture:
		b.Material.SetTexture(name, v.Texture)
	default:
		return fmt.Errorf("%w: %v for %q", ErrUnsupportedValueType, v.Kind, name)
	}
	return nil
}

func (b *Binder) writeKeyword(name string, enabled bool) {
	if enabled {
		b.Material.EnableKeyword(name)
	} else {
		b.Material.DisableKeyword(name)
	}
	b.lastKeywords[name] = enabled
}

func (b *Binder) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.Default()
}
