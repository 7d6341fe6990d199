// Package script runs custom property evaluations written in tengo.
//
// A script reads the normalized time `t` (a float in [0, 1]) and assigns the
// result to `out`:
//
//	math := import("math")
//	out = 0.5 + 0.5 * math.sin(t * math.pi * 4)
//
// Numbers produce Float (or Int for Int animators), arrays of up to four
// numbers produce Color or Vector, strings produce a texture id. A result
// whose kind differs from the animator's is an error.
package script

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/ssu/ssu"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 50 * time.Millisecond

// Evaluator is a compiled script. It is not safe for concurrent use.
type Evaluator struct {
	Name    string
	Timeout time.Duration

	kind     ssu.PropertyKind
	compiled *tengo.Compiled
}

// Compile prepares src for evaluations producing values of kind.
func Compile(name string, src []byte, kind ssu.PropertyKind) (*Evaluator, error) {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := s.Add("t", 0.0); err != nil {
		return nil, fmt.Errorf("script: %s: %w", name, err)
	}
	if err := s.Add("out", nil); err != nil {
		return nil, fmt.Errorf("script: %s: %w", name, err)
	}
	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", name, err)
	}
	return &Evaluator{Name: name, Timeout: DefaultTimeout, kind: kind, compiled: compiled}, nil
}

// Func returns the evaluator as an animator evaluation function.
func (e *Evaluator) Func() ssu.EvalFunc {
	return e.Evaluate
}

// Evaluate runs the script for normalized time t.
func (e *Evaluator) Evaluate(t float32) (ssu.Value, error) {
	if err := e.compiled.Set("t", float64(t)); err != nil {
		return ssu.Value{}, fmt.Errorf("script: %s: %w", e.Name, err)
	}

	ctx := context.Background()
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}
	if err := e.compiled.RunContext(ctx); err != nil {
		return ssu.Value{}, fmt.Errorf("script: run %s: %w", e.Name, err)
	}

	out := e.compiled.Get("out")
	if out.IsUndefined() {
		return ssu.Value{}, fmt.Errorf("script: %s did not assign out", e.Name)
	}
	v, err := toValue(e.kind, out.Value())
	if err != nil {
		return ssu.Value{}, err
	}
	if v.Kind != e.kind {
		return ssu.Value{}, fmt.Errorf("%w: script %s produced %v for a %v property", ssu.ErrUnsupportedValueType, e.Name, v.Kind, e.kind)
	}
	return v, nil
}

func toValue(kind ssu.PropertyKind, raw any) (ssu.Value, error) {
	switch v := raw.(type) {
	case float64:
		if kind == ssu.KindInt {
			return ssu.IntValue(int(v)), nil
		}
		return ssu.FloatValue(float32(v)), nil
	case int64:
		if kind == ssu.KindInt {
			return ssu.IntValue(int(v)), nil
		}
		return ssu.FloatValue(float32(v)), nil
	case bool:
		if v {
			return ssu.FloatValue(1), nil
		}
		return ssu.FloatValue(0), nil
	case string:
		return ssu.TextureValue(ssu.TextureID(v)), nil
	case []any:
		comps, err := floats(v)
		if err != nil {
			return ssu.Value{}, err
		}
		if kind == ssu.KindColor {
			return ssu.ColorValue(ssu.Color{R: comps[0], G: comps[1], B: comps[2], A: comps[3]}), nil
		}
		if len(v) < 4 {
			comps[3] = 0
		}
		return ssu.VectorValue(ssu.Vec4{X: comps[0], Y: comps[1], Z: comps[2], W: comps[3]}), nil
	}
	return ssu.Value{}, fmt.Errorf("%w: script result %T", ssu.ErrUnsupportedValueType, raw)
}

// floats reads up to four numeric components. Missing ones are 0, except a
// missing fourth component which is 1 so that [r, g, b] is opaque. Vectors
// reset it to 0.
func floats(items []any) ([4]float32, error) {
	out := [4]float32{0, 0, 0, 1}
	if len(items) == 0 || len(items) > 4 {
		return out, fmt.Errorf("%w: expected 1 to 4 components, got %d", ssu.ErrUnsupportedValueType, len(items))
	}
	for i, item := range items {
		switch n := item.(type) {
		case float64:
			out[i] = float32(n)
		case int64:
			out[i] = float32(n)
		default:
			return out, fmt.Errorf("%w: component %d is %T", ssu.ErrUnsupportedValueType, i, item)
		}
	}
	return out, nil
}
