package ssu

import (
	"fmt"

	"github.com/milk9111/ssu/common"
)

// EvalFunc computes a property value from normalized time t in [0, 1].
type EvalFunc func(t float32) (Value, error)

// PropertyAnimator computes the value of a single material property over
// time. It is plain designer data plus the last evaluated time.
type PropertyAnimator struct {
	Active       bool
	PropertyName string
	Kind         PropertyKind
	Curve        Curve
	Speed        float32

	FloatA, FloatB     float32
	ColorA, ColorB     Color
	VectorA, VectorB   *Vec4
	IntA, IntB         int
	TextureA, TextureB TextureID

	// Custom replaces the built-in per-kind interpolation when set.
	Custom EvalFunc

	currentTime float32
}

// NewPropertyAnimator returns an active animator with the stock defaults.
func NewPropertyAnimator(name string, kind PropertyKind) *PropertyAnimator {
	return &PropertyAnimator{
		Active:       true,
		PropertyName: name,
		Kind:         kind,
		Curve:        Linear(),
		Speed:        1,
		FloatB:       1,
		ColorA:       White,
		ColorB:       Black,
		VectorA:      &Vec4{},
		VectorB:      &Vec4{1, 1, 1, 1},
		IntB:         1,
	}
}

func (a *PropertyAnimator) DisplayName() string {
	return fmt.Sprintf("%s (%s)", a.PropertyName, a.Kind)
}

// CurrentTime is the normalized time of the last evaluation.
func (a *PropertyAnimator) CurrentTime() float32 {
	return a.currentTime
}

// Progress is CurrentTime as a percentage.
func (a *PropertyAnimator) Progress() float32 {
	return a.currentTime * 100
}

func (a *PropertyAnimator) IsComplete() bool {
	return a.currentTime >= 1
}

// Reset re-activates the animator and rewinds it.
func (a *PropertyAnimator) Reset() {
	a.Active = true
	a.currentTime = 0
}

// NormalizedTime applies speed and curve to time and clamps to [0, 1].
func (a *PropertyAnimator) NormalizedTime(time float32) float32 {
	curve := a.Curve
	if curve == nil {
		curve = Linear()
	}
	return common.Clamp01(curve.Evaluate(time * a.Speed))
}

// Evaluate returns the property value at the elapsed time using Custom when
// set, otherwise the interpolation for Kind.
func (a *PropertyAnimator) Evaluate(time float32) (Value, error) {
	if a.Custom != nil {
		return a.EvaluateWith(time, a.Custom)
	}
	return a.EvaluateWith(time, a.interpolate)
}

// EvaluateWith validates the animator, advances CurrentTime and runs fn with
// the normalized time.
func (a *PropertyAnimator) EvaluateWith(time float32, fn EvalFunc) (v Value, err error) {
	if fn == nil {
		return Value{}, fmt.Errorf("%w: %q: evaluation function is missing", ErrEvaluation, a.PropertyName)
	}
	if err := a.Validate(); err != nil {
		return Value{}, err
	}

	a.currentTime = a.NormalizedTime(time)

	defer func() {
		if r := recover(); r != nil {
			v, err = Value{}, fmt.Errorf("%w: %q: %v", ErrEvaluation, a.PropertyName, r)
		}
	}()
	v, err = fn(a.currentTime)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %q: %w", ErrEvaluation, a.PropertyName, err)
	}
	return v, nil
}

// HasValidValues reports whether A and B differ for the active kind. An unset
// side of a Vector or Texture pair is accepted.
func (a *PropertyAnimator) HasValidValues() bool {
	switch a.Kind {
	case KindFloat:
		return a.FloatA != a.FloatB
	case KindInt:
		return a.IntA != a.IntB
	case KindColor:
		return a.ColorA != a.ColorB
	case KindVector:
		if a.VectorA == nil || a.VectorB == nil {
			return true
		}
		return *a.VectorA != *a.VectorB
	case KindTexture:
		if a.TextureA == "" || a.TextureB == "" {
			return true
		}
		return a.TextureA != a.TextureB
	}
	return false
}

// Validate wraps HasValidValues with a descriptive ErrInvalidConfiguration.
func (a *PropertyAnimator) Validate() error {
	if a.HasValidValues() {
		return nil
	}
	var detail string
	switch a.Kind {
	case KindFloat:
		detail = fmt.Sprintf("floats (%g, %g)", a.FloatA, a.FloatB)
	case KindInt:
		detail = fmt.Sprintf("ints (%d, %d)", a.IntA, a.IntB)
	case KindColor:
		detail = fmt.Sprintf("colors (%v, %v)", a.ColorA, a.ColorB)
	case KindVector:
		detail = fmt.Sprintf("vectors (%v, %v)", *a.VectorA, *a.VectorB)
	case KindTexture:
		detail = fmt.Sprintf("textures (%s, %s)", a.TextureA, a.TextureB)
	default:
		detail = "unsupported kind"
	}
	return fmt.Errorf("%w: property %q kind %v: %s", ErrInvalidConfiguration, a.PropertyName, a.Kind, detail)
}

func (a *PropertyAnimator) interpolate(t float32) (Value, error) {
	switch a.Kind {
	case KindFloat:
		return FloatValue(common.Lerp(a.FloatA, a.FloatB, t)), nil
	case KindColor:
		return ColorValue(a.ColorA.Lerp(a.ColorB, t)), nil
	case KindVector:
		return VectorValue(derefVec(a.VectorA).Lerp(derefVec(a.VectorB), t)), nil
	case KindInt:
		return IntValue(common.RoundToInt(common.Lerp(float32(a.IntA), float32(a.IntB), t))), nil
	case KindTexture:
		if t < 0.5 {
			return TextureValue(a.TextureA), nil
		}
		return TextureValue(a.TextureB), nil
	}
	return Value{}, fmt.Errorf("%w: kind %v", ErrUnsupportedValueType, a.Kind)
}

func derefVec(v *Vec4) Vec4 {
	if v == nil {
		return Vec4{}
	}
	return *v
}
