package ssu

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Curve maps elapsed (scaled) time to a normalized progress value. Results are
// clamped to [0, 1] by the animator, so a curve may overshoot.
type Curve interface {
	Evaluate(t float32) float32
}

// CurveFunc adapts a plain function to Curve.
type CurveFunc func(t float32) float32

func (f CurveFunc) Evaluate(t float32) float32 {
	return f(t)
}

// Keyframe is a curve key with Hermite in/out tangents.
type Keyframe struct {
	Time       float32
	Value      float32
	InTangent  float32
	OutTangent float32
}

// KeyframeCurve evaluates cubic Hermite segments between keys and holds the
// end values outside the key range.
type KeyframeCurve struct {
	keys []Keyframe
}

// NewKeyframeCurve sorts keys by time. An empty key list evaluates to 0.
func NewKeyframeCurve(keys ...Keyframe) *KeyframeCurve {
	sorted := append([]Keyframe(nil), keys...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })
	return &KeyframeCurve{keys: sorted}
}

// Linear is the default curve: a straight line from (0, 0) to (1, 1).
func Linear() *KeyframeCurve {
	return LinearBetween(0, 0, 1, 1)
}

// LinearBetween builds a two key straight-line curve.
func LinearBetween(timeStart, valueStart, timeEnd, valueEnd float32) *KeyframeCurve {
	if timeStart == timeEnd {
		return NewKeyframeCurve(Keyframe{Time: timeStart, Value: valueEnd})
	}
	slope := (valueEnd - valueStart) / (timeEnd - timeStart)
	return NewKeyframeCurve(
		Keyframe{Time: timeStart, Value: valueStart, OutTangent: slope, InTangent: slope},
		Keyframe{Time: timeEnd, Value: valueEnd, OutTangent: slope, InTangent: slope},
	)
}

func (c *KeyframeCurve) Keys() []Keyframe {
	if c == nil {
		return nil
	}
	return append([]Keyframe(nil), c.keys...)
}

func (c *KeyframeCurve) Evaluate(t float32) float32 {
	if c == nil || len(c.keys) == 0 {
		return 0
	}
	first, last := c.keys[0], c.keys[len(c.keys)-1]
	if t <= first.Time {
		return first.Value
	}
	if t >= last.Time {
		return last.Value
	}

	i := sort.Search(len(c.keys), func(i int) bool { return c.keys[i].Time > t })
	k0, k1 := c.keys[i-1], c.keys[i]
	dt := k1.Time - k0.Time
	if dt <= 0 {
		return k1.Value
	}
	s := (t - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2
	return h00*k0.Value + h10*k0.OutTangent*dt + h01*k1.Value + h11*k1.InTangent*dt
}

// Ease is an easing preset over [0, 1]; inputs outside are clamped first.
type Ease func(t float64) float64

func (e Ease) Evaluate(t float32) float32 {
	x := float64(t)
	if x <= 0 {
		return float32(e(0))
	}
	if x >= 1 {
		return float32(e(1))
	}
	return float32(e(x))
}

func EaseLinear(t float64) float64 { return t }

func EaseInQuad(t float64) float64 { return t * t }

func EaseOutQuad(t float64) float64 { return 1 - (1-t)*(1-t) }

func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

func EaseInCubic(t float64) float64 { return t * t * t }

func EaseOutCubic(t float64) float64 { return 1 - math.Pow(1-t, 3) }

func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

var easings = map[string]Ease{
	"linear":            EaseLinear,
	"ease_in_quad":      EaseInQuad,
	"ease_out_quad":     EaseOutQuad,
	"ease_in_out_quad":  EaseInOutQuad,
	"ease_in_cubic":     EaseInCubic,
	"ease_out_cubic":    EaseOutCubic,
	"ease_in_out_cubic": EaseInOutCubic,
	"ease_out_expo":     EaseOutExpo,
}

// EaseByName looks up a preset; names are snake_case, "easeInQuad" style is
// accepted too.
func EaseByName(name string) (Ease, error) {
	key := normalizeEaseName(name)
	if e, ok := easings[key]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("ssu: unknown easing %q", name)
}

func normalizeEaseName(name string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(name) {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		if r == '-' || r == ' ' {
			r = '_'
		}
		b.WriteRune(r)
	}
	return b.String()
}
