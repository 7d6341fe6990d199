package ssu

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestLinearCurve(t *testing.T) {
	c := Linear()
	cases := []struct {
		in, want float32
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.25},
		{0.5, 0.5},
		{1, 1},
		{3, 1},
	}
	for _, tc := range cases {
		if got := c.Evaluate(tc.in); !near(got, tc.want) {
			t.Fatalf("Linear(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestKeyframeCurve(t *testing.T) {
	t.Run("holds_outside_range", func(t *testing.T) {
		c := NewKeyframeCurve(
			Keyframe{Time: 2, Value: 1},
			Keyframe{Time: 1, Value: 0.25},
		)
		if got := c.Evaluate(0); got != 0.25 {
			t.Fatalf("before first key got %v", got)
		}
		if got := c.Evaluate(10); got != 1 {
			t.Fatalf("after last key got %v", got)
		}
	})

	t.Run("flat_tangents_ease", func(t *testing.T) {
		c := NewKeyframeCurve(Keyframe{Time: 0, Value: 0}, Keyframe{Time: 1, Value: 1})
		if got := c.Evaluate(0.5); !near(got, 0.5) {
			t.Fatalf("midpoint got %v", got)
		}
		if got := c.Evaluate(0.25); got >= 0.25 {
			t.Fatalf("flat tangents should ease in, got %v", got)
		}
	})

	t.Run("passes_through_keys", func(t *testing.T) {
		c := NewKeyframeCurve(
			Keyframe{Time: 0, Value: 0},
			Keyframe{Time: 0.5, Value: 0.8},
			Keyframe{Time: 1, Value: 1},
		)
		if got := c.Evaluate(0.5); !near(got, 0.8) {
			t.Fatalf("at middle key got %v", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := NewKeyframeCurve().Evaluate(0.5); got != 0 {
			t.Fatalf("empty curve got %v", got)
		}
	})
}

func TestEaseByName(t *testing.T) {
	cases := []struct {
		name string
		in   float32
		want float32
	}{
		{"linear", 0.5, 0.5},
		{"ease_in_quad", 0.5, 0.25},
		{"easeOutQuad", 0.5, 0.75},
		{"ease-in-cubic", 0.5, 0.125},
		{"ease_in_out_cubic", 0.5, 0.5},
		{"ease_out_expo", 2, 1},
		{"ease_in_quad", -1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := EaseByName(c.name)
			if err != nil {
				t.Fatalf("EaseByName: %v", err)
			}
			if got := e.Evaluate(c.in); !near(got, c.want) {
				t.Fatalf("%s(%v) = %v, want %v", c.name, c.in, got, c.want)
			}
		})
	}

	if _, err := EaseByName("bounce_forever"); err == nil {
		t.Fatalf("expected error for unknown easing")
	}
}
