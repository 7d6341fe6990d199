package common

import "math"

// Lerp is exact at both ends: t=0 gives a and t=1 gives b.
func Lerp(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

// Clamp01 limits v to [0, 1]. NaN maps to 0.
func Clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RoundToInt rounds half away from zero.
func RoundToInt(v float32) int {
	return int(math.Round(float64(v)))
}
