package systems

import "math"

// Round округляет половины вверх (к +Inf): Round(2.5) = 3, Round(-2.5) = -2.
// math.Round округляет от нуля, поэтому для отрицательных половин не подходит.
func Round(x float64) int {
	f := math.Floor(x)
	if x-f >= 0.5 {
		f++
	}
	return int(f)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
