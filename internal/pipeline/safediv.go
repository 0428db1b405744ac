package pipeline

import "math"

// SafeDiv returns n/d, or 0 when d is zero or the quotient is not finite.
// Every rate in the engine goes through it.
func SafeDiv(n, d float64) float64 {
	if d == 0 {
		return 0
	}
	q := n / d
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}
	return q
}

// atLeastOne implements the max(1, x) guard used on day counts and paces.
func atLeastOne(x float64) float64 {
	if x < 1 {
		return 1
	}
	return x
}

// ceilDays rounds a fractional day difference up, ignoring float noise
// such as 1e-15 left over from pro-rating.
func ceilDays(x float64) int {
	c := int(math.Ceil(x - 1e-9))
	if c < 0 {
		return 0
	}
	return c
}

func clampPct(x float64) float64 {
	switch {
	case math.IsNaN(x) || x < 0:
		return 0
	case x > 100:
		return 100
	}
	return x
}
