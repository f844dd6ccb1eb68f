// Package units converts the human-scale parameters used by asset
// descriptions (centimeters, millimeters, percentages, degrees) into the
// single linear unit of the mesh kernel, meters.
package units

import (
	"math"
	"math/rand/v2"
)

// Cm converts centimeters to meters.
func Cm(x float64) float32 {
	return float32(x / 100)
}

// Mm converts millimeters to meters.
func Mm(x float64) float32 {
	return float32(x / 1000)
}

// Percent converts a percentage to a fraction.
func Percent(x float64) float32 {
	return float32(x / 100)
}

// Slope converts an angle in degrees to its sine.
func Slope(deg float64) float32 {
	return float32(math.Sin(deg * math.Pi / 180))
}

// Map linearly maps x from [fromMin, fromMax] to [toMin, toMax].
// A degenerate source interval yields toMin.
func Map(x, toMin, toMax, fromMin, fromMax float64) float64 {
	if fromMax == fromMin {
		return toMin
	}
	return toMin + (x-fromMin)*(toMax-toMin)/(fromMax-fromMin)
}

// MapExp maps x from [fromMin, fromMax] onto [toMin, toMax] exponentially,
// so equal steps of x multiply the result by a constant factor.
// toMin and toMax must be positive.
func MapExp(x, toMin, toMax, fromMin, fromMax float64) float64 {
	x = Map(x, 0, 1, fromMin, fromMax)
	return math.Exp2(x*math.Log2(toMax/toMin) + math.Log2(toMin))
}

// Round rounds x to the given number of decimal digits.
func Round(x float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(x*p) / p
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

// Random returns a uniform value in [lo, hi) rounded to digits decimals.
func Random(r *rand.Rand, lo, hi float64, digits int) float64 {
	return Round(lo+r.Float64()*(hi-lo), digits)
}

// Chance reports true with probability p.
func Chance(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
