// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"

	"gonum.org/v1/gonum/spatial/r1"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// ClipInterval is a wrapper to use Clip with an r1.Interval instead of
// a separate max and min value
func ClipInterval(value float64, interval r1.Interval) float64 {
	return Clip(value, interval.Min, interval.Max)
}

// ClipSlice clips each element of values to the interval, in place
func ClipSlice(values []float64, interval r1.Interval) []float64 {
	for i := range values {
		values[i] = ClipInterval(values[i], interval)
	}
	return values
}

// Lerp linearly interpolates between a and b, or extrapolates when
// frac lies outside [0, 1]
func Lerp(a, b, frac float64) float64 {
	return a + frac*(b-a)
}

// Fill returns a slice of length n with each element set to value
func Fill(n int, value float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}
