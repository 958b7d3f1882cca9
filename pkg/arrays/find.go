// Package arrays provides small generic helpers over slices.
package arrays

import (
	"iter"
	"math"
)

// SampleData is the fixed sequence searched by the demo.
var SampleData = []float64{
	1, 3, 8, 4, 5, 0, 6, 9, -5, 55, 5.5,
	math.Inf(1), math.NaN(),
	12, -4, -5.2, 2, 1, 8, -5,
	math.Inf(-1),
	8, 3, 0,
}

// Indexes yields, in ascending order, every position of values for which pred holds.
// Evaluation is lazy: pred runs only as the sequence is consumed.
func Indexes[T any](values []T, pred func(item T, index int) bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, v := range values {
			if pred(v, i) && !yield(i) {
				return
			}
		}
	}
}

// FindIndexes returns every position of values for which pred holds.
// The result is never nil.
func FindIndexes[T any](values []T, pred func(item T, index int) bool) []int {
	out := make([]int, 0)
	for i := range Indexes(values, pred) {
		out = append(out, i)
	}
	return out
}

// GreaterThan builds a predicate matching values strictly above threshold.
// NaN never matches.
func GreaterThan(threshold float64) func(float64, int) bool {
	return func(v float64, _ int) bool {
		return v > threshold
	}
}
