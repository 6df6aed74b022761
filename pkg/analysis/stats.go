package analysis

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"
)

// Stat is an aggregate value that may be uncomputable for a given mosaic
// (for example spacing without a transect). Uncomputed stats are carried
// explicitly, never zero-filled.
type Stat struct {
	Value    float64
	Computed bool
}

// Computed wraps a value in a computed Stat.
func Computed(v float64) Stat {
	return Stat{Value: v, Computed: true}
}

// NotComputed is the explicit marker for aggregates that could not be
// derived from the input.
var NotComputed = Stat{}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean[T constraints.Float](xs []T) T {
	if len(xs) == 0 {
		return 0
	}
	var sum T
	for _, x := range xs {
		sum += x
	}
	return sum / T(len(xs))
}

// Median returns the middle value (mean of the two middle values for even
// lengths), or 0 for an empty slice. The input is not modified.
func Median[T constraints.Float](xs []T) T {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]T, len(xs))
	copy(sorted, xs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// StdDev returns the sample standard deviation. It requires at least two
// values; callers gate on that and report NotComputed otherwise.
func StdDev[T constraints.Float](xs []T) T {
	if len(xs) < 2 {
		return 0
	}
	m := Mean(xs)
	var ss T
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return T(math.Sqrt(float64(ss / T(len(xs)-1))))
}
