package analysis

import (
	"math"
	"sort"
)

// Each helper reports false instead of returning NaN or Inf when the statistic is undefined.

func mean(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs)), true
}

// sampleStdDev uses the n-1 denominator.
func sampleStdDev(xs []float64) (float64, bool) {
	if len(xs) < 2 {
		return 0, false
	}
	m, _ := mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1)), true
}

func median(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}

// coefficientOfVariation returns |std / mean|. Undefined for a zero mean.
func coefficientOfVariation(xs []float64) (float64, bool) {
	m, ok := mean(xs)
	if !ok || m == 0 {
		return 0, false
	}
	sd, ok := sampleStdDev(xs)
	if !ok {
		return 0, false
	}
	return math.Abs(sd / m), true
}

// zScore is undefined when std is zero.
func zScore(x, m, std float64) (float64, bool) {
	if std == 0 || math.IsNaN(std) {
		return 0, false
	}
	return (x - m) / std, true
}
