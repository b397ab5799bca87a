package graph

import "math"

// Rescale maps values linearly into [lo, hi]: the minimum goes to lo and the
// maximum to hi. When all values are equal every output is the midpoint.
// Non-finite inputs are treated as the minimum.
func Rescale(values []float64, lo, hi float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	if math.IsInf(minV, 1) || maxV == minV {
		mid := (lo + hi) / 2
		for i := range out {
			out[i] = mid
		}
		return out
	}
	span := maxV - minV
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = minV
		}
		out[i] = lo + (v-minV)/span*(hi-lo)
	}
	return out
}
