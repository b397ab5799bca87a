package layout

import (
	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
)

// Algorithm names a layout algorithm.
type Algorithm string

const (
	// AlgorithmDefault picks an algorithm by graph size.
	AlgorithmDefault Algorithm = "default"
	// AlgorithmFR is a general force-directed layout.
	AlgorithmFR Algorithm = "fr"
	// AlgorithmKK is a stress-majorisation layout with alternate physics that
	// favours readable geometry on small graphs.
	AlgorithmKK Algorithm = "kk"
	// AlgorithmLarge is a multilevel force-directed layout for large graphs.
	AlgorithmLarge Algorithm = "large"
	// AlgorithmCircle places nodes evenly on a circle in node order.
	AlgorithmCircle Algorithm = "circle"
	// AlgorithmRandom places nodes uniformly at random from the seed.
	AlgorithmRandom Algorithm = "random"
)

// Size thresholds used by [Resolve].
const (
	LargeGraphNodes = 5000 // above: AlgorithmLarge
	SmallGraphNodes = 100  // below: AlgorithmKK
)

// ValidAlgorithms is the set of supported algorithms.
var ValidAlgorithms = map[Algorithm]bool{
	AlgorithmDefault: true,
	AlgorithmFR:      true,
	AlgorithmKK:      true,
	AlgorithmLarge:   true,
	AlgorithmCircle:  true,
	AlgorithmRandom:  true,
}

// ParseAlgorithm converts a name into an Algorithm. The empty string selects
// [AlgorithmDefault].
func ParseAlgorithm(s string) (Algorithm, error) {
	if s == "" {
		return AlgorithmDefault, nil
	}
	if a := Algorithm(s); ValidAlgorithms[a] {
		return a, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unknown layout %q (must be one of: default, fr, kk, large, circle, random)", s)
}

// Resolve returns the concrete algorithm to run for a graph of n nodes.
// Explicit algorithms are returned unchanged.
func (a Algorithm) Resolve(n int) Algorithm {
	if a != AlgorithmDefault && a != "" {
		return a
	}
	switch {
	case n > LargeGraphNodes:
		return AlgorithmLarge
	case n < SmallGraphNodes:
		return AlgorithmKK
	default:
		return AlgorithmFR
	}
}
