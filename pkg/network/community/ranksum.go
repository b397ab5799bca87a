package community

import (
	"cmp"
	"math"
	"slices"
)

// exactLimit is the sample size below which the exact null distribution is
// used when there are no ties.
const exactLimit = 50

// RankSum runs a two-sided Wilcoxon rank-sum (Mann-Whitney) test of x
// against y and returns its p-value.
//
// Small tie-free samples use the exact distribution of the statistic;
// otherwise the normal approximation with tie and continuity corrections is
// used. Empty samples and degenerate variances yield 1.
func RankSum(x, y []float64) float64 {
	n1, n2 := len(x), len(y)
	if n1 == 0 || n2 == 0 {
		return 1
	}

	type obs struct {
		v    float64
		inX  bool
		rank float64
	}
	all := make([]obs, 0, n1+n2)
	for _, v := range x {
		all = append(all, obs{v: v, inX: true})
	}
	for _, v := range y {
		all = append(all, obs{v: v})
	}
	slices.SortStableFunc(all, func(a, b obs) int { return cmp.Compare(a.v, b.v) })

	ties := 0.0
	hasTies := false
	for i := 0; i < len(all); {
		j := i
		for j < len(all) && all[j].v == all[i].v {
			j++
		}
		avg := float64(i+j+1) / 2 // mean of ranks i+1..j
		for k := i; k < j; k++ {
			all[k].rank = avg
		}
		if t := float64(j - i); t > 1 {
			hasTies = true
			ties += t*t*t - t
		}
		i = j
	}

	rx := 0.0
	for _, o := range all {
		if o.inX {
			rx += o.rank
		}
	}
	w := rx - float64(n1*(n1+1))/2

	if !hasTies && n1 < exactLimit && n2 < exactLimit {
		return exactPValue(w, n1, n2)
	}

	fn1, fn2 := float64(n1), float64(n2)
	n := fn1 + fn2
	z := w - fn1*fn2/2
	sigma := math.Sqrt(fn1 * fn2 / 12 * ((n + 1) - ties/(n*(n-1))))
	if sigma == 0 {
		return 1
	}
	correction := 0.0
	if z > 0 {
		correction = 0.5
	} else if z < 0 {
		correction = -0.5
	}
	z = (z - correction) / sigma
	p := 2 * math.Min(normalCDF(z), 1-normalCDF(z))
	return math.Min(p, 1)
}

func normalCDF(z float64) float64 {
	return 0.5 * math.Erfc(-z/math.Sqrt2)
}

// exactPValue returns the two-sided p-value of statistic w under the exact
// Mann-Whitney null distribution for sample sizes n1 and n2.
func exactPValue(w float64, n1, n2 int) float64 {
	freq := mannWhitneyCounts(n1, n2)
	total := 0.0
	for _, f := range freq {
		total += f
	}
	u := int(math.Round(w))
	var p float64
	if w > float64(n1*n2)/2 {
		for k := u; k < len(freq); k++ {
			p += freq[k]
		}
	} else {
		for k := 0; k <= u && k < len(freq); k++ {
			p += freq[k]
		}
	}
	return math.Min(2*p/total, 1)
}

// mannWhitneyCounts returns how many rank arrangements give each value of
// the statistic, as the coefficients of the Gaussian binomial
// prod_{k=1..n1} (1 - q^(n2+k)) / (1 - q^k).
func mannWhitneyCounts(n1, n2 int) []float64 {
	size := n1*n2 + 1
	c := make([]float64, size)
	c[0] = 1
	for k := 1; k <= n1; k++ {
		shift := n2 + k
		for u := size - 1; u >= shift; u-- {
			c[u] -= c[u-shift]
		}
		for u := k; u < size; u++ {
			c[u] += c[u-k]
		}
	}
	return c
}
