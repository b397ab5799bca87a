package community

import "math"

const (
	mclInflation  = 2.0
	mclPrune      = 1e-5
	mclTolerance  = 1e-8
	mclIterations = 100
)

// column is a sparse column of a column-stochastic matrix.
type column map[int]float64

// markov runs Markov clustering on w. Each column starts as the normalised
// adjacency (with self-loops) of its node; expansion squares the matrix and
// inflation raises entries to mclInflation, prunes tiny entries and
// renormalises.
func markov(w *wgraph) []int {
	n := w.n()
	if n == 0 {
		return nil
	}

	m := make([]column, n)
	for j := range m {
		col := column{}
		self := 1.0
		for _, a := range w.adj[j] {
			col[a.to] += a.w
			self = math.Max(self, a.w)
		}
		col[j] += self
		normalize(col)
		m[j] = col
	}

	for it := 0; it < mclIterations; it++ {
		next := make([]column, n)
		change := 0.0
		for j := range m {
			col := column{}
			for k, vk := range m[j] {
				for i, vik := range m[k] {
					col[i] += vik * vk
				}
			}
			for i, v := range col {
				v = math.Pow(v, mclInflation)
				if v < mclPrune {
					delete(col, i)
					continue
				}
				col[i] = v
			}
			normalize(col)
			for i, v := range col {
				change = math.Max(change, math.Abs(v-m[j][i]))
			}
			for i, v := range m[j] {
				if _, ok := col[i]; !ok {
					change = math.Max(change, v)
				}
			}
			next[j] = col
		}
		m = next
		if change < mclTolerance {
			break
		}
	}

	// Clusters are the connected components of the converged matrix.
	uf := make([]int, n)
	for i := range uf {
		uf[i] = i
	}
	find := func(x int) int {
		for uf[x] != x {
			uf[x] = uf[uf[x]]
			x = uf[x]
		}
		return x
	}
	for j, col := range m {
		for i := range col {
			if a, b := find(i), find(j); a != b {
				uf[max(a, b)] = min(a, b)
			}
		}
	}
	label := make([]int, n)
	for j := range label {
		label[j] = find(j)
	}
	return canonical(w.splitDisconnected(label))
}

func normalize(col column) {
	sum := 0.0
	for _, v := range col {
		sum += v
	}
	if sum == 0 {
		return
	}
	for i := range col {
		col[i] /= sum
	}
}
