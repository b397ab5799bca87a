package community

import "math/rand/v2"

const (
	labelPropIterations = 100
	labelPropSeed       = 42
)

// labelPropagation assigns every node the label carrying the most weight
// among its neighbours until each node already holds such a label. Nodes are
// visited in a shuffled order drawn from a fixed seed, and ties are broken by
// the same generator, so results are reproducible.
func labelPropagation(w *wgraph) []int {
	n := w.n()
	label := make([]int, n)
	order := make([]int, n)
	for i := range label {
		label[i] = i
		order[i] = i
	}
	r := rand.New(rand.NewPCG(labelPropSeed, labelPropSeed))

	dominant := func(u int) []int {
		weight := make(map[int]float64)
		var labels []int
		for _, a := range w.adj[u] {
			l := label[a.to]
			if _, ok := weight[l]; !ok {
				labels = append(labels, l)
			}
			weight[l] += a.w
		}
		best := -1.0
		var out []int
		for _, l := range labels {
			switch v := weight[l]; {
			case v > best+1e-12:
				best, out = v, []int{l}
			case v > best-1e-12:
				out = append(out, l)
			}
		}
		return out
	}

	for it := 0; it < labelPropIterations; it++ {
		r.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, u := range order {
			if cand := dominant(u); len(cand) > 0 {
				label[u] = cand[r.IntN(len(cand))]
			}
		}

		stable := true
		for u := 0; u < n && stable; u++ {
			cand := dominant(u)
			if len(cand) == 0 {
				continue
			}
			found := false
			for _, l := range cand {
				if l == label[u] {
					found = true
					break
				}
			}
			stable = found
		}
		if stable {
			break
		}
	}
	return canonical(w.splitDisconnected(label))
}
