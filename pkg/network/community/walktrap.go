package community

import "math"

// walkLength is the random-walk length t used by walktrap.
const walkLength = 4

type wcomm struct {
	size int
	vec  []float64       // P^t from the community, averaged over members
	in   float64         // internal weight, each edge counted twice
	tot  float64         // summed strength
	nbr  map[int]float64 // adjacent community -> crossing weight
}

type cpair struct{ a, b int }

func orderedPair(a, b int) cpair {
	if a > b {
		a, b = b, a
	}
	return cpair{a, b}
}

// walktrap clusters w by agglomerating the pair of adjacent communities
// whose merge least increases the mean squared random-walk distance, and
// returns the partition with the highest modularity along the way.
func walktrap(w *wgraph, t int) []int {
	n := w.n()
	if n == 0 {
		return nil
	}

	// Every vertex gets a loop weighted by its mean incident weight so the
	// walk is aperiodic.
	deg := make([]float64, n)
	loop := make([]float64, n)
	for u := range w.adj {
		loop[u] = 1
		if len(w.adj[u]) > 0 {
			loop[u] = w.strength[u] / float64(len(w.adj[u]))
		}
		deg[u] = w.strength[u] + loop[u]
	}

	step := func(p []float64) []float64 {
		out := make([]float64, n)
		for u, pu := range p {
			if pu == 0 {
				continue
			}
			out[u] += pu * loop[u] / deg[u]
			for _, a := range w.adj[u] {
				out[a.to] += pu * a.w / deg[u]
			}
		}
		return out
	}

	comms := make(map[int]*wcomm, n)
	for u := 0; u < n; u++ {
		p := make([]float64, n)
		p[u] = 1
		for i := 0; i < t; i++ {
			p = step(p)
		}
		c := &wcomm{size: 1, vec: p, tot: w.strength[u], nbr: make(map[int]float64)}
		for _, a := range w.adj[u] {
			c.nbr[a.to] += a.w
		}
		comms[u] = c
	}

	dist := func(a, b *wcomm) float64 {
		r := 0.0
		for k := 0; k < n; k++ {
			d := a.vec[k] - b.vec[k]
			r += d * d / deg[k]
		}
		sa, sb := float64(a.size), float64(b.size)
		return sa * sb / (sa + sb) * r / float64(n)
	}

	delta := make(map[cpair]float64)
	for a, ca := range comms {
		for b := range ca.nbr {
			if a < b {
				delta[cpair{a, b}] = dist(ca, comms[b])
			}
		}
	}

	modQ := func(c *wcomm) float64 {
		if w.m == 0 {
			return 0
		}
		return c.in/(2*w.m) - (c.tot/(2*w.m))*(c.tot/(2*w.m))
	}
	q := 0.0
	for _, c := range comms {
		q += modQ(c)
	}

	var merges []cpair
	bestQ, bestStep := q, 0

	for next := n; len(delta) > 0; next++ {
		best, bestD := cpair{}, math.Inf(1)
		for p, d := range delta {
			if d < bestD || (d == bestD && (p.a < best.a || (p.a == best.a && p.b < best.b))) {
				best, bestD = p, d
			}
		}

		ca, cb := comms[best.a], comms[best.b]
		size := ca.size + cb.size
		merged := &wcomm{
			size: size,
			vec:  make([]float64, n),
			in:   ca.in + cb.in + 2*ca.nbr[best.b],
			tot:  ca.tot + cb.tot,
			nbr:  make(map[int]float64),
		}
		for k := range merged.vec {
			merged.vec[k] = (float64(ca.size)*ca.vec[k] + float64(cb.size)*cb.vec[k]) / float64(size)
		}
		for _, old := range []*wcomm{ca, cb} {
			for c, wt := range old.nbr {
				if c != best.a && c != best.b {
					merged.nbr[c] += wt
				}
			}
		}

		q += modQ(merged) - modQ(ca) - modQ(cb)
		for _, id := range []int{best.a, best.b} {
			for c := range comms[id].nbr {
				delete(delta, orderedPair(id, c))
				if other, ok := comms[c]; ok {
					delete(other.nbr, id)
				}
			}
			delete(comms, id)
		}
		comms[next] = merged
		for c, wt := range merged.nbr {
			comms[c].nbr[next] = wt
			delta[orderedPair(c, next)] = dist(merged, comms[c])
		}

		merges = append(merges, best)
		if q > bestQ+1e-12 {
			bestQ, bestStep = q, len(merges)
		}
	}

	// Replay the first bestStep merges.
	label := make([]int, n)
	uf := make([]int, n+len(merges))
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
	for i := 0; i < bestStep; i++ {
		id := n + i
		uf[find(merges[i].a)] = id
		uf[find(merges[i].b)] = id
	}
	for u := range label {
		label[u] = find(u)
	}
	return canonical(label)
}
