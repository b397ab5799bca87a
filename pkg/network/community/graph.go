package community

import (
	"math"

	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
)

// MinWeight floors the endpoint score average before squaring so that no
// edge weight is exactly zero.
const MinWeight = 0.01

type arc struct {
	to int
	w  float64
}

// wgraph is a dense-index weighted view of a network graph. Index order is
// the graph's node insertion order.
type wgraph struct {
	ids      []string
	adj      [][]arc
	strength []float64
	m        float64 // total edge weight, each edge counted once
}

// EdgeWeight derives an edge weight from the external scores of its
// endpoints: the mean absolute score, floored at [MinWeight], squared.
func EdgeWeight(a, b float64) float64 {
	s := (math.Abs(a) + math.Abs(b)) / 2
	if s < MinWeight {
		s = MinWeight
	}
	return s * s
}

func newWGraph(g *network.Graph, scores map[string]float64) *wgraph {
	ids := g.NodeIDs()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	w := &wgraph{
		ids:      ids,
		adj:      make([][]arc, len(ids)),
		strength: make([]float64, len(ids)),
	}
	for _, e := range g.Edges() {
		u, v := index[e.From], index[e.To]
		wt := 1.0
		if scores != nil {
			wt = EdgeWeight(scores[e.From], scores[e.To])
		}
		w.adj[u] = append(w.adj[u], arc{v, wt})
		w.adj[v] = append(w.adj[v], arc{u, wt})
		w.strength[u] += wt
		w.strength[v] += wt
		w.m += wt
	}
	return w
}

func (w *wgraph) n() int { return len(w.ids) }

// modularity computes Newman modularity of a labelling.
func (w *wgraph) modularity(label []int) float64 {
	if w.m == 0 {
		return 0
	}
	in := make(map[int]float64)
	tot := make(map[int]float64)
	for u := range w.adj {
		tot[label[u]] += w.strength[u]
		for _, a := range w.adj[u] {
			if label[a.to] == label[u] {
				in[label[u]] += a.w
			}
		}
	}
	q := 0.0
	for c, t := range tot {
		q += in[c]/(2*w.m) - (t/(2*w.m))*(t/(2*w.m))
	}
	return q
}

// canonical relabels communities 0..k-1 in order of first appearance.
func canonical(label []int) []int {
	seen := make(map[int]int)
	out := make([]int, len(label))
	for i, l := range label {
		c, ok := seen[l]
		if !ok {
			c = len(seen)
			seen[l] = c
		}
		out[i] = c
	}
	return out
}

// splitDisconnected gives every connected piece of a community its own
// label.
func (w *wgraph) splitDisconnected(label []int) []int {
	out := make([]int, len(label))
	for i := range out {
		out[i] = -1
	}
	next := 0
	for start := range label {
		if out[start] >= 0 {
			continue
		}
		out[start] = next
		queue := []int{start}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			for _, a := range w.adj[u] {
				if out[a.to] < 0 && label[a.to] == label[start] {
					out[a.to] = next
					queue = append(queue, a.to)
				}
			}
		}
		next++
	}
	return out
}
