package network

import (
	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
)

// Topology names a node centrality measure.
type Topology string

const (
	TopologyDegree      Topology = "degree"
	TopologyCloseness   Topology = "closeness"
	TopologyBetweenness Topology = "betweenness"
)

// ValidTopologies is the set of supported measures.
var ValidTopologies = map[Topology]bool{
	TopologyDegree:      true,
	TopologyCloseness:   true,
	TopologyBetweenness: true,
}

// ParseTopology converts a measure name into a Topology.
func ParseTopology(s string) (Topology, error) {
	if t := Topology(s); ValidTopologies[t] {
		return t, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "unknown topology measure %q (must be one of: degree, closeness, betweenness)", s)
}

// Score computes the named centrality for every node.
func Score(g *Graph, t Topology) map[string]float64 {
	switch t {
	case TopologyCloseness:
		return Closeness(g)
	case TopologyBetweenness:
		return Betweenness(g)
	default:
		out := make(map[string]float64, g.NodeCount())
		for _, id := range g.order {
			out[id] = float64(g.Degree(id))
		}
		return out
	}
}

// Degrees returns the degree of every node.
func Degrees(g *Graph) map[string]int {
	out := make(map[string]int, g.NodeCount())
	for _, id := range g.order {
		out[id] = g.Degree(id)
	}
	return out
}

// Betweenness computes unnormalised betweenness centrality with Brandes'
// algorithm over unweighted shortest paths. Scores are halved because every
// undirected pair is visited from both ends.
func Betweenness(g *Graph) map[string]float64 {
	cb := make(map[string]float64, g.NodeCount())
	for _, id := range g.order {
		cb[id] = 0
	}

	for _, s := range g.order {
		var stack []string
		pred := make(map[string][]string)
		sigma := map[string]float64{s: 1}
		dist := map[string]int{s: 0}

		queue := []string{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			stack = append(stack, v)
			for _, w := range g.adj[v] {
				if _, seen := dist[w]; !seen {
					dist[w] = dist[v] + 1
					queue = append(queue, w)
				}
				if dist[w] == dist[v]+1 {
					sigma[w] += sigma[v]
					pred[w] = append(pred[w], v)
				}
			}
		}

		delta := make(map[string]float64, len(stack))
		for i := len(stack) - 1; i >= 0; i-- {
			w := stack[i]
			for _, v := range pred[w] {
				delta[v] += sigma[v] / sigma[w] * (1 + delta[w])
			}
			if w != s {
				cb[w] += delta[w]
			}
		}
	}

	for id := range cb {
		cb[id] /= 2
	}
	return cb
}

// Closeness computes closeness centrality as the inverse of the summed
// distance to every reachable node. Isolated nodes score 0.
func Closeness(g *Graph) map[string]float64 {
	out := make(map[string]float64, g.NodeCount())
	for _, s := range g.order {
		dist := Distances(g, s)
		sum := 0
		for _, d := range dist {
			sum += d
		}
		if sum > 0 {
			out[s] = 1 / float64(sum)
		} else {
			out[s] = 0
		}
	}
	return out
}

// Distances returns the hop distance from src to every reachable node,
// including src itself at distance 0.
func Distances(g *Graph, src string) map[string]int {
	dist := map[string]int{src: 0}
	queue := []string{src}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range g.adj[v] {
			if _, seen := dist[w]; !seen {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
		}
	}
	return dist
}
