package transform

import (
	"cmp"
	"slices"

	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
)

// DefaultMaxSeeds bounds the seeds [MinimalConnected] connects.
const DefaultMaxSeeds = 200

// MinimalConnectedResult is the outcome of [MinimalConnected].
type MinimalConnectedResult struct {
	// Graph connects the used seeds. It is empty when no seed was present.
	Graph *network.Graph
	// Present counts seeds found in the input graph.
	Present int
	// Used lists the seeds that were connected, highest degree first when
	// triage applied.
	Used []string
}

// Empty reports whether no seed was present in the input graph.
func (r *MinimalConnectedResult) Empty() bool { return r.Present == 0 }

// MinimalConnected extracts a small subgraph connecting as many seeds as
// possible.
//
// Seeds are intersected with g. Non-seed nodes of degree at most one are
// removed in a single pass, measured before any removal. When more than
// maxSeeds seeds remain, the maxSeeds with the highest degree in the pruned
// graph are kept (stable on seed order). Each seed is then joined to every
// later seed by one shortest path and the graph is reduced to the union of
// those paths plus the used seeds.
func MinimalConnected(g *network.Graph, seeds []string, maxSeeds int) *MinimalConnectedResult {
	if maxSeeds <= 0 {
		maxSeeds = DefaultMaxSeeds
	}
	present := g.Intersect(seeds)
	res := &MinimalConnectedResult{Present: len(present)}
	if len(present) == 0 {
		res.Graph = network.New(nil)
		return res
	}

	isSeed := make(map[string]bool, len(present))
	for _, id := range present {
		isSeed[id] = true
	}
	var leaves []string
	for _, id := range g.NodeIDs() {
		if !isSeed[id] && g.Degree(id) <= 1 {
			leaves = append(leaves, id)
		}
	}
	pruned, _ := g.Without(leaves)

	used := present
	if len(used) > maxSeeds {
		used = slices.Clone(present)
		slices.SortStableFunc(used, func(a, b string) int {
			return cmp.Compare(pruned.Degree(b), pruned.Degree(a))
		})
		used = used[:maxSeeds]
	}
	res.Used = used

	keep := append(slices.Clone(used), network.PairwisePathUnion(pruned, used)...)
	res.Graph = pruned.Subgraph(keep)
	return res
}
