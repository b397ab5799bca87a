package transform

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
)

const (
	// DefaultMinNodes is the smallest component kept by [Decompose].
	DefaultMinNodes = 3
	// DefaultMaxKept is the largest number of components [Decompose] keeps.
	DefaultMaxKept = 10
	// SubnetworkPrefix names decomposed components: subnetwork1, subnetwork2...
	SubnetworkPrefix = "subnetwork"
)

// Stats summarises one subnetwork for ranking and display.
type Stats struct {
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`
	Seeds int `json:"seeds"` // Seeds present in the subnetwork
}

// StatsOf computes the statistics of g against a seed list.
func StatsOf(g *network.Graph, seeds []string) Stats {
	return Stats{
		Nodes: g.NodeCount(),
		Edges: g.EdgeCount(),
		Seeds: len(g.Intersect(seeds)),
	}
}

// Subnetwork is a named graph held by the session registry.
type Subnetwork struct {
	Name  string
	Graph *network.Graph
	Stats Stats
}

// Decomposition is the ranked outcome of [Decompose].
type Decomposition struct {
	// Subnetworks holds the kept components ranked by node count.
	Subnetworks []Subnetwork
	// Found counts every component that met the size threshold, including
	// the ones dropped by the cap.
	Found int
}

// Kept returns the number of registered subnetworks.
func (d *Decomposition) Kept() int { return len(d.Subnetworks) }

// Sizes returns the node count of each kept subnetwork in rank order.
func (d *Decomposition) Sizes() []int {
	out := make([]int, len(d.Subnetworks))
	for i, s := range d.Subnetworks {
		out[i] = s.Stats.Nodes
	}
	return out
}

// DecomposeOptions bounds [Decompose]. Zero values select the defaults.
type DecomposeOptions struct {
	MinNodes int
	MaxKept  int
}

func (o *DecomposeOptions) setDefaults() {
	if o.MinNodes <= 0 {
		o.MinNodes = DefaultMinNodes
	}
	if o.MaxKept <= 0 {
		o.MaxKept = DefaultMaxKept
	}
}

// Decompose splits g into connected components, drops those smaller than
// MinNodes, ranks the rest by node count (stable, so equal sizes keep
// discovery order) and names them subnetwork1..k. Only the first MaxKept are
// returned, but Found reports every qualifying component.
//
// Returns a GRAPH_TOO_SMALL error when no component qualifies.
func Decompose(g *network.Graph, seeds []string, opts DecomposeOptions) (*Decomposition, error) {
	opts.setDefaults()

	var subs []Subnetwork
	for _, ids := range network.Components(g) {
		if len(ids) < opts.MinNodes {
			continue
		}
		sg := g.Subgraph(ids)
		subs = append(subs, Subnetwork{Graph: sg, Stats: StatsOf(sg, seeds)})
	}
	if len(subs) == 0 {
		return nil, errors.New(errors.ErrCodeTooSmall, "no subnetwork found")
	}

	Rank(subs)
	res := &Decomposition{Found: len(subs)}
	if len(subs) > opts.MaxKept {
		subs = subs[:opts.MaxKept]
	}
	for i := range subs {
		subs[i].Name = fmt.Sprintf("%s%d", SubnetworkPrefix, i+1)
	}
	res.Subnetworks = subs
	return res, nil
}

// Rank stable-sorts subnetworks by descending node count.
func Rank(subs []Subnetwork) {
	slices.SortStableFunc(subs, func(a, b Subnetwork) int {
		return cmp.Compare(b.Stats.Nodes, a.Stats.Nodes)
	})
}

// RecomputeStats refreshes the statistics of every entry against seeds and
// re-ranks them in place. Names are left untouched.
func RecomputeStats(subs []Subnetwork, seeds []string) {
	for i := range subs {
		subs[i].Stats = StatsOf(subs[i].Graph, seeds)
	}
	Rank(subs)
}
