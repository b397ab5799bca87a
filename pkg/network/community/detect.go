package community

import (
	"cmp"
	"math"
	"slices"

	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
)

// DefaultMinSize is the smallest community reported.
const DefaultMinSize = 5

// Options configures [Detect].
type Options struct {
	// Method selects the algorithm. Defaults to [DefaultMethod].
	Method Method
	// Weighted derives edge weights from Scores with [EdgeWeight].
	Weighted bool
	// Scores holds external per-node values such as expression.
	Scores map[string]float64
	// MinSize drops smaller communities. Defaults to [DefaultMinSize].
	MinSize int
}

// Community is one retained cluster.
type Community struct {
	ID     int      `json:"id"`
	Nodes  []string `json:"nodes"`
	Size   int      `json:"size"`
	Hits   int      `json:"hits"`
	PValue float64  `json:"pvalue"`
}

// Assignment maps a node to the community it was reported in.
type Assignment struct {
	NodeID    string `json:"node"`
	Community int    `json:"community"`
}

// Result is the outcome of [Detect].
type Result struct {
	Method      Method       `json:"method"`
	Modularity  float64      `json:"modularity"`
	Communities []Community  `json:"communities"`
	Assignments []Assignment `json:"assignments"`
}

// Detect partitions the largest connected component of g into communities
// and scores them.
//
// Communities with fewer than MinSize nodes or no seed are dropped. Each
// survivor is scored by a rank-sum test of its members' in-community degree
// against their out-of-community degree. The list is ordered by ascending
// p-value and then, stably, by descending seed hits; IDs follow that order
// starting at 1.
//
// Returns UNSUPPORTED_OPTION for an unknown method and EMPTY_RESULT when the
// graph is empty, the partition has zero modularity or no community
// survives the filters.
func Detect(g *network.Graph, seeds []string, opts Options) (*Result, error) {
	if opts.Method == "" {
		opts.Method = DefaultMethod
	}
	if !ValidMethods[opts.Method] {
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown community method %q", string(opts.Method))
	}
	if opts.MinSize <= 0 {
		opts.MinSize = DefaultMinSize
	}
	if g.EdgeCount() == 0 {
		return nil, errors.New(errors.ErrCodeEmpty, "graph has no edges")
	}

	comp := network.Largest(g)
	var scores map[string]float64
	if opts.Weighted {
		scores = opts.Scores
		if scores == nil {
			scores = map[string]float64{}
		}
	}
	w := newWGraph(comp, scores)

	label, err := opts.Method.partition(w)
	if err != nil {
		return nil, err
	}
	q := w.modularity(label)
	if math.Abs(q) < 1e-12 {
		return nil, errors.New(errors.ErrCodeEmpty, "no communities detected")
	}

	groups := make(map[int][]string)
	var order []int
	for i, l := range label {
		if _, ok := groups[l]; !ok {
			order = append(order, l)
		}
		groups[l] = append(groups[l], w.ids[i])
	}

	isSeed := make(map[string]bool, len(seeds))
	for _, s := range seeds {
		isSeed[s] = true
	}

	var comms []Community
	for _, l := range order {
		members := groups[l]
		if len(members) < opts.MinSize {
			continue
		}
		hits := 0
		for _, id := range members {
			if isSeed[id] {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		comms = append(comms, Community{
			Nodes:  members,
			Size:   len(members),
			Hits:   hits,
			PValue: Significance(comp, members),
		})
	}
	if len(comms) == 0 {
		return nil, errors.New(errors.ErrCodeEmpty, "no community with at least %d nodes and a seed", opts.MinSize)
	}

	slices.SortStableFunc(comms, func(a, b Community) int { return cmp.Compare(a.PValue, b.PValue) })
	slices.SortStableFunc(comms, func(a, b Community) int { return cmp.Compare(b.Hits, a.Hits) })

	res := &Result{Method: opts.Method, Modularity: q, Communities: comms}
	for i := range res.Communities {
		res.Communities[i].ID = i + 1
		for _, id := range res.Communities[i].Nodes {
			res.Assignments = append(res.Assignments, Assignment{NodeID: id, Community: i + 1})
		}
	}
	return res, nil
}

// Significance scores a node set by comparing, with [RankSum], each member's
// degree inside the set against its degree to the rest of g.
func Significance(g *network.Graph, members []string) float64 {
	sub := g.Subgraph(members)
	in := make([]float64, 0, len(members))
	out := make([]float64, 0, len(members))
	for _, id := range members {
		d := sub.Degree(id)
		in = append(in, float64(d))
		out = append(out, float64(g.Degree(id)-d))
	}
	return RankSum(in, out)
}
