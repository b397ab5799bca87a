package network

import (
	"cmp"
	"math"
	"slices"

	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
)

// Mode selects how an edge table is projected onto a graph.
type Mode int

const (
	// ModeAttributed builds from an explicit node table plus edge table and
	// attaches the supplied node attributes without inference.
	ModeAttributed Mode = iota
	// ModeTopEdges keeps only the most significant edges of a scored edge
	// list and infers the node set from their endpoints.
	ModeTopEdges
)

// String returns the mode name accepted by [ParseMode].
func (m Mode) String() string {
	if m == ModeTopEdges {
		return "top"
	}
	return "attributed"
}

// ValidModes maps the supported mode names to their Mode.
var ValidModes = map[string]Mode{
	"attributed": ModeAttributed,
	"top":        ModeTopEdges,
}

// ParseMode converts a mode name into a Mode. The empty string selects
// ModeAttributed.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeAttributed, nil
	}
	if m, ok := ValidModes[s]; ok {
		return m, nil
	}
	return 0, errors.New(errors.ErrCodeUnsupported, "unknown projection mode %q (must be one of: attributed, top)", s)
}

const (
	// TopEdgeSmallTable is the candidate count below which the quantile rule
	// applies in top-edge mode.
	TopEdgeSmallTable = 1000
	// TopEdgeQuantile is the share of distinct p-values kept for small tables.
	TopEdgeQuantile = 0.2
	// TopEdgeLimit is the number of edges kept for large tables.
	TopEdgeLimit = 100
)

// SelectTopEdges picks the most significant edges of a scored edge list.
//
// Edges without a p-value are not candidates. With fewer than
// [TopEdgeSmallTable] candidates the edges whose p-value falls within the
// best [TopEdgeQuantile] of the distinct sorted p-values are kept, in input
// order. Otherwise the [TopEdgeLimit] edges with the smallest p-values are
// kept, ties resolved by input order.
func SelectTopEdges(edges []Edge) []Edge {
	var cand []Edge
	for _, e := range edges {
		if e.Has(FieldPValue) && !math.IsNaN(e.PValue) {
			cand = append(cand, e)
		}
	}
	if len(cand) == 0 {
		return nil
	}

	if len(cand) < TopEdgeSmallTable {
		distinct := make([]float64, len(cand))
		for i, e := range cand {
			distinct[i] = e.PValue
		}
		slices.Sort(distinct)
		distinct = slices.Compact(distinct)
		k := int(math.Ceil(TopEdgeQuantile * float64(len(distinct))))
		k = max(k, 1)
		cutoff := distinct[k-1]

		var out []Edge
		for _, e := range cand {
			if e.PValue <= cutoff {
				out = append(out, e)
			}
		}
		return out
	}

	sorted := slices.Clone(cand)
	slices.SortStableFunc(sorted, func(a, b Edge) int { return cmp.Compare(a.PValue, b.PValue) })
	return sorted[:TopEdgeLimit]
}

// Build constructs a graph from an edge table and an optional node table.
//
// In [ModeAttributed] with a node table every node of the table is added in
// table order and every edge endpoint must be listed; without a node table
// nodes are inferred from endpoints. In [ModeTopEdges] the edge list is first
// reduced with [SelectTopEdges] and nodes are inferred from the surviving
// endpoints, taking attributes from the node table where present.
//
// Multi-edges keep the first attribute set and self-loops are skipped.
// Returns an EMPTY_RESULT error when no edge survives.
func Build(edges []Edge, nodes []Node, mode Mode) (*Graph, error) {
	if mode == ModeTopEdges {
		edges = SelectTopEdges(edges)
	}
	if len(edges) == 0 {
		return nil, errors.New(errors.ErrCodeEmpty, "no qualifying edges")
	}

	attrs := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		if err := errors.ValidateIdentifier(n.ID); err != nil {
			return nil, err
		}
		if _, dup := attrs[n.ID]; !dup {
			attrs[n.ID] = n
		}
	}

	g := New(Metadata{"mode": mode.String()})
	strict := mode == ModeAttributed && len(nodes) > 0
	if strict {
		for _, n := range nodes {
			if !g.HasNode(n.ID) {
				_ = g.AddNode(normalize(n))
			}
		}
	}

	for _, e := range edges {
		if e.From == e.To {
			continue
		}
		for _, id := range []string{e.From, e.To} {
			if g.HasNode(id) {
				continue
			}
			if strict {
				return nil, errors.New(errors.ErrCodeInvalidTable, "edge endpoint %q is not listed in the node table", id)
			}
			if err := errors.ValidateIdentifier(id); err != nil {
				return nil, err
			}
			n, ok := attrs[id]
			if !ok {
				n = Node{ID: id}
			}
			_ = g.AddNode(normalize(n))
		}
		if _, err := g.AddEdge(e); err != nil {
			return nil, err
		}
	}

	if g.EdgeCount() == 0 {
		return nil, errors.New(errors.ErrCodeEmpty, "no qualifying edges")
	}
	return g, nil
}

// normalize fills the label and, for nodes whose table gave no kind, infers
// the kind from the identifier. An explicit KindOther is kept.
func normalize(n Node) Node {
	if n.Label == "" {
		n.Label = n.ID
	}
	if n.Kind == KindUnknown {
		n.Kind = InferKind(n.ID)
	}
	return n
}
