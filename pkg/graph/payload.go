package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/MASHUOA/MetaboAnalystR/pkg/layout"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
)

// =============================================================================
// Payload - Viewer Document
// =============================================================================

// Payload is the node/edge document consumed by the interactive viewer.
type Payload struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Layout   string   `json:"layout,omitempty"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	Nodes    []Node   `json:"nodes"`
	Edges    []Edge   `json:"edges"`
}

// Node is one viewer node.
type Node struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	Kind        string         `json:"kind"`
	Symbol      string         `json:"symbol,omitempty"`
	Evidence    string         `json:"evidence,omitempty"`
	Annotations map[string]any `json:"annotations,omitempty"` // External database ids
	X           float64        `json:"x"`
	Y           float64        `json:"y"`
	Size        float64        `json:"size"`
	Shape       string         `json:"shape"`
	Color       string         `json:"color"`
	Seed        bool           `json:"seed,omitempty"`
	Expression  Expression     `json:"expression"`
	Topology    Topology       `json:"topology"`
}

// Expression holds the external score of a node and its colours.
type Expression struct {
	Value  float64 `json:"value"`
	Fill   string  `json:"fill"`
	Border string  `json:"border"`
}

// Topology holds the structural attributes of a node. Score is the value of
// Measure for the node and drives Color.
type Topology struct {
	Degree      int              `json:"degree"`
	Betweenness float64          `json:"betweenness"`
	Closeness   float64          `json:"closeness"`
	Measure     network.Topology `json:"measure"`
	Score       float64          `json:"score"`
	Color       string           `json:"color"`
}

// Edge is one viewer edge. Optional statistics are omitted when the source
// table did not supply them.
type Edge struct {
	Index       int      `json:"index"`
	Source      string   `json:"source"`
	Target      string   `json:"target"`
	Evidence    string   `json:"evidence,omitempty"`
	Coefficient *float64 `json:"coefficient,omitempty"`
	PValue      *float64 `json:"pvalue,omitempty"`
	AdjPValue   *float64 `json:"adj_pvalue,omitempty"`
	CoefSize    *float64 `json:"coef_size,omitempty"`
	PSize       *float64 `json:"p_size,omitempty"`
}

// PayloadOptions configures [NewPayload].
type PayloadOptions struct {
	Name     string
	Category Category
	// Layout supplies coordinates; nodes it does not cover sit at the origin.
	Layout *layout.Result
	Seeds  []string
	// Scores overrides node values as the expression source when non-nil.
	Scores map[string]float64
	// Measure selects the centrality behind the topology colour. Empty
	// selects betweenness.
	Measure network.Topology
}

// NewPayload converts g into a viewer payload. Nodes and edges keep the
// graph's order; g is not modified.
func NewPayload(g *network.Graph, opts PayloadOptions) *Payload {
	if opts.Category == "" {
		opts.Category = CategoryDefault
	}
	if opts.Measure == "" {
		opts.Measure = network.TopologyBetweenness
	}
	p := &Payload{
		Name:     opts.Name,
		Category: opts.Category,
		Nodes:    make([]Node, 0, g.NodeCount()),
		Edges:    make([]Edge, 0, g.EdgeCount()),
	}

	var pos map[string]layout.Position
	if opts.Layout != nil {
		pos = opts.Layout.Map()
		p.Layout = string(opts.Layout.Algorithm)
		p.Width, p.Height = opts.Layout.Width, opts.Layout.Height
	}
	seeds := make(map[string]bool, len(opts.Seeds))
	for _, s := range opts.Seeds {
		seeds[s] = true
	}

	nodes := g.Nodes()
	betw := network.Betweenness(g)
	closeness := network.Closeness(g)
	measured := betw
	if opts.Measure != network.TopologyBetweenness {
		measured = network.Score(g, opts.Measure)
	}
	sources := g.Sources()
	sizes := NodeSizes(g)

	values := make([]float64, len(nodes))
	centrality := make([]float64, len(nodes))
	for i, n := range nodes {
		values[i] = n.Value
		if opts.Scores != nil {
			values[i] = opts.Scores[n.ID]
		}
		centrality[i] = measured[n.ID]
	}
	fill, border := ExpressionColors(values)
	topo := TopologyColors(centrality)

	for i, n := range nodes {
		// The global category keeps its accent on the gene side; elsewhere
		// a scored node takes its expression fill.
		shape, color := shapeOf(opts.Category, n, sources[n.ID])
		if fill[i] != NeutralFill && color != AccentColor {
			color = fill[i]
		}
		if seeds[n.ID] {
			border[i] = SeedColor
		}
		pt := pos[n.ID]
		p.Nodes = append(p.Nodes, Node{
			ID:          n.ID,
			Label:       n.DisplayLabel(),
			Kind:        n.Kind.String(),
			Symbol:      n.Symbol,
			Evidence:    n.Evidence,
			Annotations: n.Meta,
			X:           pt.X,
			Y:           pt.Y,
			Size:        sizes[i],
			Shape:       shape,
			Color:       color,
			Seed:        seeds[n.ID],
			Expression:  Expression{Value: values[i], Fill: fill[i], Border: border[i]},
			Topology: Topology{
				Degree:      g.Degree(n.ID),
				Betweenness: betw[n.ID],
				Closeness:   closeness[n.ID],
				Measure:     opts.Measure,
				Score:       centrality[i],
				Color:       topo[i],
			},
		})
	}

	edges := g.Edges()
	var coefIdx, pIdx []int
	var coefRaw, pRaw []float64
	for i, e := range edges {
		pe := Edge{Index: i, Source: e.From, Target: e.To, Evidence: e.Evidence}
		if e.Has(network.FieldCoefficient) {
			pe.Coefficient = ptr(e.Coefficient)
			coefIdx = append(coefIdx, i)
			coefRaw = append(coefRaw, math.Abs(e.Coefficient))
		}
		if e.Has(network.FieldPValue) {
			pe.PValue = ptr(e.PValue)
			pIdx = append(pIdx, i)
			pRaw = append(pRaw, -math.Log10(math.Max(e.PValue, math.SmallestNonzeroFloat64)))
		}
		if e.Has(network.FieldAdjPValue) {
			pe.AdjPValue = ptr(e.AdjPValue)
		}
		p.Edges = append(p.Edges, pe)
	}
	for k, v := range Rescale(coefRaw, MinEdgeSize, MaxEdgeSize) {
		p.Edges[coefIdx[k]].CoefSize = ptr(v)
	}
	for k, v := range Rescale(pRaw, MinEdgeSize, MaxEdgeSize) {
		p.Edges[pIdx[k]].PSize = ptr(v)
	}
	return p
}

func ptr(v float64) *float64 { return &v }

// MarshalPayload serializes a payload to indented JSON.
func MarshalPayload(p *Payload) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// WritePayload writes a payload as JSON to w.
func WritePayload(p *Payload, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	return nil
}

// WriteLayout writes the layout-only document (id, x, y per node) used for
// re-layout requests.
func WriteLayout(res *layout.Result, w io.Writer) error {
	positions := res.Positions
	if positions == nil {
		positions = []layout.Position{}
	}
	if err := json.NewEncoder(w).Encode(positions); err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return nil
}
