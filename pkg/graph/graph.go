package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
)

// =============================================================================
// Graph - Canonical Network Form
// =============================================================================

// Graph is the canonical node-link form of a network. Node and edge order
// follow the source graph, so two graphs marshal identically exactly when
// they would lay out identically.
type Graph struct {
	Mode  string      `json:"mode,omitempty"`
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// GraphNode is a node of a canonical graph.
type GraphNode struct {
	ID       string         `json:"id"`
	Label    string         `json:"label,omitempty"`
	Kind     string         `json:"kind,omitempty"`
	Symbol   string         `json:"symbol,omitempty"`
	Evidence string         `json:"evidence,omitempty"`
	Value    float64        `json:"value,omitempty"`
	Meta     map[string]any `json:"meta,omitempty"`
}

// GraphEdge is an edge of a canonical graph.
type GraphEdge struct {
	From        string   `json:"from"`
	To          string   `json:"to"`
	Evidence    string   `json:"evidence,omitempty"`
	Coefficient *float64 `json:"coefficient,omitempty"`
	PValue      *float64 `json:"pvalue,omitempty"`
	AdjPValue   *float64 `json:"adj_pvalue,omitempty"`
}

// FromNetwork converts g to its canonical form.
func FromNetwork(g *network.Graph) Graph {
	out := Graph{
		Nodes: make([]GraphNode, 0, g.NodeCount()),
		Edges: make([]GraphEdge, 0, g.EdgeCount()),
	}
	if m, ok := g.Meta()["mode"].(string); ok {
		out.Mode = m
	}
	for _, n := range g.Nodes() {
		gn := GraphNode{
			ID:       n.ID,
			Label:    n.Label,
			Kind:     n.Kind.String(),
			Symbol:   n.Symbol,
			Evidence: n.Evidence,
			Value:    n.Value,
		}
		if len(n.Meta) > 0 {
			gn.Meta = n.Meta
		}
		out.Nodes = append(out.Nodes, gn)
	}
	for _, e := range g.Edges() {
		ge := GraphEdge{From: e.From, To: e.To, Evidence: e.Evidence}
		if e.Has(network.FieldCoefficient) {
			ge.Coefficient = ptr(e.Coefficient)
		}
		if e.Has(network.FieldPValue) {
			ge.PValue = ptr(e.PValue)
		}
		if e.Has(network.FieldAdjPValue) {
			ge.AdjPValue = ptr(e.AdjPValue)
		}
		out.Edges = append(out.Edges, ge)
	}
	return out
}

// Tables splits the canonical form back into node and edge records
// without validating them, for callers that build through [network.Build].
func (gj Graph) Tables() ([]network.Edge, []network.Node) {
	nodes := make([]network.Node, 0, len(gj.Nodes))
	for _, nj := range gj.Nodes {
		kind, _ := network.ParseKind(nj.Kind)
		nodes = append(nodes, network.Node{
			ID:       nj.ID,
			Label:    nj.Label,
			Kind:     kind,
			Symbol:   nj.Symbol,
			Evidence: nj.Evidence,
			Value:    nj.Value,
			Meta:     nj.Meta,
		})
	}
	edges := make([]network.Edge, 0, len(gj.Edges))
	for _, ej := range gj.Edges {
		e := network.Edge{From: ej.From, To: ej.To, Evidence: ej.Evidence}
		if ej.Coefficient != nil {
			e.Coefficient, e.Fields = *ej.Coefficient, e.Fields|network.FieldCoefficient
		}
		if ej.PValue != nil {
			e.PValue, e.Fields = *ej.PValue, e.Fields|network.FieldPValue
		}
		if ej.AdjPValue != nil {
			e.AdjPValue, e.Fields = *ej.AdjPValue, e.Fields|network.FieldAdjPValue
		}
		edges = append(edges, e)
	}
	return edges, nodes
}

// ToNetwork rebuilds a network from its canonical form.
func ToNetwork(gj Graph) (*network.Graph, error) {
	meta := network.Metadata{}
	if gj.Mode != "" {
		meta["mode"] = gj.Mode
	}
	g := network.New(meta)
	edges, nodes := gj.Tables()
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %s: %w", n.ID, err)
		}
	}
	for _, e := range edges {
		if _, err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("add edge %s-%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// MarshalGraph converts g to compact canonical JSON.
func MarshalGraph(g *network.Graph) ([]byte, error) {
	return json.Marshal(FromNetwork(g))
}

// WriteGraph writes g as indented canonical JSON to w.
func WriteGraph(g *network.Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromNetwork(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadGraph decodes a canonical graph from r.
func ReadGraph(r io.Reader) (*network.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToNetwork(data)
}

// ReadGraphFile reads a canonical graph file.
func ReadGraphFile(path string) (*network.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}
