package network

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [Graph.AddEdge] and the path queries when
	// an endpoint does not exist in the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrSelfLoop is returned by [Graph.AddEdge] when both endpoints are the
	// same node. Interaction networks never carry self-loops.
	ErrSelfLoop = errors.New("self-loop")
)

// Metadata stores arbitrary key-value pairs attached to nodes or the graph.
// Builders use it for external annotation ids (KEGG, Entrez, HMDB) that the
// viewer shows but no algorithm reads.
type Metadata map[string]any

// Node is a vertex of an interaction network.
//
// Degree, betweenness and the other topology attributes are not stored on the
// node; they are computed on demand from the graph so they can never go stale
// after a structural edit.
type Node struct {
	ID       string   // Unique identifier (KEGG, Entrez, symbol...)
	Label    string   // Display label; defaults to ID
	Kind     Kind     // Gene, compound or other
	Symbol   string   // Optional gene name
	Evidence string   // Optional annotation string
	Value    float64  // Expression or abundance; zero means no data
	Meta     Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// DisplayLabel returns Label, falling back to ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Field flags the optional numeric columns an edge carries.
type Field uint8

const (
	FieldCoefficient Field = 1 << iota
	FieldPValue
	FieldAdjPValue
)

// Edge is an undirected interaction between two nodes.
//
// From and To keep the orientation of the first record that introduced the
// pair. The graph itself is undirected; the orientation only matters for the
// source/target role predicates used by the topology filter.
type Edge struct {
	From        string
	To          string
	Evidence    string
	Coefficient float64
	PValue      float64
	AdjPValue   float64
	Fields      Field // Which numeric columns were supplied
}

// Has reports whether the edge carries the given numeric column.
func (e Edge) Has(f Field) bool { return e.Fields&f != 0 }

// Other returns the endpoint opposite id.
func (e Edge) Other(id string) string {
	if e.From == id {
		return e.To
	}
	return e.From
}

type pairKey struct{ a, b string }

func keyOf(u, v string) pairKey {
	if u > v {
		u, v = v, u
	}
	return pairKey{u, v}
}

// Graph is a simple undirected attributed graph.
//
// Nodes keep their insertion order, which every traversal in this module
// follows so that results are reproducible. Multi-edges collapse onto the
// first-seen attribute set and self-loops are rejected.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes map[string]*Node
	order []string
	adj   map[string][]string // nodeID -> neighbour IDs in edge order
	edges []Edge
	index map[pairKey]int // pair -> position in edges
	meta  Metadata
}

// New creates an empty Graph with optional graph-level metadata.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		nodes: make(map[string]*Node),
		adj:   make(map[string][]string),
		index: make(map[pairKey]int),
		meta:  meta,
	}
}

// Meta returns the graph-level metadata map.
func (g *Graph) Meta() Metadata { return g.meta }

// AddNode adds a node to the graph. Returns ErrInvalidNodeID if the ID is
// empty or ErrDuplicateNodeID if it already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	g.nodes[n.ID] = node
	g.order = append(g.order, n.ID)
	return nil
}

// AddEdge adds an undirected edge between two existing nodes.
//
// It reports whether the edge was inserted: a second edge between the same
// pair is dropped and the first attribute set wins. Returns ErrUnknownNode
// if an endpoint is missing and ErrSelfLoop if both endpoints are equal.
func (g *Graph) AddEdge(e Edge) (bool, error) {
	if _, ok := g.nodes[e.From]; !ok {
		return false, ErrUnknownNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return false, ErrUnknownNode
	}
	if e.From == e.To {
		return false, ErrSelfLoop
	}
	k := keyOf(e.From, e.To)
	if _, dup := g.index[k]; dup {
		return false, nil
	}
	g.index[k] = len(g.edges)
	g.edges = append(g.edges, e)
	g.adj[e.From] = append(g.adj[e.From], e.To)
	g.adj[e.To] = append(g.adj[e.To], e.From)
	return true, nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// NodeIDs returns all node IDs in insertion order.
func (g *Graph) NodeIDs() []string { return slices.Clone(g.order) }

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Edge returns the edge between u and v in either orientation.
func (g *Graph) Edge(u, v string) (Edge, bool) {
	i, ok := g.index[keyOf(u, v)]
	if !ok {
		return Edge{}, false
	}
	return g.edges[i], true
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Neighbors returns the IDs adjacent to id. The slice is shared with the
// graph and must not be modified.
func (g *Graph) Neighbors(id string) []string { return g.adj[id] }

// Degree returns the number of edges incident to id.
func (g *Graph) Degree(id string) int { return len(g.adj[id]) }

// Sources returns the set of node IDs that appear as the From endpoint of
// at least one edge.
func (g *Graph) Sources() map[string]bool {
	out := make(map[string]bool)
	for _, e := range g.edges {
		out[e.From] = true
	}
	return out
}

// Targets returns the set of node IDs that appear as the To endpoint of at
// least one edge.
func (g *Graph) Targets() map[string]bool {
	out := make(map[string]bool)
	for _, e := range g.edges {
		out[e.To] = true
	}
	return out
}

// Isolated returns the IDs of degree-0 nodes in insertion order.
func (g *Graph) Isolated() []string {
	var out []string
	for _, id := range g.order {
		if len(g.adj[id]) == 0 {
			out = append(out, id)
		}
	}
	return out
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	return g.filter(func(string) bool { return true })
}

// Subgraph returns the subgraph induced by ids. IDs not in the graph are
// ignored; node and edge order follow the receiver.
func (g *Graph) Subgraph(ids []string) *Graph {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	return g.filter(func(id string) bool { return keep[id] })
}

// Without returns a copy of the graph with the given nodes and their
// incident edges removed, along with the IDs that were actually present.
func (g *Graph) Without(ids []string) (*Graph, []string) {
	drop := make(map[string]bool, len(ids))
	var removed []string
	for _, id := range ids {
		if g.HasNode(id) && !drop[id] {
			drop[id] = true
			removed = append(removed, id)
		}
	}
	return g.filter(func(id string) bool { return !drop[id] }), removed
}

func (g *Graph) filter(keep func(string) bool) *Graph {
	out := New(maps.Clone(g.meta))
	for _, id := range g.order {
		if !keep(id) {
			continue
		}
		n := *g.nodes[id]
		n.Meta = maps.Clone(n.Meta)
		_ = out.AddNode(n)
	}
	for _, e := range g.edges {
		if keep(e.From) && keep(e.To) {
			_, _ = out.AddEdge(e)
		}
	}
	return out
}

// Contains reports how many of ids are nodes of g.
func (g *Graph) Contains(ids []string) int {
	n := 0
	for _, id := range ids {
		if g.HasNode(id) {
			n++
		}
	}
	return n
}

// Intersect returns the members of ids present in g, deduplicated, in the
// order given.
func (g *Graph) Intersect(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if g.HasNode(id) && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
