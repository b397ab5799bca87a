package network

import (
	"slices"
	"testing"
)

func buildGraph(t *testing.T, edges [][2]string) *Graph {
	t.Helper()
	g := New(nil)
	for _, e := range edges {
		for _, id := range e {
			if !g.HasNode(id) {
				if err := g.AddNode(Node{ID: id}); err != nil {
					t.Fatalf("AddNode(%s): %v", id, err)
				}
			}
		}
		if _, err := g.AddEdge(Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

func TestAddNode(t *testing.T) {
	g := New(nil)
	if err := g.AddNode(Node{ID: ""}); err != ErrInvalidNodeID {
		t.Errorf("empty ID: got %v, want ErrInvalidNodeID", err)
	}
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); err != ErrDuplicateNodeID {
		t.Errorf("duplicate: got %v, want ErrDuplicateNodeID", err)
	}
	n, ok := g.Node("a")
	if !ok || n.Meta == nil {
		t.Error("node should exist with initialised metadata")
	}
}

func TestAddEdge(t *testing.T) {
	g := New(nil)
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b"})

	if _, err := g.AddEdge(Edge{From: "a", To: "x"}); err != ErrUnknownNode {
		t.Errorf("unknown endpoint: got %v, want ErrUnknownNode", err)
	}
	if _, err := g.AddEdge(Edge{From: "a", To: "a"}); err != ErrSelfLoop {
		t.Errorf("self-loop: got %v, want ErrSelfLoop", err)
	}

	added, err := g.AddEdge(Edge{From: "a", To: "b", Evidence: "first"})
	if err != nil || !added {
		t.Fatalf("first edge: added=%v err=%v", added, err)
	}
	added, err = g.AddEdge(Edge{From: "b", To: "a", Evidence: "second"})
	if err != nil || added {
		t.Errorf("reverse duplicate: added=%v err=%v, want false nil", added, err)
	}

	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
	e, ok := g.Edge("b", "a")
	if !ok || e.Evidence != "first" {
		t.Errorf("Edge(b,a) = %+v, want first-seen attributes", e)
	}
	if g.Degree("a") != 1 || g.Degree("b") != 1 {
		t.Errorf("degrees = %d,%d, want 1,1", g.Degree("a"), g.Degree("b"))
	}
}

func TestSubgraphAndWithout(t *testing.T) {
	g := buildGraph(t, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"}})

	sub := g.Subgraph([]string{"c", "a", "b", "missing"})
	if got := sub.NodeIDs(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Subgraph nodes = %v, want [a b c]", got)
	}
	if sub.EdgeCount() != 2 {
		t.Errorf("Subgraph edges = %d, want 2", sub.EdgeCount())
	}

	rest, removed := g.Without([]string{"b", "zzz", "b"})
	if !slices.Equal(removed, []string{"b"}) {
		t.Errorf("removed = %v, want [b]", removed)
	}
	if rest.NodeCount() != 3 || rest.EdgeCount() != 2 {
		t.Errorf("Without: %d nodes %d edges, want 3 and 2", rest.NodeCount(), rest.EdgeCount())
	}
	if g.NodeCount() != 4 {
		t.Error("Without must not modify the receiver")
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := buildGraph(t, [][2]string{{"a", "b"}})
	n, _ := g.Node("a")
	n.Meta["kegg"] = "C00031"

	c := g.Clone()
	cn, _ := c.Node("a")
	cn.Meta["kegg"] = "changed"
	cn.Label = "changed"

	if n.Meta["kegg"] != "C00031" || n.Label != "" {
		t.Error("Clone shares node state with the original")
	}
}

func TestSourcesTargets(t *testing.T) {
	g := buildGraph(t, [][2]string{{"g1", "c1"}, {"g2", "c1"}, {"g1", "c2"}})
	src, dst := g.Sources(), g.Targets()
	if !src["g1"] || !src["g2"] || src["c1"] {
		t.Errorf("Sources = %v", src)
	}
	if !dst["c1"] || !dst["c2"] || dst["g1"] {
		t.Errorf("Targets = %v", dst)
	}
}

func TestIntersect(t *testing.T) {
	g := buildGraph(t, [][2]string{{"a", "b"}})
	got := g.Intersect([]string{"b", "x", "a", "b"})
	if !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("Intersect = %v, want [b a]", got)
	}
	if g.Contains([]string{"a", "x"}) != 1 {
		t.Error("Contains should count present ids")
	}
}

func TestIsolated(t *testing.T) {
	g := buildGraph(t, [][2]string{{"a", "b"}})
	_ = g.AddNode(Node{ID: "z"})
	if got := g.Isolated(); !slices.Equal(got, []string{"z"}) {
		t.Errorf("Isolated = %v, want [z]", got)
	}
}

func TestInferKind(t *testing.T) {
	tests := []struct {
		id   string
		want Kind
	}{
		{"C00031", KindCompound},
		{"D00001", KindCompound},
		{"HMDB0000122", KindCompound},
		{"7157", KindGene},
		{"ENSG00000141510", KindGene},
		{"TP53", KindOther},
		{"C0003", KindOther},
	}
	for _, tt := range tests {
		if got := InferKind(tt.id); got != tt.want {
			t.Errorf("InferKind(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	if k, ok := ParseKind("Metabolite"); !ok || k != KindCompound {
		t.Errorf("ParseKind(Metabolite) = %v,%v", k, ok)
	}
	if k, ok := ParseKind(""); ok || k != KindUnknown {
		t.Errorf("ParseKind(\"\") = %v,%v, want unknown,false", k, ok)
	}
	if k, ok := ParseKind("other"); !ok || k != KindOther {
		t.Errorf("ParseKind(other) = %v,%v", k, ok)
	}
}
