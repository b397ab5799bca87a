package network

import (
	"math"
	"testing"

	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBetweennessPath(t *testing.T) {
	// a - b - c - d
	g := buildGraph(t, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}})
	bc := Betweenness(g)
	want := map[string]float64{"a": 0, "b": 2, "c": 2, "d": 0}
	for id, w := range want {
		if !approx(bc[id], w) {
			t.Errorf("betweenness[%s] = %v, want %v", id, bc[id], w)
		}
	}
}

func TestBetweennessStar(t *testing.T) {
	g := buildGraph(t, [][2]string{{"hub", "a"}, {"hub", "b"}, {"hub", "c"}, {"hub", "d"}})
	bc := Betweenness(g)
	if !approx(bc["hub"], 6) {
		t.Errorf("hub betweenness = %v, want 6", bc["hub"])
	}
	if !approx(bc["a"], 0) {
		t.Errorf("leaf betweenness = %v, want 0", bc["a"])
	}
}

func TestBetweennessSplitPaths(t *testing.T) {
	// Square a-b-d, a-c-d: b and c each carry half of the a-d pair.
	g := buildGraph(t, [][2]string{{"a", "b"}, {"b", "d"}, {"a", "c"}, {"c", "d"}})
	bc := Betweenness(g)
	if !approx(bc["b"], 0.5) || !approx(bc["c"], 0.5) {
		t.Errorf("betweenness b=%v c=%v, want 0.5 each", bc["b"], bc["c"])
	}
}

func TestCloseness(t *testing.T) {
	g := buildGraph(t, [][2]string{{"a", "b"}, {"b", "c"}})
	_ = g.AddNode(Node{ID: "z"})
	cl := Closeness(g)
	if !approx(cl["b"], 0.5) {
		t.Errorf("closeness[b] = %v, want 0.5", cl["b"])
	}
	if !approx(cl["a"], 1.0/3) {
		t.Errorf("closeness[a] = %v, want 1/3", cl["a"])
	}
	if cl["z"] != 0 {
		t.Errorf("closeness[z] = %v, want 0", cl["z"])
	}
}

func TestScore(t *testing.T) {
	g := buildGraph(t, [][2]string{{"a", "b"}, {"a", "c"}})
	if got := Score(g, TopologyDegree)["a"]; got != 2 {
		t.Errorf("degree score = %v, want 2", got)
	}
	if got := Score(g, TopologyBetweenness)["a"]; !approx(got, 1) {
		t.Errorf("betweenness score = %v, want 1", got)
	}
}

func TestParseTopology(t *testing.T) {
	for _, s := range []string{"degree", "closeness", "betweenness"} {
		if _, err := ParseTopology(s); err != nil {
			t.Errorf("ParseTopology(%q): %v", s, err)
		}
	}
	if _, err := ParseTopology("eigenvector"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ParseTopology(eigenvector) = %v, want UNSUPPORTED_OPTION", err)
	}
}

func TestComponents(t *testing.T) {
	// Two triangles plus a pair, with the second triangle listed first.
	g := buildGraph(t, [][2]string{
		{"x", "y"}, {"y", "z"}, {"z", "x"},
		{"a", "b"}, {"b", "c"}, {"c", "a"},
		{"p", "q"},
	})
	comps := Components(g)
	if len(comps) != 3 {
		t.Fatalf("got %d components, want 3", len(comps))
	}
	if comps[0][0] != "x" || comps[1][0] != "a" || comps[2][0] != "p" {
		t.Errorf("components not in discovery order: %v", comps)
	}
	if IsConnected(g) {
		t.Error("IsConnected = true, want false")
	}
	if l := Largest(g); l.NodeCount() != 3 || !l.HasNode("x") {
		t.Errorf("Largest should be the first triangle, got %v", l.NodeIDs())
	}
}
