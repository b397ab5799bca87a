package transform

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
)

func graphOf(t *testing.T, edges ...[2]string) *network.Graph {
	t.Helper()
	g := network.New(nil)
	for _, e := range edges {
		for _, id := range e {
			if !g.HasNode(id) {
				_ = g.AddNode(network.Node{ID: id})
			}
		}
		if _, err := g.AddEdge(network.Edge{From: e[0], To: e[1]}); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

func TestDecomposeStar(t *testing.T) {
	g := graphOf(t, [2]string{"hub", "l1"}, [2]string{"hub", "l2"}, [2]string{"hub", "l3"},
		[2]string{"hub", "l4"}, [2]string{"hub", "l5"})

	d, err := Decompose(g, []string{"hub"}, DecomposeOptions{MinNodes: 3})
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if d.Kept() != 1 || d.Found != 1 {
		t.Fatalf("kept=%d found=%d, want 1 and 1", d.Kept(), d.Found)
	}
	s := d.Subnetworks[0]
	if s.Name != "subnetwork1" || s.Stats.Nodes != 6 || s.Stats.Seeds != 1 {
		t.Errorf("subnetwork = %s %+v, want subnetwork1 with 6 nodes and 1 seed", s.Name, s.Stats)
	}
}

func TestDecomposeTwoTriangles(t *testing.T) {
	g := graphOf(t,
		[2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"},
		[2]string{"x", "y"}, [2]string{"y", "z"}, [2]string{"z", "x"})

	d, err := Decompose(g, nil, DecomposeOptions{})
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if got := d.Sizes(); !slices.Equal(got, []int{3, 3}) {
		t.Fatalf("sizes = %v, want [3 3]", got)
	}
	if !d.Subnetworks[0].Graph.HasNode("a") || !d.Subnetworks[1].Graph.HasNode("x") {
		t.Error("ties should keep discovery order")
	}
	if d.Subnetworks[1].Name != "subnetwork2" {
		t.Errorf("second name = %s, want subnetwork2", d.Subnetworks[1].Name)
	}
}

func TestDecomposeCapAndFound(t *testing.T) {
	var edges [][2]string
	for i := 0; i < 5; i++ {
		a, b, c := fmt.Sprint("a", i), fmt.Sprint("b", i), fmt.Sprint("c", i)
		edges = append(edges, [2]string{a, b}, [2]string{b, c})
	}
	edges = append(edges, [2]string{"p", "q"})
	g := graphOf(t, edges...)

	d, err := Decompose(g, nil, DecomposeOptions{MaxKept: 2})
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if d.Found != 5 || d.Kept() != 2 {
		t.Errorf("found=%d kept=%d, want 5 and 2", d.Found, d.Kept())
	}
}

func TestDecomposeNothingQualifies(t *testing.T) {
	g := graphOf(t, [2]string{"a", "b"}, [2]string{"c", "d"})
	_, err := Decompose(g, nil, DecomposeOptions{})
	if !errors.Is(err, errors.ErrCodeTooSmall) {
		t.Errorf("err = %v, want GRAPH_TOO_SMALL", err)
	}
}

func randomGraph(r *rand.Rand, n, m int) *network.Graph {
	g := network.New(nil)
	for i := 0; i < n; i++ {
		_ = g.AddNode(network.Node{ID: fmt.Sprint("n", i)})
	}
	for i := 0; i < m; i++ {
		a, b := r.IntN(n), r.IntN(n)
		_, _ = g.AddEdge(network.Edge{From: fmt.Sprint("n", a), To: fmt.Sprint("n", b)})
	}
	return g
}

func TestDecomposeProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 25; trial++ {
		g := randomGraph(r, 60, 45)
		d, err := Decompose(g, nil, DecomposeOptions{MinNodes: 3, MaxKept: 100})
		if errors.Is(err, errors.ErrCodeTooSmall) {
			continue
		}
		if err != nil {
			t.Fatalf("Decompose: %v", err)
		}
		seen := make(map[string]bool)
		for i, s := range d.Subnetworks {
			if s.Graph.NodeCount() < 3 {
				t.Errorf("trial %d: component with %d nodes", trial, s.Graph.NodeCount())
			}
			if i > 0 && s.Stats.Nodes > d.Subnetworks[i-1].Stats.Nodes {
				t.Errorf("trial %d: not ranked by size", trial)
			}
			for _, id := range s.Graph.NodeIDs() {
				if !g.HasNode(id) {
					t.Errorf("trial %d: node %s not in input", trial, id)
				}
				if seen[id] {
					t.Errorf("trial %d: node %s in two components", trial, id)
				}
				seen[id] = true
			}
		}
	}
}

func TestRecomputeStatsKeepsNames(t *testing.T) {
	small := graphOf(t, [2]string{"a", "b"}, [2]string{"b", "c"})
	large := graphOf(t, [2]string{"x", "y"}, [2]string{"y", "z"}, [2]string{"z", "w"})
	subs := []Subnetwork{{Name: "subnetwork1", Graph: small}, {Name: "subnetwork2", Graph: large}}

	RecomputeStats(subs, []string{"x", "w", "a"})
	if subs[0].Name != "subnetwork2" || subs[0].Stats.Nodes != 4 || subs[0].Stats.Seeds != 2 {
		t.Errorf("first entry = %s %+v", subs[0].Name, subs[0].Stats)
	}
	if subs[1].Name != "subnetwork1" || subs[1].Stats.Seeds != 1 {
		t.Errorf("second entry = %s %+v", subs[1].Name, subs[1].Stats)
	}
}

func TestCorrelationFilterBands(t *testing.T) {
	coef := []float64{-0.9, -0.2, 0.1, 0.8}
	var edges []network.Edge
	for i, c := range coef {
		edges = append(edges, network.Edge{
			From: fmt.Sprint("g", i), To: fmt.Sprint("c", i),
			Coefficient: c, Fields: network.FieldCoefficient,
		})
	}
	f := CorrelationFilter{NegLo: -1, NegHi: -0.3, PosLo: 0.3, PosHi: 1}
	kept, removed := FilterEdges(edges, f)
	if removed != 2 || len(kept) != 2 {
		t.Fatalf("kept %d removed %d, want 2 and 2", len(kept), removed)
	}
	if kept[0].Coefficient != -0.9 || kept[1].Coefficient != 0.8 {
		t.Errorf("kept coefficients %v, %v; want -0.9 and 0.8", kept[0].Coefficient, kept[1].Coefficient)
	}
}

func TestCorrelationFilterThresholds(t *testing.T) {
	e := func(c, p, q float64, fields network.Field) network.Edge {
		return network.Edge{From: "a", To: "b", Coefficient: c, PValue: p, AdjPValue: q, Fields: fields}
	}
	all := network.FieldCoefficient | network.FieldPValue | network.FieldAdjPValue
	tests := []struct {
		name string
		f    CorrelationFilter
		e    network.Edge
		want bool
	}{
		{"inactive keeps all", CorrelationFilter{}, e(0, 0, 0, 0), true},
		{"p within", CorrelationFilter{PValue: 0.05}, e(0, 0.01, 0, all), true},
		{"p above", CorrelationFilter{PValue: 0.05}, e(0, 0.2, 0, all), false},
		{"p missing", CorrelationFilter{PValue: 0.05}, e(0, 0, 0, network.FieldCoefficient), false},
		{"q above", CorrelationFilter{QValue: 0.1}, e(0, 0.01, 0.3, all), false},
		{"band and p", CorrelationFilter{PosLo: 0.3, PosHi: 1, PValue: 0.05}, e(0.5, 0.01, 0, all), true},
		{"band fails", CorrelationFilter{PosLo: 0.3, PosHi: 1, PValue: 0.05}, e(0.1, 0.01, 0, all), false},
		{"band without coefficient", CorrelationFilter{PosLo: 0.3, PosHi: 1}, e(0, 0, 0, network.FieldPValue), false},
		{"upper bound open", CorrelationFilter{PosLo: 0.3, PosHi: 0.8}, e(0.8, 0, 0, all), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Keep(tt.e); got != tt.want {
				t.Errorf("Keep = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCorrelationFilterValidate(t *testing.T) {
	if err := (CorrelationFilter{PosLo: 1, PosHi: 0.3}).Validate(); err == nil {
		t.Error("reversed band should fail")
	}
	if err := (CorrelationFilter{PValue: -1}).Validate(); err == nil {
		t.Error("negative threshold should fail")
	}
	if err := (CorrelationFilter{NegLo: -1, NegHi: -0.3, PValue: 0.05}).Validate(); err != nil {
		t.Errorf("valid filter: %v", err)
	}
	empty := CorrelationFilter{PosLo: 0.5, PosHi: 0.5}
	if err := empty.Validate(); err != nil || empty.Active() {
		t.Errorf("equal band: err = %v, active = %v, want valid and inactive", err, empty.Active())
	}
}

func TestFilterTopologyRoles(t *testing.T) {
	// g1 -> c1 <- g2, g1 -> c2, c2 -> x
	g := graphOf(t, [2]string{"g1", "c1"}, [2]string{"g2", "c1"}, [2]string{"g1", "c2"}, [2]string{"c2", "x"})

	tests := []struct {
		role Role
		want []string
	}{
		{RoleGene, []string{"g2"}},
		{RoleOther, []string{"x"}},
		{RoleAll, []string{"g2", "x"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			out, removed := FilterTopology(g, TopologyFilter{Role: tt.role, MinDegree: 1})
			if !slices.Equal(removed, tt.want) {
				t.Errorf("removed = %v, want %v", removed, tt.want)
			}
			if out.NodeCount() != g.NodeCount()-len(tt.want) {
				t.Errorf("NodeCount = %d", out.NodeCount())
			}
		})
	}
}

func TestFilterTopologyDoesNotCascade(t *testing.T) {
	// Removing g1 leaves c1 isolated; it must stay.
	g := graphOf(t, [2]string{"g1", "c1"}, [2]string{"g2", "c2"}, [2]string{"g2", "c3"})
	out, removed := FilterTopology(g, TopologyFilter{Role: RoleGene, MinDegree: 1})
	if !slices.Equal(removed, []string{"g1"}) {
		t.Fatalf("removed = %v, want [g1]", removed)
	}
	if got := out.Isolated(); !slices.Equal(got, []string{"c1"}) {
		t.Errorf("isolated = %v, want [c1]", got)
	}
}

func TestFilterTopologyBetweenness(t *testing.T) {
	// Path a-b-c-d-e: betweenness 0,3,4,3,0.
	g := graphOf(t, [2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "d"}, [2]string{"d", "e"})
	_, removed := FilterTopology(g, TopologyFilter{Role: RoleAll, MinBetweenness: 3})
	if !slices.Equal(removed, []string{"a", "b", "d", "e"}) {
		t.Errorf("removed = %v, want [a b d e]", removed)
	}
}

func TestParseRole(t *testing.T) {
	if r, err := ParseRole(""); err != nil || r != RoleAll {
		t.Errorf("ParseRole(\"\") = %v, %v", r, err)
	}
	if _, err := ParseRole("metabolite"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want UNSUPPORTED_OPTION", err)
	}
}

func TestExclude(t *testing.T) {
	g := graphOf(t, [2]string{"hub", "a"}, [2]string{"hub", "b"}, [2]string{"b", "c"})

	out, removed := Exclude(g, []string{"hub", "ghost"})
	if !slices.Equal(removed, []string{"hub", "a"}) {
		t.Errorf("removed = %v, want [hub a]", removed)
	}
	if len(out.Isolated()) != 0 {
		t.Errorf("isolated nodes remain: %v", out.Isolated())
	}
	if g.NodeCount() != 4 {
		t.Error("Exclude must not modify its input")
	}

	again, removed := Exclude(out, []string{"hub", "ghost"})
	if len(removed) != 0 || again.NodeCount() != out.NodeCount() || again.EdgeCount() != out.EdgeCount() {
		t.Errorf("second exclusion should be a no-op, removed %v", removed)
	}
}

func TestExcludeNeverLeavesIsolated(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for trial := 0; trial < 20; trial++ {
		g := randomGraph(r, 40, 50)
		ids := []string{fmt.Sprint("n", r.IntN(40)), fmt.Sprint("n", r.IntN(40)), "absent"}
		out, _ := Exclude(g, ids)
		if len(out.Isolated()) != 0 {
			t.Errorf("trial %d: isolated nodes %v", trial, out.Isolated())
		}
	}
}

func TestMinimalConnected(t *testing.T) {
	// s1 - a - b - s2, b - s3, decorations d1 (leaf on a) and d2-d3 tail.
	g := graphOf(t,
		[2]string{"s1", "a"}, [2]string{"a", "b"}, [2]string{"b", "s2"}, [2]string{"b", "s3"},
		[2]string{"a", "d1"}, [2]string{"s2", "d2"}, [2]string{"d2", "d3"}, [2]string{"s3", "x"}, [2]string{"x", "s1"})

	res := MinimalConnected(g, []string{"s1", "s2", "s3", "absent"}, 0)
	if res.Empty() || res.Present != 3 {
		t.Fatalf("Present = %d", res.Present)
	}
	for _, s := range []string{"s1", "s2", "s3"} {
		if !res.Graph.HasNode(s) {
			t.Errorf("seed %s missing", s)
		}
	}
	if res.Graph.HasNode("d1") || res.Graph.HasNode("d3") {
		t.Errorf("dead ends kept: %v", res.Graph.NodeIDs())
	}
}

func TestMinimalConnectedSinglePassPrune(t *testing.T) {
	// d2 survives pruning (degree 2 before the pass) but lies on no seed path.
	g := graphOf(t, [2]string{"s1", "s2"}, [2]string{"s2", "d2"}, [2]string{"d2", "d3"})
	res := MinimalConnected(g, []string{"s1", "s2"}, 0)
	if got := res.Graph.NodeIDs(); !slices.Equal(got, []string{"s1", "s2"}) {
		t.Errorf("nodes = %v, want [s1 s2]", got)
	}
}

func TestMinimalConnectedNoSeeds(t *testing.T) {
	g := graphOf(t, [2]string{"a", "b"})
	res := MinimalConnected(g, []string{"zz"}, 0)
	if !res.Empty() || res.Graph.NodeCount() != 0 {
		t.Errorf("expected empty result, got %d nodes", res.Graph.NodeCount())
	}
}

func TestMinimalConnectedTriage(t *testing.T) {
	// hub seed has the highest degree and must survive triage to one seed.
	g := graphOf(t, [2]string{"s1", "hub"}, [2]string{"hub", "a"}, [2]string{"hub", "b"}, [2]string{"a", "b"})
	res := MinimalConnected(g, []string{"s1", "hub"}, 1)
	if !slices.Equal(res.Used, []string{"hub"}) {
		t.Errorf("Used = %v, want [hub]", res.Used)
	}
}

func TestMinimalConnectedContainsSeeds(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 20; trial++ {
		g := network.Largest(randomGraph(r, 50, 90))
		ids := g.NodeIDs()
		seeds := []string{ids[r.IntN(len(ids))], ids[r.IntN(len(ids))], ids[r.IntN(len(ids))]}
		res := MinimalConnected(g, seeds, 0)
		for _, s := range seeds {
			if !res.Graph.HasNode(s) {
				t.Errorf("trial %d: seed %s missing", trial, s)
			}
		}
		if !network.IsConnected(res.Graph) {
			t.Errorf("trial %d: result not connected", trial)
		}
	}
}

func TestExtractModule(t *testing.T) {
	g := graphOf(t, [2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "d"}, [2]string{"d", "e"})

	mod, err := ExtractModule(g, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("connected request: %v", err)
	}
	if mod.NodeCount() != 3 {
		t.Errorf("connected request gave %d nodes, want 3", mod.NodeCount())
	}

	mod, err = ExtractModule(g, []string{"a", "e"})
	if err != nil {
		t.Fatalf("disconnected request: %v", err)
	}
	if got := mod.NodeIDs(); !slices.Equal(got, []string{"a", "b", "c", "d", "e"}) {
		t.Errorf("path union = %v", got)
	}

	if _, err := ExtractModule(g, []string{"a", "b"}); !errors.Is(err, errors.ErrCodeTooSmall) {
		t.Errorf("two nodes: err = %v, want GRAPH_TOO_SMALL", err)
	}
}
