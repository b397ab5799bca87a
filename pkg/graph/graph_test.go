package graph

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/MASHUOA/MetaboAnalystR/pkg/layout"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network/community"
)

// star builds gene hub 100 linked to compounds C00001..C00004; the first two
// edges carry statistics.
func star(t *testing.T) *network.Graph {
	t.Helper()
	edges := []network.Edge{
		{From: "100", To: "C00001", Coefficient: -0.9, PValue: 1e-4, Fields: network.FieldCoefficient | network.FieldPValue},
		{From: "100", To: "C00002", Coefficient: 0.3, PValue: 0.01, Fields: network.FieldCoefficient | network.FieldPValue},
		{From: "100", To: "C00003", Evidence: "kegg"},
		{From: "100", To: "C00004"},
	}
	g, err := network.Build(edges, nil, network.ModeAttributed)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestRescale(t *testing.T) {
	tests := []struct {
		name   string
		in     []float64
		lo, hi float64
		want   []float64
	}{
		{"Empty", nil, 0, 1, []float64{}},
		{"Bounds", []float64{2, 4, 3}, 1, 9, []float64{1, 9, 5}},
		{"Constant", []float64{7, 7}, 0.5, 10, []float64{5.25, 5.25}},
		{"Single", []float64{3}, 3, 9, []float64{6}},
		{"NonFinite", []float64{math.NaN(), 0, 10}, 0, 1, []float64{0, 0, 1}},
		{"AllNaN", []float64{math.NaN()}, 0, 2, []float64{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rescale(tt.in, tt.lo, tt.hi)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestSizeFloor(t *testing.T) {
	for n, want := range map[int]float64{10: 3, 199: 3, 200: 2, 499: 2, 500: 1, 9000: 1} {
		if got := SizeFloor(n); got != want {
			t.Errorf("SizeFloor(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestNodeSizes(t *testing.T) {
	sizes := NodeSizes(star(t))
	if sizes[0] != MaxNodeSize {
		t.Errorf("hub size = %v, want %v", sizes[0], MaxNodeSize)
	}
	for _, s := range sizes[1:] {
		if s != 3 {
			t.Errorf("leaf size = %v, want 3", s)
		}
	}
}

func TestParseCategory(t *testing.T) {
	if c, err := ParseCategory(""); err != nil || c != CategoryDefault {
		t.Errorf("ParseCategory(\"\") = %q, %v", c, err)
	}
	if _, err := ParseCategory("bipartite"); err == nil {
		t.Error("expected error for unknown category")
	}
}

func TestGradient(t *testing.T) {
	if got := Gradient(0); got != "#ffffff" {
		t.Errorf("Gradient(0) = %s, want #ffffff", got)
	}
	if Gradient(2) != Gradient(1) || Gradient(-3) != Gradient(-1) {
		t.Error("gradient should clamp")
	}
	if Gradient(1) == Gradient(-1) {
		t.Error("gradient ends should differ")
	}
}

func TestExpressionColors(t *testing.T) {
	fill, border := ExpressionColors([]float64{0, 2, -1, math.NaN()})
	if fill[0] != NeutralFill || border[0] != NeutralBorder || fill[3] != NeutralFill {
		t.Errorf("missing scores should be neutral: %v %v", fill, border)
	}
	if fill[1] != Gradient(1) || fill[2] != Gradient(-0.5) {
		t.Errorf("fill = %v", fill)
	}
	if border[1] == fill[1] {
		t.Errorf("border should be darker than fill")
	}

	fill, _ = ExpressionColors([]float64{0, 0})
	if fill[0] != NeutralFill || fill[1] != NeutralFill {
		t.Errorf("all-zero scores should be neutral: %v", fill)
	}
}

func TestNewPayload(t *testing.T) {
	g := star(t)
	res, err := layout.Compute(t.Context(), g, layout.Options{Algorithm: layout.AlgorithmCircle})
	if err != nil {
		t.Fatal(err)
	}
	p := NewPayload(g, PayloadOptions{
		Name:     "subnetwork1",
		Category: CategoryGlobal,
		Layout:   res,
		Seeds:    []string{"C00002"},
		Scores:   map[string]float64{"100": 1.5},
	})

	if len(p.Nodes) != 5 || len(p.Edges) != 4 || p.Layout != "circle" {
		t.Fatalf("payload = %d nodes, %d edges, layout %q", len(p.Nodes), len(p.Edges), p.Layout)
	}
	hub := p.Nodes[0]
	if hub.Shape != ShapeSquare || hub.Kind != "gene" || hub.Topology.Degree != 4 || hub.Topology.Betweenness != 6 {
		t.Errorf("hub = %+v", hub)
	}
	if hub.Color != AccentColor || hub.Expression.Fill != Gradient(1) || hub.Expression.Value != 1.5 {
		t.Errorf("hub colour = %s expression %+v, want accent kept and fill in expression", hub.Color, hub.Expression)
	}
	if hub.Topology.Measure != network.TopologyBetweenness || hub.Topology.Score != 6 || hub.Topology.Closeness != 0.25 {
		t.Errorf("hub topology = %+v", hub.Topology)
	}
	leaf := p.Nodes[2]
	if leaf.Shape != ShapeDiamond || !leaf.Seed || leaf.Expression.Fill != NeutralFill || leaf.Color != BaseColor {
		t.Errorf("leaf = %+v", leaf)
	}
	if leaf.Expression.Border != SeedColor || p.Nodes[1].Expression.Border != NeutralBorder {
		t.Errorf("borders = %s, %s, want seed colour only on the seed", leaf.Expression.Border, p.Nodes[1].Expression.Border)
	}
	if hub.X != res.Positions[0].X || hub.Y != res.Positions[0].Y {
		t.Errorf("hub position (%v, %v) not taken from layout", hub.X, hub.Y)
	}

	e0, e1, e2 := p.Edges[0], p.Edges[1], p.Edges[2]
	if *e0.CoefSize != MaxEdgeSize || *e1.CoefSize != MinEdgeSize {
		t.Errorf("coef sizes = %v, %v", *e0.CoefSize, *e1.CoefSize)
	}
	if *e0.PSize != MaxEdgeSize || *e1.PSize != MinEdgeSize {
		t.Errorf("p sizes = %v, %v", *e0.PSize, *e1.PSize)
	}
	if e2.Coefficient != nil || e2.CoefSize != nil || e2.Evidence != "kegg" {
		t.Errorf("edge without statistics = %+v", e2)
	}

	data, err := MarshalPayload(p)
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Edges []map[string]any `json:"edges"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded.Edges[3]["coefficient"]; ok {
		t.Error("absent coefficient was serialized")
	}
	if _, ok := decoded.Edges[0]["coefficient"]; !ok {
		t.Error("coefficient missing from edge 0")
	}
}

func TestNewPayloadCategories(t *testing.T) {
	g := star(t)
	for _, tt := range []struct {
		cat  Category
		hub  string
		leaf string
	}{
		{CategoryDefault, ShapeCircle, ShapeCircle},
		{CategoryDiamond, ShapeDiamond, ShapeDiamond},
		{CategoryGlobal, ShapeSquare, ShapeDiamond},
	} {
		p := NewPayload(g, PayloadOptions{Category: tt.cat})
		if p.Nodes[0].Shape != tt.hub || p.Nodes[1].Shape != tt.leaf {
			t.Errorf("%s: hub %s leaf %s", tt.cat, p.Nodes[0].Shape, p.Nodes[1].Shape)
		}
	}
}

func TestNewPayloadExpressionFill(t *testing.T) {
	g := star(t)
	scores := map[string]float64{"100": 1.5, "C00001": -1.5}
	for _, tt := range []struct {
		cat       Category
		hub, leaf string
	}{
		{CategoryDefault, Gradient(1), Gradient(-1)},
		{CategoryGlobal, AccentColor, Gradient(-1)},
	} {
		p := NewPayload(g, PayloadOptions{Category: tt.cat, Scores: scores})
		if p.Nodes[0].Color != tt.hub || p.Nodes[1].Color != tt.leaf {
			t.Errorf("%s: hub %s leaf %s, want %s %s", tt.cat, p.Nodes[0].Color, p.Nodes[1].Color, tt.hub, tt.leaf)
		}
	}
}

func TestNewPayloadMeasure(t *testing.T) {
	g := star(t)
	for _, tt := range []struct {
		measure network.Topology
		hub     float64
		leaf    float64
	}{
		{network.TopologyDegree, 4, 1},
		{network.TopologyCloseness, 0.25, 1.0 / 7},
		{network.TopologyBetweenness, 6, 0},
	} {
		p := NewPayload(g, PayloadOptions{Measure: tt.measure})
		hub, leaf := p.Nodes[0].Topology, p.Nodes[1].Topology
		if hub.Measure != tt.measure || math.Abs(hub.Score-tt.hub) > 1e-12 || math.Abs(leaf.Score-tt.leaf) > 1e-12 {
			t.Errorf("%s: hub %+v leaf %+v", tt.measure, hub, leaf)
		}
		if hub.Color != Gradient(1) || leaf.Color != Gradient(-1) {
			t.Errorf("%s: colours %s %s, want gradient ends", tt.measure, hub.Color, leaf.Color)
		}
	}
}

func TestWriteLayout(t *testing.T) {
	var buf bytes.Buffer
	res := &layout.Result{Positions: []layout.Position{{ID: "a", X: 1, Y: 2}}}
	if err := WriteLayout(res, &buf); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != `[{"id":"a","x":1,"y":2}]` {
		t.Errorf("layout JSON = %s", got)
	}
}

func TestFormatCommunities(t *testing.T) {
	got := FormatCommunities([]community.Community{
		{ID: 1, Nodes: []string{"a", "b", "c", "d", "e"}, Size: 5, Hits: 2, PValue: 0.0123456},
		{ID: 2, Nodes: []string{"f", "g", "h", "i", "j"}, Size: 5, Hits: 1, PValue: 0.5},
	})
	want := "5;2;0.0123;a->b->c->d->e||5;1;0.5;f->g->h->i->j"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if FormatCommunities(nil) != "" {
		t.Error("no communities should format as empty")
	}
}

func TestFormatPaths(t *testing.T) {
	res := network.PathResult{Connected: true, Paths: [][]string{{"a", "b", "d"}, {"a", "c", "d"}}}
	if got := FormatPaths(res); got != "a->b->d||a->c->d" {
		t.Errorf("got %q", got)
	}
	if got := FormatPaths(network.PathResult{From: "a", To: "z"}); got != "" {
		t.Errorf("disconnected = %q, want empty", got)
	}
}

func TestGraphRoundTrip(t *testing.T) {
	g := star(t)
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		t.Fatal(err)
	}
	back, err := ReadGraph(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if back.NodeCount() != 5 || back.EdgeCount() != 4 {
		t.Fatalf("round trip = %d nodes %d edges", back.NodeCount(), back.EdgeCount())
	}
	e, _ := back.Edge("100", "C00001")
	if !e.Has(network.FieldCoefficient) || e.Coefficient != -0.9 || e.Has(network.FieldAdjPValue) {
		t.Errorf("edge = %+v", e)
	}
	if n, _ := back.Node("C00003"); n.Kind != network.KindCompound {
		t.Errorf("kind = %v", n.Kind)
	}

	a, _ := MarshalGraph(g)
	b, _ := MarshalGraph(back)
	if !bytes.Equal(a, b) {
		t.Errorf("canonical form changed:\n%s\n%s", a, b)
	}
	var probe map[string]any
	if err := json.Unmarshal(a, &probe); err != nil || probe["mode"] != "attributed" {
		t.Errorf("mode = %v, %v", probe["mode"], err)
	}
}
