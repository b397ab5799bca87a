package io

import (
	"bytes"
	"encoding/xml"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network/community"
)

func TestReadEdges(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"CSV", "Source,Target,Evidence,Coef,P.Value,FDR\nC00031,3098,kegg,0.8,0.001,NA\nC00022,3098,,-0.4,,\n,3098,,,,\n"},
		{"TSV", "from\tto\tevidence\tr\tp\tq\nC00031\t3098\tkegg\t0.8\t0.001\t\nC00022\t3098\t\t-0.4\tNA\t\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges, err := ReadEdges(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadEdges: %v", err)
			}
			if len(edges) != 2 {
				t.Fatalf("got %d edges, want 2", len(edges))
			}
			e := edges[0]
			if e.From != "C00031" || e.To != "3098" || e.Evidence != "kegg" || e.Coefficient != 0.8 || e.PValue != 0.001 {
				t.Errorf("edge 0 = %+v", e)
			}
			if !e.Has(network.FieldCoefficient) || !e.Has(network.FieldPValue) || e.Has(network.FieldAdjPValue) {
				t.Errorf("edge 0 fields = %b", e.Fields)
			}
			if edges[1].Fields != network.FieldCoefficient || edges[1].Coefficient != -0.4 {
				t.Errorf("edge 1 = %+v", edges[1])
			}
		})
	}
}

func TestReadEdgesErrors(t *testing.T) {
	for name, input := range map[string]string{
		"MissingTarget": "source,weight\na,1\n",
		"BadNumber":     "source,target,pvalue\na,b,low\n",
		"Empty":         "",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadEdges(strings.NewReader(input)); !errors.Is(err, errors.ErrCodeInvalidTable) {
				t.Errorf("err = %v, want INVALID_TABLE", err)
			}
		})
	}
}

func TestReadNodes(t *testing.T) {
	input := "id,name,type,gene,expression,KEGG,HMDB\nC00031,D-Glucose,compound,,1.5,C00031,HMDB0000122\n3098,HK1,gene,HK1,NA,hsa:3098,\n"
	nodes, err := ReadNodes(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadNodes: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes", len(nodes))
	}
	glc := nodes[0]
	if glc.Label != "D-Glucose" || glc.Kind != network.KindCompound || glc.Value != 1.5 {
		t.Errorf("node 0 = %+v", glc)
	}
	if glc.Meta["hmdb"] != "HMDB0000122" || glc.Meta["kegg"] != "C00031" {
		t.Errorf("annotations = %v", glc.Meta)
	}
	if nodes[1].Symbol != "HK1" || nodes[1].Kind != network.KindGene || nodes[1].Value != 0 {
		t.Errorf("node 1 = %+v", nodes[1])
	}
	if _, ok := nodes[1].Meta["hmdb"]; ok {
		t.Errorf("empty annotation kept: %v", nodes[1].Meta)
	}

	if _, err := ReadNodes(strings.NewReader("id,type\nx,planet\n")); !errors.Is(err, errors.ErrCodeInvalidTable) {
		t.Errorf("err = %v, want INVALID_TABLE", err)
	}
}

func TestReadSeeds(t *testing.T) {
	seeds, err := ReadSeeds(strings.NewReader("# query\nC00031, C00022\n3098\tC00031\n\n"))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"C00031", "C00022", "3098"}; !slices.Equal(seeds, want) {
		t.Errorf("seeds = %v, want %v", seeds, want)
	}
}

func TestReadScores(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]float64
	}{
		{"Header", "id,logFC\nA,1.5\nb,-2\n", map[string]float64{"A": 1.5, "b": -2}},
		{"NoHeader", "A,1.5\nb,NA\n", map[string]float64{"A": 1.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadScores(strings.NewReader(tt.input))
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func sample(t *testing.T) *network.Graph {
	t.Helper()
	g, err := network.Build([]network.Edge{
		{From: "a", To: "b", Coefficient: 0.5, Fields: network.FieldCoefficient},
		{From: "b", To: "c", PValue: 0.01, Fields: network.FieldPValue},
		{From: "c", To: "d"},
		{From: "e", To: "b"},
	}, nil, network.ModeAttributed)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestWriteNodesCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNodesCSV(&buf, sample(t), map[string]float64{"b": 2.5}); err != nil {
		t.Fatal(err)
	}
	want := "id,label,kind,degree,betweenness,expression\n" +
		"b,b,other,3,5,2.5\n" +
		"c,c,other,2,3,0\n" +
		"a,a,other,1,0,0\n" +
		"d,d,other,1,0,0\n" +
		"e,e,other,1,0,0\n"
	if buf.String() != want {
		t.Errorf("got\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteEdgesCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteEdgesCSV(&buf, sample(t)); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 || lines[1] != "a,b,,0.5,," || lines[2] != "b,c,,,0.01," {
		t.Errorf("edges CSV = %q", lines)
	}
}

func TestWriteCommunityTables(t *testing.T) {
	var buf bytes.Buffer
	comms := []community.Community{{ID: 1, Nodes: []string{"a", "b"}, Size: 2, Hits: 1, PValue: 0.25}}
	if err := WriteCommunitiesCSV(&buf, comms); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "community,size,hits,pvalue,members\n1,2,1,0.25,a;b\n" {
		t.Errorf("communities CSV = %q", got)
	}
	buf.Reset()
	if err := WriteAssignmentsCSV(&buf, []community.Assignment{{NodeID: "a", Community: 1}}); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "node,community\na,1\n" {
		t.Errorf("assignments CSV = %q", got)
	}
}

func TestWriteGraphML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGraphML(&buf, sample(t), "subnetwork1", nil); err != nil {
		t.Fatal(err)
	}
	var doc graphML
	if err := xml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if doc.Graph.ID != "subnetwork1" || doc.Graph.EdgeDefault != "undirected" {
		t.Errorf("graph = %+v", doc.Graph)
	}
	if len(doc.Graph.Nodes) != 5 || len(doc.Graph.Edges) != 4 || len(doc.Keys) != len(graphMLKeys) {
		t.Fatalf("nodes %d edges %d keys %d", len(doc.Graph.Nodes), len(doc.Graph.Edges), len(doc.Keys))
	}
	if d := doc.Graph.Edges[0].Data; len(d) != 1 || d[0].Key != "coefficient" || d[0].Value != "0.5" {
		t.Errorf("edge 0 data = %+v", d)
	}
	if d := doc.Graph.Edges[2].Data; len(d) != 0 {
		t.Errorf("edge 2 data = %+v, want none", d)
	}
}

func TestImportExportFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.csv")
	g := sample(t)
	if err := ExportFile(path, func(w io.Writer) error { return WriteEdgesCSV(w, g) }); err != nil {
		t.Fatal(err)
	}
	edges, err := ImportEdges(path)
	if err != nil {
		t.Fatal(err)
	}
	back, err := network.Build(edges, nil, network.ModeAttributed)
	if err != nil {
		t.Fatal(err)
	}
	if back.EdgeCount() != g.EdgeCount() || back.NodeCount() != g.NodeCount() {
		t.Errorf("round trip %d/%d, want %d/%d", back.NodeCount(), back.EdgeCount(), g.NodeCount(), g.EdgeCount())
	}
	if _, err := ImportEdges(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
