package io

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
)

const graphMLNamespace = "http://graphml.graphdrawing.org/xmlns"

type graphML struct {
	XMLName xml.Name     `xml:"graphml"`
	XMLNS   string       `xml:"xmlns,attr"`
	Keys    []graphMLKey `xml:"key"`
	Graph   graphMLGraph `xml:"graph"`
}

type graphMLKey struct {
	ID   string `xml:"id,attr"`
	For  string `xml:"for,attr"`
	Name string `xml:"attr.name,attr"`
	Type string `xml:"attr.type,attr"`
}

type graphMLGraph struct {
	ID          string        `xml:"id,attr"`
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphMLNode `xml:"node"`
	Edges       []graphMLEdge `xml:"edge"`
}

type graphMLNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphMLData `xml:"data"`
}

type graphMLEdge struct {
	ID     string        `xml:"id,attr"`
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphMLData `xml:"data"`
}

type graphMLData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

var graphMLKeys = []graphMLKey{
	{ID: "label", For: "node", Name: "label", Type: "string"},
	{ID: "kind", For: "node", Name: "kind", Type: "string"},
	{ID: "degree", For: "node", Name: "degree", Type: "int"},
	{ID: "betweenness", For: "node", Name: "betweenness", Type: "double"},
	{ID: "expression", For: "node", Name: "expression", Type: "double"},
	{ID: "evidence", For: "edge", Name: "evidence", Type: "string"},
	{ID: "coefficient", For: "edge", Name: "coefficient", Type: "double"},
	{ID: "pvalue", For: "edge", Name: "pvalue", Type: "double"},
	{ID: "adj_pvalue", For: "edge", Name: "adj_pvalue", Type: "double"},
}

// WriteGraphML writes g as an undirected GraphML document with graph id
// name. Nodes and edges keep graph order; absent edge statistics are
// omitted.
func WriteGraphML(w io.Writer, g *network.Graph, name string, scores map[string]float64) error {
	betw := network.Betweenness(g)
	doc := graphML{
		XMLNS: graphMLNamespace,
		Keys:  graphMLKeys,
		Graph: graphMLGraph{ID: name, EdgeDefault: "undirected"},
	}
	for _, n := range g.Nodes() {
		expr := n.Value
		if scores != nil {
			expr = scores[n.ID]
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, graphMLNode{
			ID: n.ID,
			Data: []graphMLData{
				{Key: "label", Value: n.DisplayLabel()},
				{Key: "kind", Value: n.Kind.String()},
				{Key: "degree", Value: strconv.Itoa(g.Degree(n.ID))},
				{Key: "betweenness", Value: formatFloat(betw[n.ID])},
				{Key: "expression", Value: formatFloat(expr)},
			},
		})
	}
	for i, e := range g.Edges() {
		ge := graphMLEdge{ID: fmt.Sprintf("e%d", i), Source: e.From, Target: e.To}
		if e.Evidence != "" {
			ge.Data = append(ge.Data, graphMLData{Key: "evidence", Value: e.Evidence})
		}
		if e.Has(network.FieldCoefficient) {
			ge.Data = append(ge.Data, graphMLData{Key: "coefficient", Value: formatFloat(e.Coefficient)})
		}
		if e.Has(network.FieldPValue) {
			ge.Data = append(ge.Data, graphMLData{Key: "pvalue", Value: formatFloat(e.PValue)})
		}
		if e.Has(network.FieldAdjPValue) {
			ge.Data = append(ge.Data, graphMLData{Key: "adj_pvalue", Value: formatFloat(e.AdjPValue)})
		}
		doc.Graph.Edges = append(doc.Graph.Edges, ge)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write graphml: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode graphml: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write graphml: %w", err)
	}
	return nil
}
