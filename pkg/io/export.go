package io

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network/community"
)

// NodeRow is one line of the node table.
type NodeRow struct {
	ID          string
	Label       string
	Kind        string
	Degree      int
	Betweenness float64
	Expression  float64
}

// NodeRows computes the node table of g in export order: descending degree,
// then descending betweenness, then id. scores, when non-nil, replaces node
// values as the expression column.
func NodeRows(g *network.Graph, scores map[string]float64) []NodeRow {
	betw := network.Betweenness(g)
	rows := make([]NodeRow, 0, g.NodeCount())
	for _, n := range g.Nodes() {
		expr := n.Value
		if scores != nil {
			expr = scores[n.ID]
		}
		rows = append(rows, NodeRow{
			ID:          n.ID,
			Label:       n.DisplayLabel(),
			Kind:        n.Kind.String(),
			Degree:      g.Degree(n.ID),
			Betweenness: betw[n.ID],
			Expression:  expr,
		})
	}
	slices.SortFunc(rows, func(a, b NodeRow) int {
		if c := cmp.Compare(b.Degree, a.Degree); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Betweenness, a.Betweenness); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func optional(e network.Edge, f network.Field, v float64) string {
	if !e.Has(f) {
		return ""
	}
	return formatFloat(v)
}

// WriteNodesCSV writes the node table of g.
func WriteNodesCSV(w io.Writer, g *network.Graph, scores map[string]float64) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "label", "kind", "degree", "betweenness", "expression"})
	for _, r := range NodeRows(g, scores) {
		_ = cw.Write([]string{
			r.ID, r.Label, r.Kind,
			strconv.Itoa(r.Degree),
			formatFloat(r.Betweenness),
			formatFloat(r.Expression),
		})
	}
	return flush(cw)
}

// WriteEdgesCSV writes the edge table of g. Statistics an edge does not carry
// are left empty.
func WriteEdgesCSV(w io.Writer, g *network.Graph) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"source", "target", "evidence", "coefficient", "pvalue", "adj_pvalue"})
	for _, e := range g.Edges() {
		_ = cw.Write([]string{
			e.From, e.To, e.Evidence,
			optional(e, network.FieldCoefficient, e.Coefficient),
			optional(e, network.FieldPValue, e.PValue),
			optional(e, network.FieldAdjPValue, e.AdjPValue),
		})
	}
	return flush(cw)
}

// WriteCommunitiesCSV writes one row per community in result order.
func WriteCommunitiesCSV(w io.Writer, comms []community.Community) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"community", "size", "hits", "pvalue", "members"})
	for _, c := range comms {
		_ = cw.Write([]string{
			strconv.Itoa(c.ID),
			strconv.Itoa(c.Size),
			strconv.Itoa(c.Hits),
			formatFloat(c.PValue),
			strings.Join(c.Nodes, ";"),
		})
	}
	return flush(cw)
}

// WriteAssignmentsCSV writes the node to community table.
func WriteAssignmentsCSV(w io.Writer, assignments []community.Assignment) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"node", "community"})
	for _, a := range assignments {
		_ = cw.Write([]string{a.NodeID, strconv.Itoa(a.Community)})
	}
	return flush(cw)
}

func flush(cw *csv.Writer) error {
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// ExportFile creates path and streams write into it.
func ExportFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
