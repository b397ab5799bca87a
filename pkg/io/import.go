package io

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/MASHUOA/MetaboAnalystR/pkg/errors"
	"github.com/MASHUOA/MetaboAnalystR/pkg/network"
)

var edgeColumns = map[string][]string{
	"source":      {"source", "from", "id1", "source_id", "node1"},
	"target":      {"target", "to", "id2", "target_id", "node2"},
	"evidence":    {"evidence", "type", "interaction"},
	"coefficient": {"coefficient", "coef", "r", "correlation", "weight"},
	"pvalue":      {"pvalue", "p", "p.value", "p_value"},
	"adj_pvalue":  {"adj_pvalue", "qvalue", "q", "fdr", "adj.p.val", "padj"},
}

var nodeColumns = map[string][]string{
	"id":       {"id", "node", "node_id"},
	"label":    {"label", "name"},
	"kind":     {"kind", "type", "class"},
	"symbol":   {"symbol", "gene", "gene_name"},
	"evidence": {"evidence"},
	"value":    {"value", "expression", "logfc", "abundance"},
}

// table is a decoded delimited file.
type table struct {
	raw    []string // header as read
	header []string // normalised column names
	rows   [][]string
}

func readTable(r io.Reader) (*table, error) {
	br := bufio.NewReader(r)
	first, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("read: %w", err)
	}
	line := string(first)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	cr := csv.NewReader(br)
	if strings.Contains(line, "\t") {
		cr.Comma = '\t'
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTable, err, "malformed table")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTable, "table is empty")
	}
	t := &table{raw: records[0], header: make([]string, len(records[0])), rows: records[1:]}
	t.raw[0] = strings.TrimPrefix(t.raw[0], "\ufeff")
	for i, h := range t.raw {
		t.header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return t, nil
}

// index resolves logical column names to positions; missing columns map
// to -1.
func (t *table) index(columns map[string][]string) map[string]int {
	idx := make(map[string]int, len(columns))
	for name, aliases := range columns {
		idx[name] = -1
	alias:
		for _, a := range aliases {
			for i, h := range t.header {
				if h == a {
					idx[name] = i
					break alias
				}
			}
		}
	}
	return idx
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	v := strings.TrimSpace(row[i])
	if strings.EqualFold(v, "NA") {
		return ""
	}
	return v
}

func number(row []string, i, line int, column string) (float64, bool, error) {
	s := cell(row, i)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, errors.New(errors.ErrCodeInvalidTable, "line %d: %s %q is not a number", line, column, s)
	}
	return v, true, nil
}

// ReadEdges decodes an edge table. Rows with an empty endpoint are skipped.
func ReadEdges(r io.Reader) ([]network.Edge, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	col := t.index(edgeColumns)
	if col["source"] < 0 || col["target"] < 0 {
		return nil, errors.New(errors.ErrCodeInvalidTable, "edge table needs source and target columns")
	}

	edges := make([]network.Edge, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		e := network.Edge{
			From:     cell(row, col["source"]),
			To:       cell(row, col["target"]),
			Evidence: cell(row, col["evidence"]),
		}
		if e.From == "" || e.To == "" {
			continue
		}
		numeric := []struct {
			name  string
			field network.Field
			dst   *float64
		}{
			{"coefficient", network.FieldCoefficient, &e.Coefficient},
			{"pvalue", network.FieldPValue, &e.PValue},
			{"adj_pvalue", network.FieldAdjPValue, &e.AdjPValue},
		}
		for _, n := range numeric {
			v, ok, err := number(row, col[n.name], line, n.name)
			if err != nil {
				return nil, err
			}
			if ok {
				*n.dst = v
				e.Fields |= n.field
			}
		}
		edges = append(edges, e)
	}
	return edges, nil
}

// ReadNodes decodes a node table. Columns other than the recognised ones
// are kept as string annotations in Node.Meta.
func ReadNodes(r io.Reader) ([]network.Node, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	col := t.index(nodeColumns)
	if col["id"] < 0 {
		return nil, errors.New(errors.ErrCodeInvalidTable, "node table needs an id column")
	}
	known := make(map[int]bool, len(col))
	for _, i := range col {
		known[i] = true
	}

	nodes := make([]network.Node, 0, len(t.rows))
	for i, row := range t.rows {
		line := i + 2
		n := network.Node{
			ID:       cell(row, col["id"]),
			Label:    cell(row, col["label"]),
			Symbol:   cell(row, col["symbol"]),
			Evidence: cell(row, col["evidence"]),
			Meta:     network.Metadata{},
		}
		if n.ID == "" {
			continue
		}
		if k := cell(row, col["kind"]); k != "" {
			kind, ok := network.ParseKind(k)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidTable, "line %d: unknown kind %q", line, k)
			}
			n.Kind = kind
		}
		v, _, err := number(row, col["value"], line, "value")
		if err != nil {
			return nil, err
		}
		n.Value = v
		for j, h := range t.header {
			if !known[j] && h != "" {
				if s := cell(row, j); s != "" {
					n.Meta[h] = s
				}
			}
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// ReadSeeds reads seed identifiers. Lines starting with # are comments.
// Duplicates are dropped, keeping first-seen order.
func ReadSeeds(r io.Reader) ([]string, error) {
	var seeds []string
	seen := make(map[string]bool)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, tok := range strings.FieldsFunc(line, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		}) {
			if !seen[tok] {
				seen[tok] = true
				seeds = append(seeds, tok)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read seeds: %w", err)
	}
	return seeds, nil
}

// ReadScores reads id/value pairs from the first two columns. A first row
// whose value does not parse is taken as a header.
func ReadScores(r io.Reader) (map[string]float64, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	rows := t.rows
	if len(t.raw) >= 2 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(t.raw[1]), 64); err == nil {
			rows = append([][]string{t.raw}, rows...)
		}
	}
	scores := make(map[string]float64, len(rows))
	for i, row := range rows {
		id := cell(row, 0)
		if id == "" {
			continue
		}
		v, ok, err := number(row, 1, i+1, "value")
		if err != nil {
			return nil, err
		}
		if ok {
			scores[id] = v
		}
	}
	return scores, nil
}

// ImportEdges reads an edge table file.
func ImportEdges(path string) ([]network.Edge, error) {
	return importFile(path, ReadEdges)
}

// ImportNodes reads a node table file.
func ImportNodes(path string) ([]network.Node, error) {
	return importFile(path, ReadNodes)
}

// ImportSeeds reads a seed list file.
func ImportSeeds(path string) ([]string, error) {
	return importFile(path, ReadSeeds)
}

// ImportScores reads a score table file.
func ImportScores(path string) (map[string]float64, error) {
	return importFile(path, ReadScores)
}

func importFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return read(f)
}
